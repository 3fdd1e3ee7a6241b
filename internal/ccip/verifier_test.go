package ccip_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTestLookup(t *testing.T) (*ccip.SubnameRequest, []byte, []byte) {
	t.Helper()

	s := newTestService(t, newTestConfig(t), time2.NewMockClock(testNow), nil)
	req := newTestRequest("testagent1234")
	callData := encodeTestRequest(t, req)

	signed, err := s.Resolve(context.Background(), testContract.Hex(), callData)
	require.NoError(t, err)
	return req, callData, signed.Data
}

func TestVerifyResponseExtraDataMismatch(t *testing.T) {
	_, callData, response := signedTestLookup(t)

	_, err := ccip.VerifyResponse(testVerifierConfig(), response, callData, []byte{0xff}, testNow)
	assert.ErrorIs(t, err, ccip.ErrExtraDataMismatch)
}

func TestVerifyResponseWrongSigner(t *testing.T) {
	req, callData, response := signedTestLookup(t)

	cfg := testVerifierConfig()
	cfg.TrustedSigner = testOwner
	_, err := ccip.VerifyResponse(cfg, response, callData, req.ExtraData, testNow)
	assert.ErrorIs(t, err, ccip.ErrSignerMismatch)
}

func TestVerifyResponseWrongChain(t *testing.T) {
	req, callData, response := signedTestLookup(t)

	cfg := testVerifierConfig()
	cfg.ChainID = 1
	_, err := ccip.VerifyResponse(cfg, response, callData, req.ExtraData, testNow)
	assert.ErrorIs(t, err, ccip.ErrSignerMismatch)
}

func TestVerifyResponseTamperedResult(t *testing.T) {
	req, callData, response := signedTestLookup(t)

	result, extra, err := ccip.DecodeResponse(response)
	require.NoError(t, err)
	r, err := ccip.DecodeResult(result)
	require.NoError(t, err)

	t.Run("owner", func(t *testing.T) {
		tampered := *r
		tampered.Owner = testRequester
		_, err := verifyTampered(t, &tampered, extra, callData, req.ExtraData)
		assert.ErrorIs(t, err, ccip.ErrResultMismatch)
	})

	t.Run("expiry", func(t *testing.T) {
		tampered := *r
		tampered.ResolvedExpiry += 1
		_, err := verifyTampered(t, &tampered, extra, callData, req.ExtraData)
		assert.ErrorIs(t, err, ccip.ErrSignerMismatch)
	})

	t.Run("signature", func(t *testing.T) {
		tampered := *r
		tampered.Signature = append([]byte{}, r.Signature...)
		tampered.Signature[10] ^= 0x01
		_, err := verifyTampered(t, &tampered, extra, callData, req.ExtraData)
		assert.Error(t, err)
	})

	t.Run("foreign key", func(t *testing.T) {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		tampered := *r
		digest := ccip.Digest(ccip.DigestParams{
			Contract:       testContract,
			ChainID:        testChainID,
			ExpiresAt:      r.ExpiresAt,
			ParentNode:     req.ParentNode,
			LabelHash:      req.LabelHash,
			Owner:          r.Owner,
			AgentID:        r.AgentID,
			ResolvedExpiry: r.ResolvedExpiry,
			AgentURI:       r.AgentURI,
			ExtraData:      req.ExtraData,
		})
		sig, err := crypto.Sign(digest.Bytes(), key)
		require.NoError(t, err)
		sig[64] += 27
		tampered.Signature = sig

		_, err = verifyTampered(t, &tampered, extra, callData, req.ExtraData)
		assert.ErrorIs(t, err, ccip.ErrSignerMismatch)
	})
}

func TestVerifyResponseOtherRequest(t *testing.T) {
	req, _, response := signedTestLookup(t)

	other := newTestRequest("testagent1234")
	other.AgentID = big.NewInt(2)
	_, err := ccip.VerifyResponse(testVerifierConfig(), response, encodeTestRequest(t, other), req.ExtraData, testNow)
	assert.ErrorIs(t, err, ccip.ErrResultMismatch)

	other = newTestRequest("testagent9999")
	_, err = ccip.VerifyResponse(testVerifierConfig(), response, encodeTestRequest(t, other), req.ExtraData, testNow)
	assert.ErrorIs(t, err, ccip.ErrSignerMismatch)
}

func verifyTampered(t *testing.T, r *ccip.Result, extra, callData, extraData []byte) (*ccip.Result, error) {
	t.Helper()

	result, err := ccip.EncodeResult(r)
	require.NoError(t, err)
	response, err := ccip.EncodeResponse(result, extra)
	require.NoError(t, err)

	return ccip.VerifyResponse(testVerifierConfig(), response, callData, extraData, testNow)
}

func TestEncodeCallback(t *testing.T) {
	data, err := ccip.EncodeCallback([]byte{0x01}, nil)
	require.NoError(t, err)
	assert.Equal(t, ccip.CallbackSelector(), data[:4])
	assert.Equal(t, common.LeftPadBytes([]byte{0x40}, 32), data[4:36])
}
