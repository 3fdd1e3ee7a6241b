package ccip

import (
	"bytes"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	ErrExtraDataMismatch = errors.New("echoed extra data does not match")
	ErrProofExpired      = errors.New("proof expired")
	ErrResultMismatch    = errors.New("result does not match the original request")
	ErrSignerMismatch    = errors.New("signature not produced by the trusted signer")
)

// VerifierConfig is what the registrar contract knows about its gateway.
type VerifierConfig struct {
	TrustedSigner common.Address
	Contract      common.Address
	ChainID       uint64
}

// VerifyResponse performs the checks of the registrar callback off chain: response is
// the gateway data, callData the deferred call the registrar issued and extraData the
// extra data of its OffchainLookup revert.
func VerifyResponse(cfg VerifierConfig, response, callData, extraData []byte, now time.Time) (*Result, error) {
	result, echo, err := DecodeResponse(response)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(echo, extraData) {
		return nil, ErrExtraDataMismatch
	}

	req, err := DecodeLookup(cfg.Contract.Hex(), callData, cfg.ChainID)
	if err != nil {
		return nil, errors.Wrap(err, "decode original call")
	}

	r, err := DecodeResult(result)
	if err != nil {
		return nil, err
	}
	if r.ExpiresAt <= uint64(now.Unix()) {
		return nil, ErrProofExpired
	}
	if r.Owner != req.Owner || r.AgentID.Cmp(req.AgentID) != 0 || r.AgentURI != req.AgentURI {
		return nil, ErrResultMismatch
	}

	digest := Digest(DigestParams{
		Contract:       cfg.Contract,
		ChainID:        cfg.ChainID,
		ExpiresAt:      r.ExpiresAt,
		ParentNode:     req.ParentNode,
		LabelHash:      req.LabelHash,
		Owner:          r.Owner,
		AgentID:        r.AgentID,
		ResolvedExpiry: r.ResolvedExpiry,
		AgentURI:       r.AgentURI,
		ExtraData:      extraData,
	})

	signer, err := RecoverSigner(digest, r.Signature)
	if err != nil {
		return nil, errors.Wrap(ErrSignerMismatch, err.Error())
	}
	if signer != cfg.TrustedSigner {
		return nil, ErrSignerMismatch
	}
	return r, nil
}
