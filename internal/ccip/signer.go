package ccip

import (
	"crypto/ecdsa"
	"encoding/binary"
	"math/big"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// DigestParams lists every value the signature is bound to.
type DigestParams struct {
	Contract       common.Address
	ChainID        uint64
	ExpiresAt      uint64
	ParentNode     common.Hash
	LabelHash      common.Hash
	Owner          common.Address
	AgentID        *big.Int
	ResolvedExpiry uint64
	AgentURI       string
	ExtraData      []byte
}

// Digest computes the EIP-191 version 0x00 ("intended validator") hash the registrar
// verifies:
//
//	keccak256(0x19 0x00 contract chainId expiresAt parentNode labelHash owner agentId
//	          resolvedExpiry keccak256(agentURI) keccak256(extraData))
//
// packed the way abi.encodePacked packs the corresponding Solidity types.
func Digest(p DigestParams) common.Hash {
	agentID := new(big.Int)
	if p.AgentID != nil {
		agentID.Set(p.AgentID)
	}

	buf := make([]byte, 0, 2+20+32+8+32+32+20+32+8+32+32)
	buf = append(buf, 0x19, 0x00)
	buf = append(buf, p.Contract.Bytes()...)
	buf = append(buf, math.U256Bytes(new(big.Int).SetUint64(p.ChainID))...)
	buf = binary.BigEndian.AppendUint64(buf, p.ExpiresAt)
	buf = append(buf, p.ParentNode.Bytes()...)
	buf = append(buf, p.LabelHash.Bytes()...)
	buf = append(buf, p.Owner.Bytes()...)
	buf = append(buf, math.U256Bytes(agentID)...)
	buf = binary.BigEndian.AppendUint64(buf, p.ResolvedExpiry)
	buf = append(buf, crypto.Keccak256([]byte(p.AgentURI))...)
	buf = append(buf, crypto.Keccak256(p.ExtraData)...)

	return crypto.Keccak256Hash(buf)
}

// Signer produces signatures the registrar recovers with ecrecover.
type Signer struct {
	key     *ecdsa.PrivateKey
	trusted common.Address
	ttl     time.Duration
	clock   time2.Clock
}

func NewSigner(cfg *GatewayConfig, clock time2.Clock) *Signer {
	return &Signer{
		key:     cfg.signingKey,
		trusted: cfg.TrustedSigner,
		ttl:     cfg.Policy.ProofTTL,
		clock:   clock,
	}
}

// Address returns the trusted signer address.
func (s *Signer) Address() common.Address {
	return s.trusted
}

// Sign binds req and auth into a signed result. The proof expires ProofTTL after the
// request was validated (or after now when auth carries no validation time),
// independently of the lease expiry it authorizes.
func (s *Signer) Sign(req *SubnameRequest, auth *Authorization) (*SignedResponse, error) {
	if req.AgentID == nil || req.AgentID.Sign() < 0 {
		return nil, serviceErr(nil, "invalid agent id")
	}

	issuedAt := auth.ValidatedAt
	if issuedAt.IsZero() {
		issuedAt = s.clock.Now()
	}
	expiresAt := uint64(issuedAt.Add(s.ttl).Unix())
	digest := Digest(DigestParams{
		Contract:       req.ContractAddress,
		ChainID:        req.ChainID,
		ExpiresAt:      expiresAt,
		ParentNode:     req.ParentNode,
		LabelHash:      req.LabelHash,
		Owner:          req.Owner,
		AgentID:        req.AgentID,
		ResolvedExpiry: auth.ResolvedExpiry,
		AgentURI:       req.AgentURI,
		ExtraData:      req.ExtraData,
	})

	sig, err := s.SignDigest(digest)
	if err != nil {
		return nil, serviceErr(err, "failed to sign response")
	}

	result, err := EncodeResult(&Result{
		Owner:          req.Owner,
		AgentID:        req.AgentID,
		AgentURI:       req.AgentURI,
		ResolvedExpiry: auth.ResolvedExpiry,
		ExpiresAt:      expiresAt,
		Signature:      sig,
	})
	if err != nil {
		return nil, serviceErr(err, "failed to encode result")
	}

	return &SignedResponse{
		Node:           SubnameNode(req.ParentNode, req.Label),
		Label:          req.Label,
		Result:         result,
		Digest:         digest,
		Signature:      sig,
		ExpiresAt:      expiresAt,
		ResolvedExpiry: auth.ResolvedExpiry,
		Owner:          req.Owner,
		AgentID:        new(big.Int).Set(req.AgentID),
		Signer:         s.trusted,
	}, nil
}

// SignDigest signs digest and returns r || s || v with v in {27, 28}. The signature is
// recovered before it is returned and rejected unless it maps to the trusted signer.
func (s *Signer) SignDigest(digest common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(digest.Bytes(), s.key)
	if err != nil {
		return nil, errors.Wrap(err, "ecdsa sign")
	}
	if len(sig) != crypto.SignatureLength {
		return nil, errors.Errorf("unexpected signature length %d", len(sig))
	}
	sig[crypto.RecoveryIDOffset] += 27

	recovered, err := RecoverSigner(digest, sig)
	if err != nil {
		return nil, errors.Wrap(err, "self-verification failed")
	}
	if recovered != s.trusted {
		return nil, errors.Errorf("self-verification recovered %s, expected %s", recovered.Hex(), s.trusted.Hex())
	}
	return sig, nil
}

// RecoverSigner recovers the address that produced an ecrecover style signature
// (v in {27, 28}) over digest. High-s signatures are rejected.
func RecoverSigner(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, errors.Errorf("invalid signature length %d", len(sig))
	}
	v := sig[crypto.RecoveryIDOffset]
	if v != 27 && v != 28 {
		return common.Address{}, errors.Errorf("invalid signature recovery id %d", v)
	}

	raw := make([]byte, crypto.SignatureLength)
	copy(raw, sig)
	raw[crypto.RecoveryIDOffset] = v - 27

	r := new(big.Int).SetBytes(raw[:32])
	sv := new(big.Int).SetBytes(raw[32:64])
	if !crypto.ValidateSignatureValues(raw[crypto.RecoveryIDOffset], r, sv, true) {
		return common.Address{}, errors.New("invalid signature values")
	}

	pub, err := crypto.SigToPub(digest.Bytes(), raw)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "recover public key")
	}
	return crypto.PubkeyToAddress(*pub), nil
}
