package ccip

import (
	"context"

	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/SafeMPC/subname-gateway/internal/util"
)

// Service runs the lookup pipeline for one GatewayConfig. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	cfg       *GatewayConfig
	validator *Validator
	signer    *Signer
	resolver  OwnerResolver
}

// NewService wires decoder, validator, signer and encoder for cfg. resolver is only
// required when cfg enables the registry check.
func NewService(cfg *GatewayConfig, clock time2.Clock, resolver OwnerResolver) (*Service, error) {
	validator, err := NewValidator(cfg, clock, resolver)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:       cfg,
		validator: validator,
		signer:    NewSigner(cfg, clock),
		resolver:  resolver,
	}, nil
}

// Config returns the gateway configuration.
func (s *Service) Config() *GatewayConfig {
	return s.cfg
}

// Resolve decodes, validates, signs and encodes one lookup. On error no signature is
// produced; the returned error is always a *Error.
func (s *Service) Resolve(ctx context.Context, sender string, data []byte) (*SignedResponse, error) {
	log := util.LogFromContext(ctx)

	req, err := DecodeLookup(sender, data, s.cfg.ChainID)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("label", req.Label).
		Str("owner", req.Owner.Hex()).
		Str("agent_id", req.AgentID.String()).
		Uint64("desired_expiry", req.DesiredExpiry).
		Msg("Decoded subname lookup")

	auth, err := s.validator.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	signed, err := s.signer.Sign(req, auth)
	if err != nil {
		return nil, err
	}

	out, err := EncodeResponse(signed.Result, req.ExtraData)
	if err != nil {
		return nil, serviceErr(err, "failed to encode response")
	}
	signed.Data = out

	return signed, nil
}

// SelfCheck signs and recovers a probe digest with the configured key.
func (s *Service) SelfCheck() error {
	digest := crypto.Keccak256Hash([]byte("subname-gateway self check"), s.cfg.ContractAddress.Bytes())
	_, err := s.signer.SignDigest(digest)
	return err
}

// CheckRegistry pings the identity registry endpoint when one is configured.
func (s *Service) CheckRegistry(ctx context.Context) error {
	pinger, ok := s.resolver.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	return pinger.Ping(ctx)
}

// Signer returns the trusted signer address.
func (s *Service) Signer() common.Address {
	return s.signer.Address()
}
