package ccip

import (
	"context"
	"math/big"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/SafeMPC/subname-gateway/internal/util"
)

// OwnerResolver reads the owner of an identity record from the identity registry.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, agentID *big.Int) (common.Address, error)
}

// Validator applies the authorization policy of one GatewayConfig.
type Validator struct {
	cfg      *GatewayConfig
	clock    time2.Clock
	resolver OwnerResolver
}

// NewValidator creates a validator. resolver may be nil when the registry check is disabled.
func NewValidator(cfg *GatewayConfig, clock time2.Clock, resolver OwnerResolver) (*Validator, error) {
	if cfg.Policy.RegistryCheck && resolver == nil {
		return nil, errors.New("registry check enabled but no identity registry resolver configured")
	}
	return &Validator{
		cfg:      cfg,
		clock:    clock,
		resolver: resolver,
	}, nil
}

// Validate runs the checks in order and stops at the first failure. A nil error means
// the request may be signed.
func (v *Validator) Validate(ctx context.Context, req *SubnameRequest) (*Authorization, error) {
	if req.ContractAddress != v.cfg.ContractAddress {
		return nil, validationErr("lookup sender is not the configured registrar contract")
	}
	if req.ChainID != v.cfg.ChainID {
		return nil, validationErr("chain id %d is not served by this gateway", req.ChainID)
	}
	if req.ParentNode != v.cfg.ParentNode {
		return nil, validationErr("parent node is not served by this gateway")
	}
	if err := ValidateLabel(req.Label, v.cfg.Policy.LabelMinLength, v.cfg.Policy.LabelMaxLength); err != nil {
		return nil, err
	}

	subject := req.Owner
	if v.cfg.Policy.AllowlistSubject == SubjectRequester {
		subject = req.Requester
	}
	if subject == (common.Address{}) {
		return nil, validationErr("%s address must not be zero", v.cfg.Policy.AllowlistSubject)
	}
	if !v.cfg.Allowlisted(subject) {
		return nil, authorizationErr("%s %s is not allowlisted", v.cfg.Policy.AllowlistSubject, subject.Hex())
	}

	now := v.clock.Now()
	expiry, err := v.resolveExpiry(now, req.DesiredExpiry)
	if err != nil {
		return nil, err
	}

	if v.cfg.Policy.RegistryCheck {
		if err := v.checkAgentOwner(ctx, req.AgentID, subject); err != nil {
			return nil, err
		}
	}

	return &Authorization{
		Subject:        subject,
		ResolvedExpiry: expiry,
		ValidatedAt:    now,
	}, nil
}

func (v *Validator) resolveExpiry(now time.Time, desired uint64) (uint64, error) {
	nowUnix := uint64(now.Unix())
	if desired == 0 {
		return nowUnix + uint64(v.cfg.Policy.DefaultLease/time.Second), nil
	}
	if desired <= nowUnix {
		return 0, validationErr("desired expiry is in the past")
	}

	if desired-nowUnix > uint64(v.cfg.Policy.MaxLease/time.Second) {
		return 0, validationErr("desired expiry exceeds the maximum lease of %s", v.cfg.Policy.MaxLease)
	}
	if lease := time.Duration(desired-nowUnix) * time.Second; lease < v.cfg.Policy.MinLease {
		return 0, validationErr("desired expiry is below the minimum lease of %s", v.cfg.Policy.MinLease)
	}
	return desired, nil
}

func (v *Validator) checkAgentOwner(ctx context.Context, agentID *big.Int, subject common.Address) error {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.Policy.RegistryTimeout)
	defer cancel()

	owner, err := v.resolver.OwnerOf(ctx, agentID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return upstreamErr(err, "identity registry lookup timed out")
		}
		return upstreamErr(err, "identity registry lookup failed")
	}
	if owner != subject {
		util.LogFromContext(ctx).Debug().
			Str("agent_id", agentID.String()).
			Str("registry_owner", owner.Hex()).
			Str("subject", subject.Hex()).
			Msg("Agent owner mismatch")
		return authorizationErr("agent %s is not owned by %s", agentID.String(), subject.Hex())
	}
	return nil
}
