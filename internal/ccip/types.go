package ccip

import (
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// SubnameRequest is the canonical form of one decoded lookup. It is built per call and
// never shared between requests.
type SubnameRequest struct {
	ParentNode    common.Hash
	Label         string
	LabelHash     common.Hash
	Owner         common.Address
	AgentID       *big.Int
	AgentURI      string
	DesiredExpiry uint64
	Requester     common.Address
	ExtraData     []byte

	// ContractAddress is the lookup sender and ChainID always comes from the gateway
	// configuration. Both are only compared against configuration, never trusted.
	ContractAddress common.Address
	ChainID         uint64
}

// Authorization is the outcome of a successful validation pass. ValidatedAt is the
// issue time of the proof signed for it.
type Authorization struct {
	Subject        common.Address
	ResolvedExpiry uint64
	ValidatedAt    time.Time
}

// SignedResponse carries the signed result and the final bytes returned to the caller.
type SignedResponse struct {
	Node           common.Hash
	Label          string
	Result         []byte
	Data           []byte
	Digest         common.Hash
	Signature      []byte
	ExpiresAt      uint64
	ResolvedExpiry uint64
	Owner          common.Address
	AgentID        *big.Int
	Signer         common.Address
}

// AllowlistSubject selects which request address the allowlist and the registry
// cross-check are applied to.
type AllowlistSubject string

const (
	SubjectOwner     AllowlistSubject = "owner"
	SubjectRequester AllowlistSubject = "requester"
)

// Policy holds the tunable validation and signing rules.
type Policy struct {
	LabelMinLength   int
	LabelMaxLength   int
	MinLease         time.Duration
	MaxLease         time.Duration
	DefaultLease     time.Duration
	ProofTTL         time.Duration
	AllowlistSubject AllowlistSubject
	RegistryCheck    bool
	RegistryTimeout  time.Duration
}

// DefaultPolicy returns the policy used when no overrides are configured.
func DefaultPolicy() Policy {
	return Policy{
		LabelMinLength:   3,
		LabelMaxLength:   63,
		MinLease:         24 * time.Hour,
		MaxLease:         5 * 365 * 24 * time.Hour,
		DefaultLease:     365 * 24 * time.Hour,
		ProofTTL:         5 * time.Minute,
		AllowlistSubject: SubjectOwner,
		RegistryCheck:    false,
		RegistryTimeout:  3 * time.Second,
	}
}

// GatewayOptions are the parsed inputs for NewGatewayConfig.
type GatewayOptions struct {
	SigningKey       *ecdsa.PrivateKey
	TrustedSigner    common.Address
	ContractAddress  common.Address
	ChainID          uint64
	ParentDomain     string
	ParentNode       common.Hash
	IdentityRegistry common.Address
	Allowlist        []common.Address
	Policy           Policy
}

// GatewayConfig is the immutable configuration shared by all requests of one gateway.
// It is only built through NewGatewayConfig and must not be modified afterwards.
type GatewayConfig struct {
	signingKey *ecdsa.PrivateKey
	allowlist  map[common.Address]struct{}

	TrustedSigner    common.Address
	ContractAddress  common.Address
	ChainID          uint64
	ParentDomain     string
	ParentNode       common.Hash
	IdentityRegistry common.Address
	Policy           Policy
}

// NewGatewayConfig validates opts and returns the resulting configuration. The trusted
// signer must be the address derived from the signing key.
func NewGatewayConfig(opts GatewayOptions) (*GatewayConfig, error) {
	if opts.SigningKey == nil {
		return nil, errors.New("signing key is required")
	}
	if opts.TrustedSigner == (common.Address{}) {
		return nil, errors.New("trusted signer address is required")
	}
	derived := crypto.PubkeyToAddress(opts.SigningKey.PublicKey)
	if derived != opts.TrustedSigner {
		return nil, errors.Errorf("trusted signer %s does not match signing key address %s", opts.TrustedSigner.Hex(), derived.Hex())
	}
	if opts.ContractAddress == (common.Address{}) {
		return nil, errors.New("contract address is required")
	}
	if opts.ChainID == 0 {
		return nil, errors.New("chain id is required")
	}

	parentNode := opts.ParentNode
	parentDomain := strings.ToLower(strings.TrimSpace(opts.ParentDomain))
	switch {
	case parentDomain != "" && parentNode != (common.Hash{}):
		if NameHash(parentDomain) != parentNode {
			return nil, errors.Errorf("parent node %s is not the namehash of %q", parentNode.Hex(), parentDomain)
		}
	case parentDomain != "":
		parentNode = NameHash(parentDomain)
	case parentNode == (common.Hash{}):
		return nil, errors.New("parent domain or parent node is required")
	}

	p := opts.Policy
	if p.LabelMinLength < 1 || p.LabelMaxLength < p.LabelMinLength {
		return nil, errors.Errorf("invalid label length bounds [%d, %d]", p.LabelMinLength, p.LabelMaxLength)
	}
	if p.MinLease < 0 || p.MaxLease < p.MinLease {
		return nil, errors.Errorf("invalid lease bounds [%s, %s]", p.MinLease, p.MaxLease)
	}
	if p.DefaultLease < p.MinLease || p.DefaultLease > p.MaxLease || p.DefaultLease <= 0 {
		return nil, errors.Errorf("default lease %s outside of [%s, %s]", p.DefaultLease, p.MinLease, p.MaxLease)
	}
	if p.ProofTTL <= 0 {
		return nil, errors.New("proof ttl must be positive")
	}
	switch p.AllowlistSubject {
	case SubjectOwner, SubjectRequester:
	case "":
		p.AllowlistSubject = SubjectOwner
	default:
		return nil, errors.Errorf("unknown allowlist subject %q", p.AllowlistSubject)
	}
	if p.RegistryCheck {
		if opts.IdentityRegistry == (common.Address{}) {
			return nil, errors.New("identity registry address is required when the registry check is enabled")
		}
		if p.RegistryTimeout <= 0 {
			return nil, errors.New("registry timeout must be positive")
		}
	}

	allowlist := make(map[common.Address]struct{}, len(opts.Allowlist))
	for _, addr := range opts.Allowlist {
		allowlist[addr] = struct{}{}
	}

	return &GatewayConfig{
		signingKey:       opts.SigningKey,
		allowlist:        allowlist,
		TrustedSigner:    opts.TrustedSigner,
		ContractAddress:  opts.ContractAddress,
		ChainID:          opts.ChainID,
		ParentDomain:     parentDomain,
		ParentNode:       parentNode,
		IdentityRegistry: opts.IdentityRegistry,
		Policy:           p,
	}, nil
}

// Allowlisted reports whether addr may be authorized. An empty allowlist permits everyone.
func (c *GatewayConfig) Allowlisted(addr common.Address) bool {
	if len(c.allowlist) == 0 {
		return true
	}
	_, ok := c.allowlist[addr]
	return ok
}

// AllowlistSize returns the number of allowlisted addresses.
func (c *GatewayConfig) AllowlistSize() int {
	return len(c.allowlist)
}
