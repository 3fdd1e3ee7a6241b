package api

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/chain/ethereum"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/SafeMPC/subname-gateway/internal/discovery"
	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if useMock {
		clock = time2.NewMockClock(time.Now())
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

func NoTest() []*testing.T {
	return nil
}

// NewGatewayConfig parses and checks the gateway settings. Any missing or inconsistent
// value is returned as an error so the process fails at startup.
func NewGatewayConfig(cfg config.Server) (*ccip.GatewayConfig, error) {
	g := cfg.Gateway

	keyHex := strings.TrimPrefix(strings.TrimSpace(g.SignerPrivateKey), "0x")
	if keyHex == "" {
		return nil, fmt.Errorf("GATEWAY_SIGNER_PRIVATE_KEY is not configured")
	}
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("GATEWAY_SIGNER_PRIVATE_KEY is invalid: %w", err)
	}

	trustedSigner, err := parseAddress("GATEWAY_TRUSTED_SIGNER", g.TrustedSigner, true)
	if err != nil {
		return nil, err
	}
	contract, err := parseAddress("GATEWAY_CONTRACT_ADDRESS", g.ContractAddress, true)
	if err != nil {
		return nil, err
	}
	registry, err := parseAddress("GATEWAY_IDENTITY_REGISTRY", g.IdentityRegistry, false)
	if err != nil {
		return nil, err
	}
	if g.ChainID == 0 {
		return nil, fmt.Errorf("GATEWAY_CHAIN_ID is not configured")
	}

	var parentNode common.Hash
	if g.ParentNode != "" {
		b, err := decodeHex32(g.ParentNode)
		if err != nil {
			return nil, fmt.Errorf("GATEWAY_PARENT_NODE is invalid: %w", err)
		}
		parentNode = b
	}

	allowlist := make([]common.Address, 0, len(g.Allowlist))
	for _, entry := range g.Allowlist {
		addr, err := parseAddress("GATEWAY_ALLOWLIST", entry, true)
		if err != nil {
			return nil, err
		}
		allowlist = append(allowlist, addr)
	}

	return ccip.NewGatewayConfig(ccip.GatewayOptions{
		SigningKey:       key,
		TrustedSigner:    trustedSigner,
		ContractAddress:  contract,
		ChainID:          g.ChainID,
		ParentDomain:     g.ParentDomain,
		ParentNode:       parentNode,
		IdentityRegistry: registry,
		Allowlist:        allowlist,
		Policy: ccip.Policy{
			LabelMinLength:   g.LabelMinLength,
			LabelMaxLength:   g.LabelMaxLength,
			MinLease:         g.MinLease,
			MaxLease:         g.MaxLease,
			DefaultLease:     g.DefaultLease,
			ProofTTL:         g.ProofTTL,
			AllowlistSubject: ccip.AllowlistSubject(g.AllowlistSubject),
			RegistryCheck:    g.RegistryCheck,
			RegistryTimeout:  g.RegistryTimeout,
		},
	})
}

// NewOwnerResolver returns the identity registry client, or nil when the registry
// cross-check is disabled.
func NewOwnerResolver(cfg config.Server, gatewayConfig *ccip.GatewayConfig) (ccip.OwnerResolver, error) {
	if !cfg.Gateway.RegistryCheck {
		return nil, nil
	}
	if cfg.Gateway.RPCURL == "" {
		return nil, fmt.Errorf("GATEWAY_RPC_URL is required when GATEWAY_REGISTRY_CHECK is enabled")
	}

	rpc := ethereum.NewRPCClient(cfg.Gateway.RPCURL, cfg.Gateway.RegistryTimeout)
	return ccip.NewRegistryClient(rpc, gatewayConfig.IdentityRegistry, gatewayConfig.ChainID), nil
}

func NewGatewayService(gatewayConfig *ccip.GatewayConfig, clock time2.Clock, resolver ccip.OwnerResolver) (*ccip.Service, error) {
	return ccip.NewService(gatewayConfig, clock, resolver)
}

// NewRegistration 创建 Consul 注册，未启用时返回 nil
func NewRegistration(cfg config.Server, gatewayConfig *ccip.GatewayConfig) (*discovery.Registration, error) {
	if !cfg.Consul.Enabled {
		return nil, nil
	}

	consul, err := discovery.NewConsulDiscovery(cfg.Consul.Address, cfg.Consul.Token)
	if err != nil {
		return nil, err
	}

	serviceID := cfg.Consul.ServiceID
	if serviceID == "" {
		serviceID = fmt.Sprintf("%s-%s", cfg.Gateway.ServiceName, uuid.NewString())
	}

	service := &discovery.ServiceInfo{
		ID:      serviceID,
		Name:    cfg.Gateway.ServiceName,
		Address: cfg.Consul.AdvertiseAddress,
		Port:    cfg.Consul.AdvertisePort,
		Tags: []string{
			"ccip-read",
			"chain:" + strconv.FormatUint(gatewayConfig.ChainID, 10),
		},
		Meta: map[string]string{
			"contract":    gatewayConfig.ContractAddress.Hex(),
			"parent_node": gatewayConfig.ParentNode.Hex(),
			"signer":      gatewayConfig.TrustedSigner.Hex(),
		},
		Check: &discovery.HealthCheck{
			Type:                           "http",
			Interval:                       cfg.Consul.CheckInterval,
			Timeout:                        cfg.Consul.CheckTimeout,
			DeregisterCriticalServiceAfter: cfg.Consul.DeregisterAfter,
			Path:                           "/health",
		},
	}

	log.Debug().Str("service_id", serviceID).Str("consul", cfg.Consul.Address).Msg("Consul registration configured")

	return discovery.NewRegistration(consul, service), nil
}

func parseAddress(name string, value string, required bool) (common.Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return common.Address{}, fmt.Errorf("%s is not configured", name)
		}
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%s is not a valid address: %q", name, value)
	}
	return common.HexToAddress(value), nil
}

func decodeHex32(value string) (common.Hash, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "0x") || len(value) != 66 {
		return common.Hash{}, fmt.Errorf("expected 0x-prefixed 32 byte hex, got %q", value)
	}
	b, err := hexutil.Decode(value)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}
