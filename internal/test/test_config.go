package test

import (
	"crypto/ecdsa"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

// Well-known development key (first default hardhat/anvil account). Never use it on a
// real chain.
const (
	SignerPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	SignerAddress    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

	ContractAddress  = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	RegistryAddress  = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	OwnerAddress     = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	RequesterAddress = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

	ChainID      uint64 = 11155111
	ParentDomain        = "agents.eth"
)

// DefaultTestConfig returns a complete gateway configuration that does not depend on
// the environment.
func DefaultTestConfig() config.Server {
	return config.Server{
		Echo: config.EchoServer{
			Debug:                          false,
			ListenAddress:                  ":0",
			HideInternalServerErrorDetails: true,
			EnableCORSMiddleware:           true,
			EnableRecoverMiddleware:        true,
			EnableRequestIDMiddleware:      true,
			EnableLoggerMiddleware:         true,
			EnablePrometheusMiddleware:     true,
		},
		Logger: config.LoggerServer{
			Level:        zerolog.DebugLevel,
			RequestLevel: zerolog.DebugLevel,
		},
		Management: config.ManagementServer{
			ReadinessTimeout: time.Second,
			LivenessTimeout:  time.Second,
		},
		Gateway: config.GatewayServer{
			ServiceName:      "subname-gateway-test",
			SignerPrivateKey: SignerPrivateKey,
			TrustedSigner:    SignerAddress,
			ContractAddress:  ContractAddress,
			ChainID:          ChainID,
			ParentDomain:     ParentDomain,
			IdentityRegistry: RegistryAddress,
			Allowlist:        []string{},
			AllowlistSubject: string(ccip.SubjectOwner),
			LabelMinLength:   3,
			LabelMaxLength:   63,
			MinLease:         24 * time.Hour,
			MaxLease:         5 * 365 * 24 * time.Hour,
			DefaultLease:     365 * 24 * time.Hour,
			ProofTTL:         5 * time.Minute,
			RegistryCheck:    false,
			RegistryTimeout:  time.Second,
		},
		Consul: config.ConsulServer{
			Enabled: false,
		},
	}
}

// VerifierConfig returns what the registrar contract of DefaultTestConfig knows.
func VerifierConfig() ccip.VerifierConfig {
	return ccip.VerifierConfig{
		TrustedSigner: common.HexToAddress(SignerAddress),
		Contract:      common.HexToAddress(ContractAddress),
		ChainID:       ChainID,
	}
}

// MustSigningKey parses SignerPrivateKey.
func MustSigningKey() *ecdsa.PrivateKey {
	key, err := crypto.HexToECDSA(SignerPrivateKey)
	if err != nil {
		panic(err)
	}
	return key
}
