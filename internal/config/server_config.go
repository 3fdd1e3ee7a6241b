package config

import (
	"time"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/rs/zerolog"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableCORSMiddleware           bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
	EnablePrometheusMiddleware     bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

type ManagementServer struct {
	ReadinessTimeout time.Duration
	LivenessTimeout  time.Duration
}

// GatewayServer holds the raw gateway settings. They are parsed and checked into a
// ccip.GatewayConfig once at startup.
type GatewayServer struct {
	ServiceName      string
	SignerPrivateKey string
	TrustedSigner    string
	ContractAddress  string
	ChainID          uint64
	ParentDomain     string
	ParentNode       string
	IdentityRegistry string
	RPCURL           string
	Allowlist        []string
	AllowlistSubject string
	LabelMinLength   int
	LabelMaxLength   int
	MinLease         time.Duration
	MaxLease         time.Duration
	DefaultLease     time.Duration
	ProofTTL         time.Duration
	RegistryCheck    bool
	RegistryTimeout  time.Duration
}

// ConsulServer configures optional self-registration in Consul.
type ConsulServer struct {
	Enabled          bool
	Address          string
	Token            string
	ServiceID        string
	AdvertiseAddress string
	AdvertisePort    int
	CheckInterval    time.Duration
	CheckTimeout     time.Duration
	DeregisterAfter  time.Duration
}

type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Management ManagementServer
	Gateway    GatewayServer
	Consul     ConsulServer
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	policy := ccip.DefaultPolicy()

	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnablePrometheusMiddleware:     util.GetEnvAsBool("SERVER_ECHO_ENABLE_PROMETHEUS_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.GetEnvAsLogLevel("SERVER_LOGGER_LEVEL", zerolog.InfoLevel),
			RequestLevel:       util.GetEnvAsLogLevel("SERVER_LOGGER_REQUEST_LEVEL", zerolog.InfoLevel),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Management: ManagementServer{
			ReadinessTimeout: util.GetEnvAsDuration("SERVER_MANAGEMENT_READINESS_TIMEOUT", 4*time.Second),
			LivenessTimeout:  util.GetEnvAsDuration("SERVER_MANAGEMENT_LIVENESS_TIMEOUT", 2*time.Second),
		},
		Gateway: GatewayServer{
			ServiceName:      util.GetEnv("GATEWAY_SERVICE_NAME", "subname-gateway"),
			SignerPrivateKey: util.GetEnv("GATEWAY_SIGNER_PRIVATE_KEY", ""),
			TrustedSigner:    util.GetEnv("GATEWAY_TRUSTED_SIGNER", ""),
			ContractAddress:  util.GetEnv("GATEWAY_CONTRACT_ADDRESS", ""),
			ChainID:          util.GetEnvAsUint64("GATEWAY_CHAIN_ID", 0),
			ParentDomain:     util.GetEnv("GATEWAY_PARENT_DOMAIN", ""),
			ParentNode:       util.GetEnv("GATEWAY_PARENT_NODE", ""),
			IdentityRegistry: util.GetEnv("GATEWAY_IDENTITY_REGISTRY", ""),
			RPCURL:           util.GetEnv("GATEWAY_RPC_URL", ""),
			Allowlist:        util.GetEnvAsStringArr("GATEWAY_ALLOWLIST", []string{}),
			AllowlistSubject: util.GetEnvEnum("GATEWAY_ALLOWLIST_SUBJECT", string(policy.AllowlistSubject), []string{string(ccip.SubjectOwner), string(ccip.SubjectRequester)}),
			LabelMinLength:   util.GetEnvAsInt("GATEWAY_LABEL_MIN_LENGTH", policy.LabelMinLength),
			LabelMaxLength:   util.GetEnvAsInt("GATEWAY_LABEL_MAX_LENGTH", policy.LabelMaxLength),
			MinLease:         util.GetEnvAsDuration("GATEWAY_MIN_LEASE", policy.MinLease),
			MaxLease:         util.GetEnvAsDuration("GATEWAY_MAX_LEASE", policy.MaxLease),
			DefaultLease:     util.GetEnvAsDuration("GATEWAY_DEFAULT_LEASE", policy.DefaultLease),
			ProofTTL:         util.GetEnvAsDuration("GATEWAY_PROOF_TTL", policy.ProofTTL),
			RegistryCheck:    util.GetEnvAsBool("GATEWAY_REGISTRY_CHECK", policy.RegistryCheck),
			RegistryTimeout:  util.GetEnvAsDuration("GATEWAY_REGISTRY_TIMEOUT", policy.RegistryTimeout),
		},
		Consul: ConsulServer{
			Enabled:          util.GetEnvAsBool("CONSUL_ENABLED", false),
			Address:          util.GetEnv("CONSUL_ADDRESS", "localhost:8500"),
			Token:            util.GetEnv("CONSUL_TOKEN", ""),
			ServiceID:        util.GetEnv("CONSUL_SERVICE_ID", ""),
			AdvertiseAddress: util.GetEnv("CONSUL_ADVERTISE_ADDRESS", "127.0.0.1"),
			AdvertisePort:    util.GetEnvAsInt("CONSUL_ADVERTISE_PORT", 8080),
			CheckInterval:    util.GetEnvAsDuration("CONSUL_CHECK_INTERVAL", 10*time.Second),
			CheckTimeout:     util.GetEnvAsDuration("CONSUL_CHECK_TIMEOUT", 2*time.Second),
			DeregisterAfter:  util.GetEnvAsDuration("CONSUL_DEREGISTER_CRITICAL_AFTER", time.Minute),
		},
	}
}
