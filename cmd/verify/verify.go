package verify

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	responseFlag  = "response"
	callDataFlag  = "call-data"
	extraDataFlag = "extra-data"
	signerFlag    = "signer"
	contractFlag  = "contract"
	chainIDFlag   = "chain-id"
	atFlag        = "at"
)

type Flags struct {
	Response  string
	CallData  string
	ExtraData string
	Signer    string
	Contract  string
	ChainID   uint64
	At        int64
}

type output struct {
	Valid          bool   `json:"valid"`
	Owner          string `json:"owner"`
	AgentID        string `json:"agentId"`
	AgentURI       string `json:"agentURI"`
	ResolvedExpiry uint64 `json:"resolvedExpiry"`
	ExpiresAt      uint64 `json:"expiresAt"`
	Callback       string `json:"callback"`
}

func New() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Checks a gateway response the way the registrar callback does",
		Long: `Checks a gateway response the way the registrar callback does.
Signer, contract and chain id default to the gateway configuration from ENV.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(flags)
		},
	}

	cmd.Flags().StringVar(&flags.Response, responseFlag, "", "Gateway response data (0x hex)")
	cmd.Flags().StringVar(&flags.CallData, callDataFlag, "", "Call data of the OffchainLookup (0x hex)")
	cmd.Flags().StringVar(&flags.ExtraData, extraDataFlag, "", "Extra data of the OffchainLookup (0x hex), defaults to the one in the call data")
	cmd.Flags().StringVar(&flags.Signer, signerFlag, "", "Trusted signer address")
	cmd.Flags().StringVar(&flags.Contract, contractFlag, "", "Registrar contract address")
	cmd.Flags().Uint64Var(&flags.ChainID, chainIDFlag, 0, "Chain id")
	cmd.Flags().Int64Var(&flags.At, atFlag, 0, "Unix time to verify at, defaults to now")

	_ = cmd.MarkFlagRequired(responseFlag)
	_ = cmd.MarkFlagRequired(callDataFlag)

	return cmd
}

func run(flags Flags) error {
	cfg := config.DefaultServiceConfigFromEnv()

	verifier, err := verifierConfig(flags, cfg)
	if err != nil {
		return err
	}

	response, err := hexutil.Decode(flags.Response)
	if err != nil {
		return errors.Wrap(err, "invalid --response")
	}
	callData, err := hexutil.Decode(flags.CallData)
	if err != nil {
		return errors.Wrap(err, "invalid --call-data")
	}

	var extraData []byte
	if flags.ExtraData != "" {
		extraData, err = hexutil.Decode(flags.ExtraData)
		if err != nil {
			return errors.Wrap(err, "invalid --extra-data")
		}
	} else {
		req, err := ccip.DecodeLookup(verifier.Contract.Hex(), callData, verifier.ChainID)
		if err != nil {
			return errors.Wrap(err, "invalid --call-data")
		}
		extraData = req.ExtraData
	}

	now := time.Now()
	if flags.At != 0 {
		now = time.Unix(flags.At, 0)
	}

	result, err := ccip.VerifyResponse(verifier, response, callData, extraData, now)
	if err != nil {
		return errors.Wrap(err, "verification failed")
	}

	callback, err := ccip.EncodeCallback(response, extraData)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output{
		Valid:          true,
		Owner:          result.Owner.Hex(),
		AgentID:        result.AgentID.String(),
		AgentURI:       result.AgentURI,
		ResolvedExpiry: result.ResolvedExpiry,
		ExpiresAt:      result.ExpiresAt,
		Callback:       hexutil.Encode(callback),
	})
}

func verifierConfig(flags Flags, cfg config.Server) (ccip.VerifierConfig, error) {
	signer := firstNonEmpty(flags.Signer, cfg.Gateway.TrustedSigner)
	contract := firstNonEmpty(flags.Contract, cfg.Gateway.ContractAddress)
	chainID := flags.ChainID
	if chainID == 0 {
		chainID = cfg.Gateway.ChainID
	}

	if !common.IsHexAddress(signer) {
		return ccip.VerifierConfig{}, fmt.Errorf("invalid or missing trusted signer %q", signer)
	}
	if !common.IsHexAddress(contract) {
		return ccip.VerifierConfig{}, fmt.Errorf("invalid or missing contract %q", contract)
	}
	if chainID == 0 {
		return ccip.VerifierConfig{}, errors.New("missing chain id")
	}

	return ccip.VerifierConfig{
		TrustedSigner: common.HexToAddress(signer),
		Contract:      common.HexToAddress(contract),
		ChainID:       chainID,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
