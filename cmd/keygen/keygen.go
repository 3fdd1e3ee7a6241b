package keygen

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const envFlag = "env"

type key struct {
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
}

func New() *cobra.Command {
	var asEnv bool

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generates a new gateway signer key",
		Long: `Generates a new secp256k1 signer key.
The address has to be configured as trusted signer on the registrar contract.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pk, err := crypto.GenerateKey()
			if err != nil {
				return errors.Wrap(err, "failed to generate key")
			}

			k := key{
				PrivateKey: hexutil.Encode(crypto.FromECDSA(pk)),
				Address:    crypto.PubkeyToAddress(pk.PublicKey).Hex(),
			}

			if asEnv {
				fmt.Fprintf(cmd.OutOrStdout(), "GATEWAY_SIGNER_PRIVATE_KEY=%s\nGATEWAY_TRUSTED_SIGNER=%s\n", k.PrivateKey, k.Address)
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(k)
		},
	}

	cmd.Flags().BoolVar(&asEnv, envFlag, false, "Print the key as .env lines")

	return cmd
}
