package cmd

import (
	"fmt"
	"os"

	"github.com/SafeMPC/subname-gateway/cmd/keygen"
	"github.com/SafeMPC/subname-gateway/cmd/probe"
	"github.com/SafeMPC/subname-gateway/cmd/server"
	"github.com/SafeMPC/subname-gateway/cmd/verify"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/spf13/cobra"
)

const (
	configFlag  = "config"
	envFileFlag = "env-file"
)

var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "subname-gateway",
	Long: `subname-gateway
Off-chain authorization gateway (EIP-3668) for subname registrations.
Requires configuration through ENV.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		envFile, err := cmd.Flags().GetString(envFileFlag)
		if err != nil {
			return err
		}
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}

		configFile, err := cmd.Flags().GetString(configFlag)
		if err != nil {
			return err
		}
		if configFile != "" {
			return config.LoadConfigFile(configFile)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String(envFileFlag, ".env", "Load environment variables from this file if it exists")
	rootCmd.PersistentFlags().String(configFlag, "", "Optional config file (yaml, json, toml) whose keys are used as environment defaults")

	rootCmd.AddCommand(
		server.New(),
		probe.New(),
		verify.New(),
		keygen.New(),
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
