package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment. Variables
// that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load env file %s", path)
	}
	return nil
}

// LoadConfigFile merges a yaml, toml or json file whose keys are the env variable names
// (e.g. GATEWAY_CHAIN_ID). Environment variables still take precedence.
func LoadConfigFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}
