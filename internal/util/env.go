package util

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

func init() {
	viper.AutomaticEnv()
}

// GetEnv returns the value of key from the environment (or a loaded config file),
// falling back to defaultVal when it is unset.
func GetEnv(key string, defaultVal string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultVal
}

func GetEnvEnum(key string, defaultVal string, allowedValues []string) string {
	val := GetEnv(key, defaultVal)
	for _, allowed := range allowedValues {
		if val == allowed {
			return val
		}
	}

	log.Panic().Str("key", key).Str("value", val).Strs("allowed", allowedValues).Msg("Invalid value for env variable")
	return defaultVal
}

func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")
	if strVal == "" {
		return defaultVal
	}
	val, err := cast.ToIntE(strVal)
	if err != nil {
		log.Panic().Str("key", key).Str("value", strVal).Err(err).Msg("Failed to parse int value for env variable")
	}
	return val
}

func GetEnvAsUint64(key string, defaultVal uint64) uint64 {
	strVal := GetEnv(key, "")
	if strVal == "" {
		return defaultVal
	}
	val, err := cast.ToUint64E(strVal)
	if err != nil {
		log.Panic().Str("key", key).Str("value", strVal).Err(err).Msg("Failed to parse uint64 value for env variable")
	}
	return val
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")
	if strVal == "" {
		return defaultVal
	}
	val, err := cast.ToBoolE(strVal)
	if err != nil {
		log.Panic().Str("key", key).Str("value", strVal).Err(err).Msg("Failed to parse bool value for env variable")
	}
	return val
}

func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	strVal := GetEnv(key, "")
	if strVal == "" {
		return defaultVal
	}
	val, err := time.ParseDuration(strVal)
	if err != nil {
		log.Panic().Str("key", key).Str("value", strVal).Err(err).Msg("Failed to parse duration value for env variable")
	}
	return val
}

// GetEnvAsStringArr splits a separated env value, dropping empty entries.
func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	strVal := GetEnv(key, "")
	if len(strVal) == 0 {
		return defaultVal
	}

	sep := ","
	if len(separator) >= 1 {
		sep = separator[0]
	}

	out := make([]string, 0)
	for _, part := range strings.Split(strVal, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func GetEnvAsLogLevel(key string, defaultVal zerolog.Level) zerolog.Level {
	strVal := GetEnv(key, "")
	if len(strVal) == 0 {
		return defaultVal
	}

	level, err := zerolog.ParseLevel(strVal)
	if err != nil {
		log.Panic().Str("key", key).Str("value", strVal).Err(err).Msg("Failed to parse log level for env variable")
	}
	return level
}
