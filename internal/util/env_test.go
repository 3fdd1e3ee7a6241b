package util_test

import (
	"testing"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SUBNAME_GATEWAY_TEST_STRING", "agents.eth")

	assert.Equal(t, "agents.eth", util.GetEnv("SUBNAME_GATEWAY_TEST_STRING", "default"))
	assert.Equal(t, "default", util.GetEnv("SUBNAME_GATEWAY_TEST_UNSET", "default"))
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("SUBNAME_GATEWAY_TEST_INT", "63")
	t.Setenv("SUBNAME_GATEWAY_TEST_UINT64", "11155111")
	t.Setenv("SUBNAME_GATEWAY_TEST_BOOL", "true")
	t.Setenv("SUBNAME_GATEWAY_TEST_DURATION", "90s")
	t.Setenv("SUBNAME_GATEWAY_TEST_ARR", "0xabc, ,0xdef")
	t.Setenv("SUBNAME_GATEWAY_TEST_LEVEL", "warn")

	assert.Equal(t, 63, util.GetEnvAsInt("SUBNAME_GATEWAY_TEST_INT", 3))
	assert.Equal(t, uint64(11155111), util.GetEnvAsUint64("SUBNAME_GATEWAY_TEST_UINT64", 0))
	assert.True(t, util.GetEnvAsBool("SUBNAME_GATEWAY_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, util.GetEnvAsDuration("SUBNAME_GATEWAY_TEST_DURATION", time.Second))
	assert.Equal(t, []string{"0xabc", "0xdef"}, util.GetEnvAsStringArr("SUBNAME_GATEWAY_TEST_ARR", nil))
	assert.Equal(t, zerolog.WarnLevel, util.GetEnvAsLogLevel("SUBNAME_GATEWAY_TEST_LEVEL", zerolog.InfoLevel))

	assert.Equal(t, 3, util.GetEnvAsInt("SUBNAME_GATEWAY_TEST_UNSET", 3))
	assert.Equal(t, []string{}, util.GetEnvAsStringArr("SUBNAME_GATEWAY_TEST_UNSET", []string{}))
}

func TestGetEnvPanicsOnInvalidValues(t *testing.T) {
	t.Setenv("SUBNAME_GATEWAY_TEST_INVALID", "not-a-number")

	assert.Panics(t, func() { util.GetEnvAsInt("SUBNAME_GATEWAY_TEST_INVALID", 0) })
	assert.Panics(t, func() { util.GetEnvAsDuration("SUBNAME_GATEWAY_TEST_INVALID", 0) })
	assert.Panics(t, func() { util.GetEnvEnum("SUBNAME_GATEWAY_TEST_INVALID", "owner", []string{"owner", "requester"}) })
}
