package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/test"
	"github.com/SafeMPC/subname-gateway/internal/util/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithServer(t *testing.T) {
	config := test.DefaultTestConfig()
	config.Logger.PrettyPrintConsole = false

	var testError = errors.New("test error")

	resultErr := command.WithServer(testContext(t), config, func(ctx context.Context, s *api.Server) error {
		require.NotNil(t, s.Gateway)
		assert.Empty(t, s.CheckLiveness(ctx))
		assert.Equal(t, test.SignerAddress, s.Gateway.Signer().Hex())

		return testError
	})

	assert.Equal(t, testError, resultErr)
}

func TestWithServerInvalidConfig(t *testing.T) {
	config := test.DefaultTestConfig()
	config.Gateway.SignerPrivateKey = ""

	err := command.WithServer(testContext(t), config, func(ctx context.Context, s *api.Server) error {
		t.Fatal("must not be called")
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GATEWAY_SIGNER_PRIVATE_KEY")
}

func TestNewSubcommandGroup(t *testing.T) {
	cmd := command.NewSubcommandGroup("probe")
	assert.Equal(t, "probe <subcommand>", cmd.Use)
	require.NoError(t, cmd.RunE(cmd, nil))
}

// testContext returns a context canceled when the test finishes
// (stand-in for testing.T.Context, which requires Go 1.24).
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
