package test

import (
	"context"
	"testing"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/api/router"
	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/dropbox/godropbox/time2"
)

// ServerOptions overrides components of the test server. Zero values select a mock
// clock started at time.Now and no identity registry resolver.
type ServerOptions struct {
	Clock         time2.Clock
	OwnerResolver ccip.OwnerResolver
}

// WithTestServer returns a fully configured server (using the default test config).
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

// WithTestServerConfigurable returns a fully configured server, allowing for configuration using the provided server config.
func WithTestServerConfigurable(t *testing.T, config config.Server, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerOptions(t, config, ServerOptions{}, closure)
}

// WithTestServerOptions additionally injects the clock and identity registry resolver.
func WithTestServerOptions(t *testing.T, config config.Server, opts ServerOptions, closure func(s *api.Server)) {
	t.Helper()

	s := NewTestServer(t, config, opts)

	closure(s)

	// echo is managed and should close automatically after running the test
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("Failed to shutdown server: %v", errs)
	}
}

// NewTestServer builds and routes a server without starting the listener.
func NewTestServer(t *testing.T, config config.Server, opts ServerOptions) *api.Server {
	t.Helper()

	clock := opts.Clock
	if clock == nil {
		clock = api.NewClock(t)
	}

	s, err := api.InitNewServerWithDependencies(config, clock, opts.OwnerResolver)
	if err != nil {
		t.Fatalf("Failed to init test server: %v", err)
	}

	router.Init(s)

	return s
}
