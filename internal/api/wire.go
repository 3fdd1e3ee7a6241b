//go:build wireinject

//go:generate wire

package api

import (
	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/SafeMPC/subname-gateway/internal/metrics"
	"github.com/dropbox/godropbox/time2"
	"github.com/google/wire"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewGatewayConfig,
	NewGatewayService,
	NewRegistration,
	metrics.New,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewOwnerResolver, NewClock, NoTest)
	return new(Server), nil
}

// InitNewServerWithDependencies returns a new Server instance using the given clock and
// identity registry resolver (which may be nil when the registry check is disabled).
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithDependencies(
	_ config.Server,
	_ time2.Clock,
	_ ccip.OwnerResolver,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
