package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/SafeMPC/subname-gateway/internal/discovery"
	"github.com/SafeMPC/subname-gateway/internal/metrics"
	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Router struct {
	Routes     []*echo.Route
	Root       *echo.Group
	Management *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
type Server struct {
	Config       config.Server
	Echo         *echo.Echo
	Router       *Router
	Clock        time2.Clock
	Gateway      *ccip.Service
	Metrics      *metrics.Service
	Registration *discovery.Registration
}

func newServerWithComponents(
	cfg config.Server,
	clock time2.Clock,
	gateway *ccip.Service,
	metricsService *metrics.Service,
	registration *discovery.Registration,
) *Server {
	s := &Server{
		Config:       cfg,
		Clock:        clock,
		Gateway:      gateway,
		Metrics:      metricsService,
		Registration: registration,
	}

	return s
}

// Ready reports whether all mandatory components are initialized.
func (s *Server) Ready() bool {
	return s.Echo != nil &&
		s.Router != nil &&
		s.Gateway != nil &&
		s.Metrics != nil
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if s.Registration != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Registration.Register(ctx); err != nil {
			return err
		}
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Registration != nil {
		log.Debug().Msg("Deregistering from service discovery")
		if err := s.Registration.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to deregister from service discovery")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")
		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}

// CheckLiveness verifies that the signing key still produces self-verifying signatures.
func (s *Server) CheckLiveness(ctx context.Context) []error {
	var errs []error
	if err := s.Gateway.SelfCheck(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// CheckReadiness additionally checks the identity registry endpoint when the registry
// cross-check is enabled.
func (s *Server) CheckReadiness(ctx context.Context) []error {
	errs := s.CheckLiveness(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.Config.Management.ReadinessTimeout)
	defer cancel()
	if err := s.Gateway.CheckRegistry(ctx); err != nil {
		errs = append(errs, err)
	}
	return errs
}
