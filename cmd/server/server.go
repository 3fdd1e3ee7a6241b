package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/api/router"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/SafeMPC/subname-gateway/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	probeFlag       = "probe"
	shutdownTimeout = 30 * time.Second
)

type Flags struct {
	Probe bool
}

func New() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the gateway server",
		Long: `Starts the gateway server.
Use --probe to run the readiness checks once before the listener is started.`,
		Run: func(_ *cobra.Command, _ []string) {
			runServer(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Probe, probeFlag, "p", false, "Run readiness checks before serving and abort if they fail.")

	return cmd
}

func runServer(flags Flags) {
	config := config.DefaultServiceConfigFromEnv()
	command.ConfigureLogger(config)

	s, err := api.InitNewServer(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	router.Init(s)

	cfg := s.Gateway.Config()
	log.Info().
		Str("service", config.Gateway.ServiceName).
		Str("parent_domain", cfg.ParentDomain).
		Str("parent_node", cfg.ParentNode.Hex()).
		Uint64("chain_id", cfg.ChainID).
		Str("contract", cfg.ContractAddress.Hex()).
		Str("signer", s.Gateway.Signer().Hex()).
		Int("allowlist_size", cfg.AllowlistSize()).
		Bool("registry_check", cfg.Policy.RegistryCheck).
		Msg("Gateway configured")

	if flags.Probe {
		ctx, cancel := context.WithTimeout(context.Background(), config.Management.ReadinessTimeout)
		errs := s.CheckReadiness(ctx)
		cancel()
		if len(errs) > 0 {
			log.Fatal().Errs("errs", errs).Msg("Readiness probe failed")
		}
	}

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	log.Info().Str("listen_address", config.Echo.ListenAddress).Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		log.Fatal().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}

	log.Info().Msg("Server shut down gracefully")
}
