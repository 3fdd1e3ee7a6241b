package command

import (
	"context"
	"fmt"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// ConfigureLogger applies the logger settings of config to the global zerolog logger.
func ConfigureLogger(config config.Server) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(config.Logger.Level)
	if config.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	}
}

// WithServer initializes a server (without starting the listener) for one-off commands
// and shuts it down once f returns.
func WithServer(ctx context.Context, config config.Server, f func(ctx context.Context, s *api.Server) error) error {
	ConfigureLogger(config)

	s, err := api.InitNewServer(config)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
			log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		}
	}()

	return f(ctx, s)
}

func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <subcommand>", name),
		Short: fmt.Sprintf("Runs %s subcommands", name),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}
