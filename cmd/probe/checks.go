package probe

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/config"
	"github.com/SafeMPC/subname-gateway/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type check func(s *api.Server, ctx context.Context) []error

func newLiveness() *cobra.Command {
	return newProbe("liveness", "Signs and recovers a probe digest with the configured key",
		func(s *api.Server, ctx context.Context) []error { return s.CheckLiveness(ctx) },
		func(c config.Server) time.Duration { return c.Management.LivenessTimeout })
}

func newReadiness() *cobra.Command {
	return newProbe("readiness", "Runs the liveness check and pings the identity registry endpoint if enabled",
		func(s *api.Server, ctx context.Context) []error { return s.CheckReadiness(ctx) },
		func(c config.Server) time.Duration { return c.Management.ReadinessTimeout })
}

func newProbe(name string, short string, run check, timeout func(config.Server) time.Duration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}

			config := config.DefaultServiceConfigFromEnv()
			if !verbose {
				config.Logger.Level = config.Logger.Level + 1
			}

			return command.WithServer(cmd.Context(), config, func(ctx context.Context, s *api.Server) error {
				ctx, cancel := context.WithTimeout(ctx, timeout(config))
				defer cancel()

				errs := run(s, ctx)
				if len(errs) > 0 {
					for _, err := range errs {
						log.Error().Err(err).Str("probe", name).Msg("Probe failed")
					}
					return fmt.Errorf("%s probe failed with %d error(s)", name, len(errs))
				}

				fmt.Fprintf(os.Stdout, "%s: ok\n", name)
				return nil
			})
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
