package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizforge/vizforge/internal/config"
	"github.com/vizforge/vizforge/internal/server"
	"github.com/vizforge/vizforge/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP generation server",
		Long: `Run the HTTP server exposing the generation pipeline.

Configuration is read from the TOML file at --config (default
` + "`" + `$XDG_CONFIG_HOME/vizforge/config.toml` + "`" + `), with --listen overriding the
configured address. The cache backend (file, redis, mongo, or none) comes
from the [cache] section.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			store, err := cfg.OpenCache(ctx)
			if err != nil {
				return fmt.Errorf("open cache backend %q: %w", cfg.Cache.Backend, err)
			}

			runner := pipeline.NewRunner(store, cfg.Keyer(), c.Logger)
			defer runner.Close()

			srv := server.New(runner, c.Logger, cfg.Server)
			printInfo("Listening on %s", cfg.Server.Listen)
			printDetail("Cache backend: %s", cfg.Cache.Backend)

			prog := newProgress(c.Logger)
			if err := srv.Run(ctx); err != nil {
				return err
			}
			prog.done("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")

	return cmd
}
