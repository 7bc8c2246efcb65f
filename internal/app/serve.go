package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/zotmcp/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var (
		listen string
		debug  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Serve the library tools over streamable HTTP for MCP clients.

The server binds to serve.host:serve.port from the config (override with
--listen). If a bearer token is configured, every request must carry it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger(debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if listen == "" {
				listen = fmt.Sprintf("%s:%d", cfg.Serve.Host, cfg.Serve.Port)
			}
			if cfg.Serve.Token == "" {
				warn("no bearer token configured (%s) — the server is unauthenticated", cfg.Serve.TokenEnv)
			}

			srv, err := mcp.NewServer(mcp.Config{
				Listen:      listen,
				Path:        cfg.Serve.Path,
				BearerToken: cfg.Serve.Token,
				Library:     libraryRef(),
				TopTags:     cfg.Defaults.TopTags,
				SearchLimit: cfg.Defaults.SearchLimit,
				Version:     appVersion,
			}, svc, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
