package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/mesh-intelligence/recipecost/internal/api"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func (a *app) newServeCmd() *cobra.Command {
	var (
		address string
		port    int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: "Serve the JSON API under /api with /health, /ready and /metrics.\n" +
			"Stops gracefully on SIGINT or SIGTERM.",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.serverConfig()
			if cmd.Flags().Changed("address") {
				cfg.Address = address
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return a.withStore(func(st types.Store) error {
				return api.Run(cmd.Context(), cfg, st, a.log)
			})
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address (default from server.address)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from server.port)")
	return cmd
}

// serverConfig builds the API configuration from the server.* keys.
func (a *app) serverConfig() *api.Config {
	cfg := api.DefaultConfig()
	cfg.Address = a.v.GetString(cfgKeyServerAddress)
	cfg.Port = a.v.GetInt(cfgKeyServerPort)
	cfg.RateLimit = rate.Limit(a.v.GetFloat64(cfgKeyServerRateLimit))
	cfg.RateLimitBurst = a.v.GetInt(cfgKeyServerRateLimitBurst)
	if d := a.v.GetDuration(cfgKeyServerShutdownTimeout); d > 0 {
		cfg.ShutdownTimeout = d
	}
	return cfg
}
