package commands

import (
	"cloudeng.io/logging/ctxlog"
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/feiertage/internal/app"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the holiday API over HTTP",
		Long: `Serve the holiday API over HTTP.

Admin endpoints (/api/cache) require the credentials created by
hash-password; without an auth file they answer 403.

Environment Variables:
  FEIERTAGE_ADDR      listen address
  FEIERTAGE_REGION    default region
  FEIERTAGE_TIMEZONE  time zone for instants
  AUTH_FILE           path to auth file (default: auth.secret next to the binary)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			authFile, err := app.AuthFilePath(cfg.AuthFile)
			if err != nil {
				return err
			}
			auth, err := app.LoadAuth(ctx, authFile)
			if err != nil {
				return err
			}
			cache, err := newCache(cfg)
			if err != nil {
				return err
			}
			srv, err := app.NewServer(cfg, cache, auth)
			if err != nil {
				return err
			}
			ctxlog.Logger(ctx).Debug("configuration", "addr", cfg.Addr, "region", cfg.Region, "timezone", cfg.Timezone, "auth_file", authFile)
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+app.DefaultAddr+")")
	return cmd
}
