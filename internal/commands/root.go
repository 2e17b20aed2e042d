package commands

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"cloudeng.io/logging/ctxlog"
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/feiertage/internal/app"
	"github.com/klabast/wb-services/feiertage/pkg/feiertage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	LogFormat  string // "text" | "json"
	ConfigPath string
}

// ValidLogFormats defines the allowed log formats.
var ValidLogFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the feiertage CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "feiertage",
		Short: "Gesetzliche Feiertage in Deutschland",
		Long: `Computes the public holidays of the German federal states, including
the confessional and municipal variants of Bavaria, Saxony and Thuringia.

Holidays can be listed, single dates checked and everything served over
HTTP as JSON, CSV or iCalendar.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "log format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewRegionsCommand(opts))
	cmd.AddCommand(NewHashPasswordCommand(opts))

	return cmd
}

func (o *RootOptions) newLogger(w io.Writer) (*slog.Logger, error) {
	hopts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if o.Verbose {
		hopts.Level = slog.LevelDebug
	}
	switch o.LogFormat {
	case "text":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q: must be one of %v", o.LogFormat, ValidLogFormats)
}

// loadConfig reads the configuration file, if any, and validates it.
func (o *RootOptions) loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig(o.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// newCache returns a query cache in the configured time zone.
func newCache(cfg app.Config) (*feiertage.Cache, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return feiertage.NewCache(feiertage.WithLocation(loc)), nil
}

// regionFlag resolves the --region flag against the configured default.
func regionFlag(flag string, cfg app.Config) (feiertage.Region, error) {
	if flag == "" {
		flag = cfg.Region
	}
	return feiertage.ParseRegion(flag)
}

func checkChoice(name, value string, valid []string) error {
	if !slices.Contains(valid, value) {
		return fmt.Errorf("invalid %s %q: must be one of %v", name, value, valid)
	}
	return nil
}
