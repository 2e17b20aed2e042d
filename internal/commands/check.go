package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/feiertage/internal/app"
	"github.com/klabast/wb-services/feiertage/pkg/feiertage"
)

// ErrNotHoliday is returned by check --exit-code for a working day.
var ErrNotHoliday = errors.New("not a holiday")

// CheckOptions holds the flags of the check command.
type CheckOptions struct {
	Region   string
	ExitCode bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [moment]",
		Short: "Check whether a date is a holiday",
		Long: `Check whether a date is a holiday in a region.

The moment defaults to now and may be given as
  2023-10-03                 calendar date
  2023-10-03T12:00:00        wall clock date-time
  2023-10-03T01:30:00+02:00  RFC 3339 instant, converted to the configured time zone
  @1696291200                Unix seconds, converted to the configured time zone`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			region, err := regionFlag(opts.Region, cfg)
			if err != nil {
				return err
			}
			cache, err := newCache(cfg)
			if err != nil {
				return err
			}

			d := feiertage.DateOf(time.Now().In(cache.Location()))
			if len(args) == 1 {
				if d, err = cache.ParseMoment(args[0]); err != nil {
					return err
				}
			}
			if d.Year < app.MinYear || d.Year > app.MaxYear {
				return fmt.Errorf("%s: %d not in %d..%d", app.ErrInvalidYear, d.Year, app.MinYear, app.MaxYear)
			}

			res := app.NewCheckResult(cache.Holidays(d.Year, region), d)
			ctxlog.Logger(cmd.Context()).Debug("check", "date", res.Date, "region", res.Region, "holiday", res.Holiday)
			if res.Holiday {
				fmt.Fprintf(cmd.OutOrStdout(), "%s ist in %s ein Feiertag: %s\n", res.Date, region.Name(), strings.Join(res.Names, ", "))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ist in %s kein Feiertag\n", res.Date, region.Name())
			if opts.ExitCode {
				return ErrNotHoliday
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Region, "region", "", "region code or name (default from config)")
	cmd.Flags().BoolVar(&opts.ExitCode, "exit-code", false, "exit with status 1 if the date is not a holiday")
	return cmd
}
