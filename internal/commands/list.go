package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/feiertage/internal/app"
	"github.com/klabast/wb-services/feiertage/pkg/feiertage"
)

// ValidListFormats defines the output formats of the list command.
var ValidListFormats = []string{"text", "csv", "json", "ics"}

var weekdays = [...]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

// ListOptions holds the flags of the list command.
type ListOptions struct {
	Year   int
	Region string
	Format string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the holidays of a region and year",
		Example: `  feiertage list --year 2024 --region "Baden-Württemberg"
  feiertage list --region DE-SN-KATH --format ics > sachsen.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&opts.Year, "year", 0, "year (default current year)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "region code or name (default from config)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|csv|json|ics)")
	return cmd
}

func runList(rootOpts *RootOptions, opts *ListOptions, w io.Writer) error {
	if err := checkChoice("format", opts.Format, ValidListFormats); err != nil {
		return err
	}
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
	year := opts.Year
	if year == 0 {
		year = time.Now().In(cache.Location()).Year()
	}
	if year < app.MinYear || year > app.MaxYear {
		return fmt.Errorf("%s: %d not in %d..%d", app.ErrInvalidYear, year, app.MinYear, app.MaxYear)
	}

	set := cache.Holidays(year, region)
	switch opts.Format {
	case "csv":
		return app.WriteCSV(w, app.EventsFromSet(set))
	case "json":
		return app.WriteJSON(w, region, year, app.EventsFromSet(set))
	case "ics":
		return app.WriteICS(w, app.Calendar{Region: region, Year: year, Events: app.EventsFromSet(set), Stamp: time.Now()})
	}
	return writeText(w, set)
}

func writeText(w io.Writer, set *feiertage.Set) error {
	if _, err := fmt.Fprintf(w, "%s %d\n", set.Region().Name(), set.Year()); err != nil {
		return err
	}
	for _, e := range set.Entries() {
		names := make([]string, len(e.Kinds))
		for i, k := range e.Kinds {
			names[i] = k.Name()
		}
		if _, err := fmt.Fprintf(w, "%s  %s  %s\n", e.Date, weekdays[e.Date.Weekday()], strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}
