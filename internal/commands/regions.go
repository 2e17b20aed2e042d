package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/feiertage/pkg/feiertage"
)

// NewRegionsCommand creates the regions command.
func NewRegionsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the supported regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tHOLIDAYS")
			for _, r := range feiertage.Regions() {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Code(), r.Name(), len(feiertage.RegionalKinds(r)))
			}
			return tw.Flush()
		},
	}
}
