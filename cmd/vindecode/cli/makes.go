package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
	"github.com/WessleyAI/wessley-vin/engine/vin"
)

// NewMakesCommand creates the makes command.
func NewMakesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "makes",
		Short:         "List registered manufacturers with their WMI codes and models",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMakes(rootOpts, cmd)
		},
	}
}

func runMakes(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	makes := lookup.ListMakes(vin.Default())

	if opts.Format == "json" {
		return formatter.JSON("ok", makes)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MAKE\tWMIS\tMODELS")
	for _, m := range makes {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", m.Name, strings.Join(m.WMIs, ","), len(m.Models))
	}
	return tw.Flush()
}
