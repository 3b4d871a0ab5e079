package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"mass-image-editor/internal/models"

	"github.com/spf13/cobra"
)

func newFiltersCmd(a *app) *cobra.Command {
	var printChain bool

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List available filters and their parameters",
		Example: `  # Show every filter with its parameter domains
  mass-image-editor filters

  # Print a starter chain file with every filter disabled
  mass-image-editor filters --chain > chain.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if printChain {
				return models.WriteChain(out, models.DefaultChain())
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tPARAMETERS\tDESCRIPTION")
			for _, kind := range models.Kinds {
				var params []string
				for _, pr := range kind.Parameters() {
					params = append(params, fmt.Sprintf("%s=%v [%s]", pr.Name, pr.Default, pr.Domain()))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", kind, strings.Join(params, " "), kind.Description())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&printChain, "chain", false, "Print the default chain as YAML")

	return cmd
}
