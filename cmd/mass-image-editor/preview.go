package main

import (
	"fmt"
	"text/tabwriter"

	"mass-image-editor/internal/pipeline"

	"github.com/spf13/cobra"
)

func newPreviewCmd(a *app) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "preview [file...]",
		Short: "Apply a chain in memory and report the resulting sizes",
		Example: `  # Check a chain against every image in ./scans
  mass-image-editor preview -d scans -f rotate:angle=90 -f greyscale`,
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := src.chain()
			if err != nil {
				return err
			}

			set, err := src.images(cmd.Context(), a, args)
			if err != nil {
				return err
			}

			applicator := pipeline.NewApplicator(
				pipeline.WithLogger(a.log),
				pipeline.WithWorkers(a.cfg.Workers),
			)

			result, err := applicator.Preview(cmd.Context(), set, chain)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "IMAGE\tINPUT\tOUTPUT")
			for _, id := range set.IDs() {
				in := set[id].Bounds()
				if out, ok := result.Images[id]; ok {
					b := out.Bounds()
					fmt.Fprintf(tw, "%s\t%dx%d\t%dx%d\n", id, in.Dx(), in.Dy(), b.Dx(), b.Dy())
					continue
				}
				fmt.Fprintf(tw, "%s\t%dx%d\tfailed: %v\n", id, in.Dx(), in.Dy(), result.Failures[id])
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(result.Failures) > 0 {
				return fmt.Errorf("%d of %d images failed", len(result.Failures), len(set))
			}
			return nil
		},
	}

	src.register(cmd)

	return cmd
}
