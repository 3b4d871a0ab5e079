package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"mass-image-editor/internal/models"
	"mass-image-editor/internal/pipeline"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		src  sourceFlags
		dest string
	)

	cmd := &cobra.Command{
		Use:   "export [file...]",
		Short: "Apply a chain and write the results into a new output folder",
		Long: `Export writes one image per source into a fresh directory. The directory
is named after the configured output name inside the destination; when it
already exists, output1, output2 and so on are tried in turn.`,
		Example: `  # Crop ten percent from each side of every image in ./scans
  mass-image-editor export -d scans -f crop:left=10,right=10,top=10,bottom=10

  # Use a chain file and write next to the sources
  mass-image-editor export -d scans -c chain.yaml --dest scans`,
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := src.chain()
			if err != nil {
				return err
			}

			set, err := src.images(cmd.Context(), a, args)
			if err != nil {
				return err
			}

			if dest == "" {
				dest = src.dir
			}

			applicator := pipeline.NewApplicator(pipeline.WithLogger(a.log))

			result, err := applicator.Export(cmd.Context(), set, chain, filepath.Join(dest, a.cfg.OutputName))
			if result != nil {
				for _, id := range result.Written {
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", id, result.Paths[id])
				}
			}

			var we *models.WriteError
			if errors.As(err, &we) && len(we.Succeeded) > 0 {
				return fmt.Errorf("%w (%d images were written before the failure)", err, len(we.Succeeded))
			}
			return err
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&dest, "dest", "", "Folder to create the output directory in (default: the source folder)")

	return cmd
}
