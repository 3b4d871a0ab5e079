package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mass-image-editor/internal/models"
	"mass-image-editor/internal/pipeline"

	"github.com/go-git/go-billy/v6/osfs"
	"github.com/spf13/cobra"
)

// sourceFlags selects the images and the chain for preview and export
type sourceFlags struct {
	dir       string
	chainFile string
	filters   []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dir, "dir", "d", ".", "Source folder")
	cmd.Flags().StringVarP(&f.chainFile, "chain", "c", "", "YAML chain file")
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, `Filter in chain order, "kind[:key=value,...]" (repeatable)`)
}

// chain builds the chain from the chain file followed by any --filter values
func (f *sourceFlags) chain() (models.Chain, error) {
	var chain models.Chain

	if f.chainFile != "" {
		file, err := os.Open(f.chainFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open chain file: %w", err)
		}
		defer file.Close()

		chain, err = models.ReadChain(file)
		if err != nil {
			return nil, err
		}
	}

	for _, spec := range f.filters {
		fd, err := models.ParseFilterSpec(spec, len(chain))
		if err != nil {
			return nil, err
		}
		chain = append(chain, fd)
	}

	return chain, nil
}

// images loads the named files from the source folder, or every supported
// file in it when names is empty
func (f *sourceFlags) images(ctx context.Context, a *app, names []string) (pipeline.ImageSet, error) {
	dir, err := filepath.Abs(f.dir)
	if err != nil {
		return nil, err
	}

	loader := pipeline.NewLoader(osfs.New("/"), a.log, a.cfg.Extensions)

	if len(names) == 0 {
		names, err = loader.List(dir)
		if err != nil {
			return nil, err
		}
	}

	set, warnings, err := loader.Load(ctx, dir, names)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		a.log.Warning("CLI", "image skipped", map[string]interface{}{
			"id":    w.ID,
			"error": w.Err.Error(),
		})
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("no decodable images in %s", dir)
	}

	return set, nil
}
