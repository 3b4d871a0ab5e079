package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"mass-image-editor/internal/logger"
	"mass-image-editor/internal/models"
	"mass-image-editor/internal/processing/chain"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Applicator runs one filter chain over every image of a set.
type Applicator struct {
	composer *chain.Composer
	fs       billy.Filesystem
	logger   logger.Logger
	workers  int
}

type Option func(*Applicator)

func WithLogger(log logger.Logger) Option {
	return func(a *Applicator) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithFilesystem sets where exports are written. Paths handed to Export are
// made absolute before use.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(a *Applicator) {
		if fs != nil {
			a.fs = fs
		}
	}
}

// WithWorkers bounds how many images Preview processes concurrently
func WithWorkers(n int) Option {
	return func(a *Applicator) {
		if n > 0 {
			a.workers = n
		}
	}
}

func NewApplicator(opts ...Option) *Applicator {
	a := &Applicator{
		fs:      osfs.New("/"),
		logger:  logger.Nop(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.composer = chain.NewComposer(a.logger)
	return a
}

// Preview applies c to every image in set. A chain that fails validation is
// returned as an error before any image is touched; per-image failures are
// collected in the result. The inputs are not modified.
func (a *Applicator) Preview(ctx context.Context, set ImageSet, c models.Chain) (*PreviewResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	start := time.Now()
	result := &PreviewResult{
		Images:   make(ImageSet, len(set)),
		Failures: make(map[string]error),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for _, id := range set.IDs() {
		id, img := id, set[id]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out, err := a.composer.Apply(gctx, img, c)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				result.Failures[id] = err
				a.logger.Warning("Applicator", "preview failed for image", map[string]interface{}{
					"run_id": runID,
					"id":     id,
					"error":  err.Error(),
				})
				return nil
			}
			result.Images[id] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Info("Applicator", "preview completed", map[string]interface{}{
		"run_id":   runID,
		"images":   len(result.Images),
		"failures": len(result.Failures),
		"filters":  len(c.Enabled()),
		"duration": time.Since(start).String(),
	})

	return result, nil
}

// Export applies c to every image in set and writes the results into a fresh
// directory allocated from root. Images are processed one at a time in
// identifier order and the first write failure stops the export; the
// returned WriteError lists what was already written.
func (a *Applicator) Export(ctx context.Context, set ImageSet, c models.Chain, root string) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ids := set.IDs()
	names, err := outputNames(ids)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &models.WriteError{Path: root, Err: err}
	}

	dir, err := AllocateOutputDir(a.fs, absRoot)
	if err != nil {
		return nil, &models.WriteError{Path: absRoot, Err: err}
	}

	runID := uuid.NewString()
	start := time.Now()
	saver := &imageSaver{fs: a.fs, logger: a.logger}
	result := &ExportResult{
		OutputDir: dir,
		Paths:     make(map[string]string, len(ids)),
	}

	a.logger.Info("Applicator", "export started", map[string]interface{}{
		"run_id":     runID,
		"output_dir": dir,
		"images":     len(ids),
	})

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		out, err := a.composer.Apply(ctx, set[id], c)
		if err != nil {
			return result, fmt.Errorf("export %s: %w", id, err)
		}

		path := filepath.Join(dir, names[id]+outputExtension)
		if err := saver.Save(path, out); err != nil {
			we := &models.WriteError{
				ID:        id,
				Path:      path,
				Succeeded: append([]string(nil), result.Written...),
				Err:       err,
			}
			a.logger.Error("Applicator", we, map[string]interface{}{
				"run_id":    runID,
				"succeeded": len(we.Succeeded),
			})
			return result, we
		}

		result.Paths[id] = path
		result.Written = append(result.Written, id)
	}

	a.logger.Info("Applicator", "export completed", map[string]interface{}{
		"run_id":     runID,
		"output_dir": dir,
		"written":    len(result.Written),
		"duration":   time.Since(start).String(),
	})

	return result, nil
}

// outputNames maps identifiers to output base names: the file name without
// directory or extension. Two identifiers sharing a base name is an error.
func outputNames(ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	owners := make(map[string]string, len(ids))

	for _, id := range ids {
		base := filepath.Base(id)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if name == "" {
			name = base
		}

		if owner, taken := owners[name]; taken {
			return nil, fmt.Errorf("%w: %q and %q both export as %q", models.ErrNameCollision, owner, id, name)
		}
		owners[name] = id
		names[id] = name
	}

	return names, nil
}
