package repository

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"facesynth/internal/resolver"

	"golang.org/x/sync/errgroup"
)

// loadConcurrent loads files with bounded parallelism. Results keep the
// order of paths.
func (d *Dir) loadConcurrent(ctx context.Context, paths []string) ([]resolver.Candidate, error) {
	slog.Debug("starting concurrent clip loading",
		"files", len(paths),
		"max_concurrent", d.opts.MaxConcurrent,
		"reads_per_sec", d.opts.ReadsPerSecond)

	results := make([]resolver.Candidate, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.MaxConcurrent)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			c, err := d.load(gctx, path)
			if err != nil {
				return err
			}
			results[i] = c

			slog.Debug("clip loaded",
				"clip", fmt.Sprintf("%d/%d", i+1, len(paths)),
				"file", filepath.Base(path),
				"frames", len(c.Clip))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
