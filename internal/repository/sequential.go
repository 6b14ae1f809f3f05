package repository

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"facesynth/internal/resolver"
)

// loadSequential loads files one at a time, in order.
func (d *Dir) loadSequential(ctx context.Context, paths []string) ([]resolver.Candidate, error) {
	out := make([]resolver.Candidate, 0, len(paths))
	for i, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c, err := d.load(ctx, path)
		if err != nil {
			return nil, err
		}
		slog.Debug("clip loaded",
			"clip", fmt.Sprintf("%d/%d", i+1, len(paths)),
			"file", filepath.Base(path),
			"frames", len(c.Clip))
		out = append(out, c)
	}
	return out, nil
}
