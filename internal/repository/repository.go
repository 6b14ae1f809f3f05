// Package repository serves expression clips from a directory.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"facesynth/internal/clipio"
	"facesynth/internal/resolver"

	"golang.org/x/time/rate"
)

// LabelsFile names the optional marker label list inside a repository.
const LabelsFile = "labels.lbl"

// Options configures clip loading.
type Options struct {
	MaxConcurrent  int     // parallel file loads; <= 1 loads one at a time
	ReadsPerSecond float64 // 0 disables throttling
	NoAsync        bool
}

// Dir is a clip repository backed by a directory of .npy and .msgpack
// files named after their expression id ("A1.npy", "A2.npy", ...).
type Dir struct {
	root    string
	opts    Options
	limiter *rate.Limiter
}

// Open returns a repository over root.
func Open(root string, opts Options) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open repository: %s is not a directory", root)
	}

	d := &Dir{root: root, opts: opts}
	if opts.ReadsPerSecond > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(opts.ReadsPerSecond), 1)
	}
	return d, nil
}

// Find loads every clip whose file name starts with prefix, ordered by file
// name.
func (d *Dir) Find(ctx context.Context, prefix string) ([]resolver.Candidate, error) {
	paths, err := d.list(prefix)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		slog.Warn("no clips for expression", "expression", prefix, "dir", d.root)
		return nil, nil
	}

	slog.Debug("loading clips", "expression", prefix, "files", len(paths))
	if d.opts.NoAsync || d.opts.MaxConcurrent <= 1 || len(paths) == 1 {
		return d.loadSequential(ctx, paths)
	}
	return d.loadConcurrent(ctx, paths)
}

func (d *Dir) list(prefix string) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("list repository: %w", err)
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !clipio.Supported(name) {
			continue
		}
		paths = append(paths, filepath.Join(d.root, name))
	}
	sort.Strings(paths)
	return paths, nil
}

func (d *Dir) load(ctx context.Context, path string) (resolver.Candidate, error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return resolver.Candidate{}, fmt.Errorf("rate limiter: %w", err)
		}
	}
	clip, err := clipio.ReadFile(path)
	if err != nil {
		return resolver.Candidate{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if err := clip.Validate(); err != nil {
		return resolver.Candidate{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return resolver.Candidate{Name: name, Clip: clip}, nil
}

// Labels returns the marker names listed in the repository's labels file,
// or nil when there is none.
func (d *Dir) Labels() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(d.root, LabelsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	first, _, _ := strings.Cut(string(data), "\n")
	var labels []string
	for _, l := range strings.Split(first, ",") {
		labels = append(labels, strings.TrimSpace(l))
	}
	return labels, nil
}
