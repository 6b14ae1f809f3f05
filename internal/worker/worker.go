package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"facesynth/internal/clipio"
	"facesynth/internal/output"
	"facesynth/internal/pipeline"
	"facesynth/internal/repository"
	"facesynth/internal/resolver"
	"facesynth/internal/rules"
	"facesynth/internal/timing"
)

// ErrNoMarkers is returned when a sentence has no expressions and the
// repository has no labels file to size the neutral animation.
var ErrNoMarkers = errors.New("cannot determine marker count")

// Options configures a synthesis run.
type Options struct {
	SentencesPath  string
	RulesPath      string
	ExpressionsDir string
	// OutputPath is either a clip file (.npy, .msgpack) or a directory that
	// receives EF<sentence>.<format>.
	OutputPath   string
	Format       string
	Sentence     int
	Margin       int
	Loading      repository.Options
	SkipManifest bool
}

// Result is the outcome of a synthesis run.
type Result struct {
	Slots      []resolver.SignSlot
	Matches    []resolver.Match
	Placements []pipeline.Placement
	Buffer     *pipeline.Buffer
	Labels     []string
}

// Synthesize builds the facial animation of one sentence.
func Synthesize(ctx context.Context, opts Options) (*Result, error) {
	sentences, err := timing.Load(opts.SentencesPath)
	if err != nil {
		return nil, err
	}
	sentence, err := timing.Pick(sentences, opts.Sentence)
	if err != nil {
		return nil, err
	}
	slots, err := sentence.Slots()
	if err != nil {
		return nil, fmt.Errorf("sentence %d: %w", opts.Sentence, err)
	}
	for _, s := range slots {
		slog.Debug("sign slot",
			"sign", s.Sign,
			"start", s.Start,
			"duration", s.Duration,
			"left", s.Left,
			"right", s.Right)
	}
	slog.Info("sentence loaded", "index", opts.Sentence, "signs", strings.Join(sentence.Tokens, " "))

	set, err := rules.Load(opts.RulesPath)
	if err != nil {
		return nil, err
	}

	matches, err := resolver.Resolve(slots, set)
	if err != nil {
		return nil, fmt.Errorf("resolve expressions: %w", err)
	}
	slog.Info("expressions resolved", "count", len(matches))

	repo, err := repository.Open(opts.ExpressionsDir, opts.Loading)
	if err != nil {
		return nil, err
	}
	placements, err := resolver.Build(ctx, matches, repo)
	if err != nil {
		return nil, err
	}
	labels, err := repo.Labels()
	if err != nil {
		slog.Warn("ignoring labels file", "err", err)
		labels = nil
	}

	markers := len(labels)
	if len(placements) > 0 {
		markers = placements[0].Clip.Markers()
	}
	if markers == 0 {
		return nil, ErrNoMarkers
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	last := slots[len(slots)-1]
	length, err := pipeline.TimelineLength(last.Start, last.Duration, opts.Margin)
	if err != nil {
		return nil, err
	}
	buf, err := pipeline.Compose(length, markers, placements)
	if err != nil {
		return nil, fmt.Errorf("compose animation: %w", err)
	}
	slog.Info("animation composed", "frames", buf.Len(), "markers", buf.Markers(), "expressions", len(placements))

	return &Result{
		Slots:      slots,
		Matches:    matches,
		Placements: placements,
		Buffer:     buf,
		Labels:     labels,
	}, nil
}

// Run is the top-level orchestrator: it synthesizes the sentence and writes
// the animation and its manifest. It returns the animation path.
func Run(ctx context.Context, opts Options) (string, error) {
	res, err := Synthesize(ctx, opts)
	if err != nil {
		return "", err
	}

	outPath, err := resolveOutputPath(opts)
	if err != nil {
		return "", err
	}
	if err := clipio.WriteFile(outPath, res.Buffer.Frames()); err != nil {
		return "", fmt.Errorf("write animation: %w", err)
	}
	slog.Info("animation saved", "path", outPath)

	if !opts.SkipManifest {
		signs := make([]string, len(res.Slots))
		for i, s := range res.Slots {
			signs[i] = s.Sign
		}
		m := output.NewManifest(opts.Sentence, signs, filepath.Base(outPath), res.Buffer, res.Placements)
		m.Labels = res.Labels

		manifestPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".json"
		if err := output.WriteManifest(manifestPath, m); err != nil {
			slog.Warn("failed to save manifest", "err", err)
		} else {
			slog.Info("manifest saved", "path", manifestPath, "run_id", m.RunID)
		}
	}
	return outPath, nil
}

func resolveOutputPath(opts Options) (string, error) {
	if clipio.Supported(opts.OutputPath) {
		if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
			return "", err
		}
		return opts.OutputPath, nil
	}

	format := opts.Format
	if format == "" {
		format = "npy"
	}
	dir := opts.OutputPath
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("EF%d.%s", opts.Sentence, format)), nil
}
