package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"facesynth/internal/config"
	"facesynth/internal/repository"
	"facesynth/internal/worker"

	"github.com/spf13/cobra"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Build the facial animation of one sentence",
	Long: `Synthesize reads the sign timing of one sentence, resolves which signs
carry facial expressions, picks the closest clip for each from the expression
repository and writes the composed animation as a [frames, markers, 3] array.`,
	Aliases: []string{"synth"},
	Args:    cobra.NoArgs,
	RunE:    runSynthesize,
}

var (
	sentenceIndex  int
	sentencesPath  string
	rulesPath      string
	expressionsDir string
	outputPath     string
	format         string
	margin         int
	maxConcurrent  int
	readsPerSec    float64
	noAsync        bool
	noManifest     bool
)

func init() {
	defaults := config.Default()

	synthesizeCmd.Flags().IntVarP(&sentenceIndex, "sentence", "i", 0, "index of the sentence in the timing file")
	synthesizeCmd.Flags().StringVar(&sentencesPath, "sentences", defaults.Paths.Sentences, "sentence timing file")
	synthesizeCmd.Flags().StringVar(&rulesPath, "rules", defaults.Paths.Rules, "rule file (.yaml or line format)")
	synthesizeCmd.Flags().StringVar(&expressionsDir, "expressions", defaults.Paths.Expressions, "expression clip repository")
	synthesizeCmd.Flags().StringVarP(&outputPath, "output", "o", defaults.Paths.Output, "output directory or .npy/.msgpack file")
	synthesizeCmd.Flags().StringVarP(&format, "format", "f", defaults.Format, "output format when writing to a directory: npy, msgpack")
	synthesizeCmd.Flags().IntVar(&margin, "margin", defaults.Margin, "neutral frames after the last sign")
	synthesizeCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", defaults.Loading.MaxConcurrent, "max concurrent clip loads")
	synthesizeCmd.Flags().Float64Var(&readsPerSec, "reads-per-sec", defaults.Loading.ReadsPerSecond, "clip reads per second (0 = unlimited)")
	synthesizeCmd.Flags().BoolVar(&noAsync, "no-async", false, "load clips one at a time")
	synthesizeCmd.Flags().BoolVar(&noManifest, "no-manifest", false, "do not write the JSON manifest")

	rootCmd.AddCommand(synthesizeCmd)
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	if sentenceIndex < 0 {
		return fmt.Errorf("sentence index must be >= 0, got %d", sentenceIndex)
	}

	// Flags the user set win over the configuration file.
	flags := cmd.Flags()
	pick := func(name, flagVal, cfgVal string) string {
		if flags.Changed(name) {
			return flagVal
		}
		return cfgVal
	}

	opts := worker.Options{
		SentencesPath:  pick("sentences", sentencesPath, cfg.Paths.Sentences),
		RulesPath:      pick("rules", rulesPath, cfg.Paths.Rules),
		ExpressionsDir: pick("expressions", expressionsDir, cfg.Paths.Expressions),
		OutputPath:     pick("output", outputPath, cfg.Paths.Output),
		Format:         pick("format", format, cfg.Format),
		Sentence:       sentenceIndex,
		Margin:         cfg.Margin,
		Loading: repository.Options{
			MaxConcurrent:  cfg.Loading.MaxConcurrent,
			ReadsPerSecond: cfg.Loading.ReadsPerSecond,
			NoAsync:        cfg.Loading.NoAsync || noAsync,
		},
		SkipManifest: noManifest,
	}
	if flags.Changed("margin") {
		opts.Margin = margin
	}
	if flags.Changed("max-concurrent") {
		opts.Loading.MaxConcurrent = maxConcurrent
	}
	if flags.Changed("reads-per-sec") {
		opts.Loading.ReadsPerSecond = readsPerSec
	}
	if opts.Margin < 0 {
		return fmt.Errorf("margin must be >= 0, got %d", opts.Margin)
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, err := worker.Run(ctx, opts)
	if err != nil {
		return err
	}

	if !quiet {
		slog.Info("done", "animation", path)
	}
	return nil
}
