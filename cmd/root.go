package cmd

import (
	"log/slog"
	"os"

	"facesynth/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "facesynth",
	Short: "Synthesize facial-marker animations for signed sentences",
	Long: `facesynth builds the facial animation of a signed sentence by placing
pre-recorded facial-expression clips on a neutral timeline, fitting each clip
to its sign's duration and joining them with cubic Hermite transitions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return loadConfig()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func loadConfig() error {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env")
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
}
