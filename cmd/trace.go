package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"facesynth/internal/clipio"
	"facesynth/internal/output"

	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <animation-file>",
	Short: "Export the displacement of one marker as CSV",
	Long: `Trace writes the per-frame position of one marker of an animation
(.npy or .msgpack) along the chosen axes, ready for plotting.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

var (
	traceMarker int
	traceAxes   string
	traceOutput string
	traceFrom   int
	traceTo     int
)

func init() {
	traceCmd.Flags().IntVarP(&traceMarker, "marker", "m", 10, "marker index")
	traceCmd.Flags().StringVarP(&traceAxes, "axes", "a", "x", "axes to export, e.g. x, xz, xyz")
	traceCmd.Flags().StringVarP(&traceOutput, "output", "o", "", "CSV output path (default: stdout)")
	traceCmd.Flags().IntVar(&traceFrom, "from", 0, "first frame")
	traceCmd.Flags().IntVar(&traceTo, "to", 0, "frame after the last one; 0 is the end, negative counts back from it")

	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	anim, err := clipio.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read animation: %w", err)
	}
	axes, err := output.ParseAxes(traceAxes)
	if err != nil {
		return err
	}

	from, to := traceFrom, traceTo
	if to <= 0 {
		to += len(anim)
	}
	if from < 0 || from > to || to > len(anim) {
		return fmt.Errorf("frame range [%d,%d) outside animation of %d frames", from, to, len(anim))
	}

	var w io.Writer = cmd.OutOrStdout()
	if traceOutput != "" {
		f, err := os.Create(traceOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := output.WriteTrace(w, anim[from:to], traceMarker, axes); err != nil {
		return err
	}
	if traceOutput != "" {
		slog.Info("trace saved", "path", traceOutput, "marker", traceMarker, "frames", to-from)
	}
	return nil
}
