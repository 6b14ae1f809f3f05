package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"facesynth/internal/pipeline"
)

var ErrTrace = errors.New("invalid trace request")

var axisNames = [3]string{"x", "y", "z"}

// ParseAxes turns a string such as "xz" into axis indices.
func ParseAxes(s string) ([]int, error) {
	var axes []int
	seen := [3]bool{}
	for _, r := range strings.ToLower(s) {
		i := strings.IndexRune("xyz", r)
		if i < 0 {
			return nil, fmt.Errorf("axis %q: %w", r, ErrTrace)
		}
		if !seen[i] {
			seen[i] = true
			axes = append(axes, i)
		}
	}
	if len(axes) == 0 {
		return nil, fmt.Errorf("no axes: %w", ErrTrace)
	}
	return axes, nil
}

// WriteTrace writes the displacement of one marker along the chosen axes
// as CSV, one row per frame.
func WriteTrace(w io.Writer, clip pipeline.Clip, marker int, axes []int) error {
	if marker < 0 || marker >= clip.Markers() {
		return fmt.Errorf("marker %d of %d: %w", marker, clip.Markers(), ErrTrace)
	}

	cw := csv.NewWriter(w)
	header := []string{"frame"}
	for _, a := range axes {
		header = append(header, axisNames[a])
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, f := range clip {
		row[0] = strconv.Itoa(i)
		for j, a := range axes {
			row[j+1] = strconv.FormatFloat(f[marker][a], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
