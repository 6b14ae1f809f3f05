// Package clipio reads and writes marker animations as dense [frames,
// markers, 3] arrays, either NumPy .npy files or msgpack documents.
package clipio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"facesynth/internal/pipeline"
)

var (
	ErrShape  = errors.New("array is not [frames, markers, 3]")
	ErrFormat = errors.New("unsupported clip format")
)

const (
	ExtNPY     = ".npy"
	ExtMsgpack = ".msgpack"
)

// Supported reports whether path has a clip file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtNPY, ExtMsgpack:
		return true
	}
	return false
}

// ReadFile loads a clip, choosing the decoder by extension.
func ReadFile(path string) (pipeline.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtNPY:
		return ReadNPY(f)
	case ExtMsgpack:
		return ReadMsgpack(f)
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrFormat)
}

// WriteFile stores clip at path, choosing the encoder by extension.
func WriteFile(path string, clip pipeline.Clip) error {
	var write func(*os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtNPY:
		write = func(f *os.File) error { return WriteNPY(f, clip) }
	case ExtMsgpack:
		write = func(f *os.File) error { return WriteMsgpack(f, clip) }
	default:
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrFormat)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fromFlat rebuilds a clip from row-major data of the given shape.
func fromFlat(shape []int, data []float64) (pipeline.Clip, error) {
	if len(shape) != 3 || shape[2] != 3 || shape[0] < 1 || shape[1] < 1 {
		return nil, fmt.Errorf("shape %v: %w", shape, ErrShape)
	}
	frames, markers := shape[0], shape[1]
	if len(data) != frames*markers*3 {
		return nil, fmt.Errorf("shape %v holds %d values, got %d: %w", shape, frames*markers*3, len(data), ErrShape)
	}

	clip := make(pipeline.Clip, frames)
	for f := range clip {
		frame := make(pipeline.Frame, markers)
		for m := range frame {
			base := (f*markers + m) * 3
			frame[m] = pipeline.Vec3{data[base], data[base+1], data[base+2]}
		}
		clip[f] = frame
	}
	return clip, nil
}

// flatten returns the shape and row-major data of clip.
func flatten(clip pipeline.Clip) ([]int, []float64, error) {
	if err := clip.Validate(); err != nil {
		return nil, nil, err
	}
	markers := clip.Markers()
	data := make([]float64, 0, len(clip)*markers*3)
	for _, f := range clip {
		for _, v := range f {
			data = append(data, v[0], v[1], v[2])
		}
	}
	return []int{len(clip), markers, 3}, data, nil
}
