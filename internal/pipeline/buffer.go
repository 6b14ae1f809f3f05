package pipeline

import "fmt"

type cellState uint8

const (
	cellEmpty cellState = iota
	cellTransition
	cellClip
)

// Buffer is the full-sentence animation timeline. It starts at the neutral
// pose everywhere and records, per frame, whether anything has been written
// there, so a legitimately zero marker position is never mistaken for an
// empty frame.
type Buffer struct {
	frames  Clip
	state   []cellState
	markers int
}

// NewBuffer allocates a zero-filled buffer of length frames with the given
// marker count.
func NewBuffer(length, markers int) (*Buffer, error) {
	if length < 1 {
		return nil, fmt.Errorf("buffer length %d: %w", length, ErrInvalidDuration)
	}
	if markers < 1 {
		return nil, fmt.Errorf("buffer with %d markers: %w", markers, ErrMarkerMismatch)
	}

	backing := make([]Vec3, length*markers)
	frames := make(Clip, length)
	for i := range frames {
		frames[i] = backing[i*markers : (i+1)*markers : (i+1)*markers]
	}
	return &Buffer{
		frames:  frames,
		state:   make([]cellState, length),
		markers: markers,
	}, nil
}

// TimelineLength returns the buffer length for a sentence whose last sign
// starts at lastStart and lasts lastDuration frames, plus margin frames for
// the trailing transition.
func TimelineLength(lastStart, lastDuration, margin int) (int, error) {
	if lastStart < 0 || lastDuration < 0 || margin < 0 {
		return 0, fmt.Errorf("timeline start=%d duration=%d margin=%d: %w",
			lastStart, lastDuration, margin, ErrInvalidDuration)
	}
	n := lastStart + lastDuration + margin
	if n < 1 {
		return 0, fmt.Errorf("timeline length %d: %w", n, ErrInvalidDuration)
	}
	return n, nil
}

func (b *Buffer) Len() int     { return len(b.frames) }
func (b *Buffer) Markers() int { return b.markers }

// Frames returns the animation. The slice aliases the buffer.
func (b *Buffer) Frames() Clip { return b.frames }

// Written reports whether frame i has been written. Indices outside the
// buffer are reported as unwritten.
func (b *Buffer) Written(i int) bool {
	if i < 0 || i >= len(b.state) {
		return false
	}
	return b.state[i] != cellEmpty
}

// write copies left, clip and right back to back starting at frame start.
// Transition frames may replace earlier transition frames; clip frames of an
// earlier write are never replaced.
func (b *Buffer) write(start int, left, clip, right Clip) error {
	end := start + len(left) + len(clip) + len(right)
	if start < 0 || end > len(b.frames) {
		return fmt.Errorf("frames [%d,%d) of %d: %w", start, end, len(b.frames), ErrOutOfRange)
	}
	for i := start; i < end; i++ {
		if b.state[i] == cellClip {
			return fmt.Errorf("frame %d: %w", i, ErrOverlap)
		}
	}

	i := start
	for _, part := range []struct {
		frames Clip
		state  cellState
	}{
		{left, cellTransition},
		{clip, cellClip},
		{right, cellTransition},
	} {
		for _, f := range part.frames {
			copy(b.frames[i], f)
			b.state[i] = part.state
			i++
		}
	}
	return nil
}
