package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDuration = errors.New("duration must be at least one frame")
	ErrEmptyClip       = errors.New("clip has no frames")
	ErrMarkerMismatch  = errors.New("marker count mismatch")
	ErrOutOfRange      = errors.New("segment outside animation buffer")
	ErrOverlap         = errors.New("segment overlaps another expression clip")
)

// Vec3 is one marker position (x, y, z).
type Vec3 [3]float64

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Frame holds the position of every marker at one instant.
type Frame []Vec3

// Clip is an ordered sequence of frames sharing one marker count.
type Clip []Frame

// Markers returns the marker count of the clip, or 0 for an empty clip.
func (c Clip) Markers() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Validate checks that every frame has the same marker count.
func (c Clip) Validate() error {
	if len(c) == 0 {
		return ErrEmptyClip
	}
	m := len(c[0])
	for i, f := range c {
		if len(f) != m {
			return fmt.Errorf("frame %d has %d markers, want %d: %w", i, len(f), m, ErrMarkerMismatch)
		}
	}
	return nil
}

// Placement is one resolved facial expression ready to be composited.
type Placement struct {
	ExpressionID string
	Sign         string
	Source       string // file the clip was loaded from
	Clip         Clip   // already resampled to Duration frames
	Duration     int
	Position     int // buffer index of the clip's first frame
	LeftTrans    int
	RightTrans   int
}

// Boundary is the entry pose of a clip: its first frame and initial velocity.
// A zero Boundary means "neutral".
type Boundary struct {
	Pose     Frame
	Velocity Frame
}

// IsNeutral reports whether the boundary carries no pose.
func (b Boundary) IsNeutral() bool { return len(b.Pose) == 0 }

// EntryBoundary returns the first frame of c and its velocity toward the
// second frame. A single-frame clip has zero velocity.
func EntryBoundary(c Clip) Boundary {
	if len(c) == 0 {
		return Boundary{}
	}
	vel := make(Frame, len(c[0]))
	if len(c) > 1 {
		for m := range vel {
			vel[m] = c[1][m].Sub(c[0][m])
		}
	}
	return Boundary{Pose: c[0], Velocity: vel}
}

// exitBoundary returns the last frame of c and its velocity from the
// second-to-last frame.
func exitBoundary(c Clip) Boundary {
	if len(c) == 0 {
		return Boundary{}
	}
	last := c[len(c)-1]
	vel := make(Frame, len(last))
	if len(c) > 1 {
		prev := c[len(c)-2]
		for m := range vel {
			vel[m] = last[m].Sub(prev[m])
		}
	}
	return Boundary{Pose: last, Velocity: vel}
}
