package pipeline

import (
	"fmt"
	"sort"
)

// Compositor writes expression placements into an animation buffer.
type Compositor struct {
	buf *Buffer
}

// NewCompositor creates a compositor that owns buf for the duration of the
// composition.
func NewCompositor(buf *Buffer) *Compositor {
	return &Compositor{buf: buf}
}

// Compose writes every placement into the buffer, last-occurring first. Each
// placement's entry boundary is handed to the placement processed next, whose
// right transition chains into it when the two segments meet.
func (c *Compositor) Compose(placements []Placement) error {
	ordered := make([]Placement, len(placements))
	copy(ordered, placements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position > ordered[j].Position
	})

	var next Boundary
	for _, p := range ordered {
		b, err := c.place(p, next)
		if err != nil {
			return fmt.Errorf("place %s at frame %d: %w", p.ExpressionID, p.Position, err)
		}
		next = b
	}
	return nil
}

// place writes one placement and returns its entry boundary.
func (c *Compositor) place(p Placement, next Boundary) (Boundary, error) {
	if err := p.Clip.Validate(); err != nil {
		return Boundary{}, err
	}
	if m := p.Clip.Markers(); m != c.buf.Markers() {
		return Boundary{}, fmt.Errorf("clip has %d markers, buffer %d: %w", m, c.buf.Markers(), ErrMarkerMismatch)
	}
	if p.LeftTrans < 0 || p.RightTrans < 0 {
		return Boundary{}, fmt.Errorf("transitions %d/%d: %w", p.LeftTrans, p.RightTrans, ErrInvalidDuration)
	}

	// The right transition only chains when the frame right after it already
	// belongs to the following placement.
	landing := p.Position + len(p.Clip) + p.RightTrans
	if !c.buf.Written(landing) {
		next = Boundary{}
	}

	left := LeftTransition(p.Clip, p.LeftTrans)
	right := RightTransition(p.Clip, p.RightTrans, next)
	if err := c.buf.write(p.Position-len(left), left, p.Clip, right); err != nil {
		return Boundary{}, err
	}
	return EntryBoundary(p.Clip), nil
}

// Compose allocates a neutral buffer of length frames and composes
// placements into it.
func Compose(length, markers int, placements []Placement) (*Buffer, error) {
	buf, err := NewBuffer(length, markers)
	if err != nil {
		return nil, err
	}
	if err := NewCompositor(buf).Compose(placements); err != nil {
		return nil, err
	}
	return buf, nil
}
