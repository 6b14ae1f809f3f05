package resolver

import (
	"context"
	"errors"

	"facesynth/internal/pipeline"
)

var (
	ErrNoSigns        = errors.New("sentence has no signs")
	ErrNoCandidate    = errors.New("no clip in repository")
	ErrMissingYesNo   = errors.New("question without a yes-no rule")
	ErrSpanOutOfRange = errors.New("rule reaches outside the sentence")
)

// SignSlot is the timeline segment allotted to one sign, in frames.
type SignSlot struct {
	Sign     string
	Start    int
	Duration int
	Left     int // transition before the sign
	Right    int // transition after the sign
}

// Match is one expression the rules attach to the sentence, with the slot
// arithmetic already done.
type Match struct {
	ExpressionID string
	Sign         string // sign the expression starts on
	Trigger      string // sign whose rule produced the match
	Position     int
	Duration     int
	Left         int
	Right        int
}

// Candidate is one repository clip for an expression.
type Candidate struct {
	Name string
	Clip pipeline.Clip
}

// Repository looks up clips by expression id prefix.
type Repository interface {
	Find(ctx context.Context, prefix string) ([]Candidate, error)
}
