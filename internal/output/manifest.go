// Package output writes the artifacts of a synthesis run.
package output

import (
	"encoding/json"
	"os"
	"time"

	"facesynth/internal/pipeline"

	"github.com/google/uuid"
)

// ExpressionEntry records one composited expression.
type ExpressionEntry struct {
	Expression string `json:"expression"`
	Sign       string `json:"sign"`
	Clip       string `json:"clip"`
	Position   int    `json:"position"`
	Duration   int    `json:"duration"`
	Left       int    `json:"left_transition"`
	Right      int    `json:"right_transition"`
}

// Manifest describes a synthesized animation.
type Manifest struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Sentence    int               `json:"sentence"`
	Signs       []string          `json:"signs"`
	Animation   string            `json:"animation"`
	Frames      int               `json:"frames"`
	Markers     int               `json:"markers"`
	Labels      []string          `json:"labels,omitempty"`
	Expressions []ExpressionEntry `json:"expressions"`
}

// NewManifest builds a manifest with a fresh run id.
func NewManifest(sentence int, signs []string, animation string, buf *pipeline.Buffer, placements []pipeline.Placement) Manifest {
	m := Manifest{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now(),
		Sentence:    sentence,
		Signs:       signs,
		Animation:   animation,
		Frames:      buf.Len(),
		Markers:     buf.Markers(),
		Expressions: make([]ExpressionEntry, 0, len(placements)),
	}
	for _, p := range placements {
		m.Expressions = append(m.Expressions, ExpressionEntry{
			Expression: p.ExpressionID,
			Sign:       p.Sign,
			Clip:       p.Source,
			Position:   p.Position,
			Duration:   p.Duration,
			Left:       p.LeftTrans,
			Right:      p.RightTrans,
		})
	}
	return m
}

// WriteManifest stores m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
