package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"facesynth/internal/pipeline"
)

// SelectCandidate returns the candidate whose frame count is closest to
// duration. The first candidate wins ties.
func SelectCandidate(cands []Candidate, duration int) (Candidate, error) {
	if len(cands) == 0 {
		return Candidate{}, ErrNoCandidate
	}
	best := 0
	bestDiff := absDiff(len(cands[0].Clip), duration)
	for i := 1; i < len(cands); i++ {
		if d := absDiff(len(cands[i].Clip), duration); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return cands[best], nil
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// Build turns matches into placements: it looks up the candidates of each
// expression, picks the closest one and resamples it to the slot duration.
func Build(ctx context.Context, matches []Match, repo Repository) ([]pipeline.Placement, error) {
	found := make(map[string][]Candidate)
	placements := make([]pipeline.Placement, 0, len(matches))

	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cands, ok := found[m.ExpressionID]
		if !ok {
			var err error
			cands, err = repo.Find(ctx, m.ExpressionID)
			if err != nil {
				return nil, fmt.Errorf("find clips for %s: %w", m.ExpressionID, err)
			}
			found[m.ExpressionID] = cands
		}

		for _, c := range cands {
			slog.Debug("candidate clip",
				"expression", m.ExpressionID,
				"clip", c.Name,
				"frames", len(c.Clip),
				"diff", absDiff(len(c.Clip), m.Duration))
		}

		chosen, err := SelectCandidate(cands, m.Duration)
		if err != nil {
			return nil, fmt.Errorf("expression %s on sign %s: %w", m.ExpressionID, m.Sign, err)
		}

		clip, err := pipeline.Resample(chosen.Clip, m.Duration)
		if err != nil {
			return nil, fmt.Errorf("resample %s for sign %s: %w", chosen.Name, m.Sign, err)
		}

		slog.Info("expression selected",
			"sign", m.Sign,
			"expression", m.ExpressionID,
			"clip", chosen.Name,
			"frames", len(chosen.Clip),
			"duration", m.Duration,
			"left", m.Left,
			"right", m.Right)

		placements = append(placements, pipeline.Placement{
			ExpressionID: m.ExpressionID,
			Sign:         m.Sign,
			Source:       chosen.Name,
			Clip:         clip,
			Duration:     m.Duration,
			Position:     m.Position,
			LeftTrans:    m.Left,
			RightTrans:   m.Right,
		})
	}
	return placements, nil
}
