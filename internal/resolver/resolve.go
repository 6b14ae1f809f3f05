// Package resolver decides which signs of a sentence carry facial
// expressions and which repository clips play them.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"facesynth/internal/rules"
)

// Resolve applies the rule set to the sentence and returns the retained
// matches ordered by position.
//
// A final sign ending in "?" marks a question; the marker is stripped before
// matching. A final slot that is "?" alone keeps its name, so only the yes-no
// expressions land on it. Rules are tried in order and each slot is matched at most once.
// A rule's Supersedes drops the matches anchored on that many preceding
// slots. A question whose last slot matched nothing gets the yes-no
// expressions.
func Resolve(slots []SignSlot, set *rules.Set) ([]Match, error) {
	if len(slots) == 0 {
		return nil, ErrNoSigns
	}
	slots = append([]SignSlot(nil), slots...)
	last := len(slots) - 1
	question := strings.HasSuffix(slots[last].Sign, "?")
	if question && slots[last].Sign != "?" {
		slots[last].Sign = strings.TrimSuffix(slots[last].Sign, "?")
	}

	type hit struct {
		anchor int
		exprs  []rules.Expression
	}
	var hits []hit
	matched := make(map[int]bool)
	removed := make(map[int]bool)

	for _, r := range set.Rules {
		if r.QuestionOnly && !question {
			continue
		}
		for k, s := range slots {
			if matched[k] || s.Sign != r.Sign {
				continue
			}
			matched[k] = true
			hits = append(hits, hit{anchor: k, exprs: r.Expressions})
			for j := k - 1; j >= 0 && j >= k-r.Supersedes; j-- {
				removed[j] = true
			}
		}
	}

	if question && !matched[last] {
		if len(set.YesNo) == 0 {
			return nil, fmt.Errorf("sign %s: %w", slots[last].Sign, ErrMissingYesNo)
		}
		hits = append(hits, hit{anchor: last, exprs: set.YesNo})
	}

	var out []Match
	for _, h := range hits {
		if removed[h.anchor] {
			continue
		}
		for _, e := range h.exprs {
			m, err := matchFor(slots, h.anchor, e)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// matchFor places expression e relative to the slot at anchor. The clip
// covers the durations of Span slots starting at the offset slot; its
// transitions are the first slot's left and the last slot's right.
func matchFor(slots []SignSlot, anchor int, e rules.Expression) (Match, error) {
	first := anchor - e.Offset
	span := e.Span
	if span < 1 {
		span = 1
	}
	lastIdx := first + span - 1
	if first < 0 || lastIdx >= len(slots) {
		return Match{}, fmt.Errorf("expression %s on sign %s (offset %d, span %d): %w",
			e.ID, slots[anchor].Sign, e.Offset, span, ErrSpanOutOfRange)
	}

	m := Match{
		ExpressionID: e.ID,
		Sign:         slots[first].Sign,
		Trigger:      slots[anchor].Sign,
		Position:     slots[first].Start,
		Left:         slots[first].Left,
		Right:        slots[lastIdx].Right,
	}
	for i := first; i <= lastIdx; i++ {
		m.Duration += slots[i].Duration
	}
	return m, nil
}
