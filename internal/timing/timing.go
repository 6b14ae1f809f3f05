// Package timing reads sign timing annotations and turns them into sign
// slots.
package timing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"facesynth/internal/resolver"
)

var ErrMalformed = errors.New("malformed timing data")

// QuestionMark is the standalone token that ends a question.
const QuestionMark = "?"

// Sentence is one annotated sentence: its sign tokens and the frame
// timestamps alternating between transition starts and sign starts.
type Sentence struct {
	Tokens     []string
	Timestamps []int
}

// Load reads a timing file from disk.
func Load(path string) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timing file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads line pairs: a line of space separated sign tokens followed by
// a line of comma separated timestamps, each a one-character tag and a frame
// number ("T0,S12,T40,..."). Blank lines are ignored. A standalone "?" token
// closes a question and is timed like any sign, so it must be last.
func Parse(r io.Reader) ([]Sentence, error) {
	var (
		out     []Sentence
		pending *Sentence
		line    int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		if pending == nil {
			tokens, err := parseTokens(text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			pending = &Sentence{Tokens: tokens}
			continue
		}

		ts, err := parseTimestamps(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		pending.Timestamps = ts
		out = append(out, *pending)
		pending = nil
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read timing file: %w", err)
	}
	if pending != nil {
		return nil, fmt.Errorf("line %d: sentence without timestamps: %w", line, ErrMalformed)
	}
	return out, nil
}

func parseTokens(text string) ([]string, error) {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for i, tok := range fields {
		tok = strings.ToUpper(tok)
		if tok == QuestionMark && i != len(fields)-1 {
			return nil, fmt.Errorf("question mark at token %d of %d: %w", i+1, len(fields), ErrMalformed)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func parseTimestamps(text string) ([]int, error) {
	parts := strings.Split(text, ",")
	ts := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < 2 {
			return nil, fmt.Errorf("timestamp %q: %w", p, ErrMalformed)
		}
		n, err := strconv.Atoi(p[1:])
		if err != nil {
			return nil, fmt.Errorf("timestamp %q: %v: %w", p, err, ErrMalformed)
		}
		ts = append(ts, n)
	}
	return ts, nil
}

// Slots derives one sign slot per token. Sign k starts at timestamp 2k+1 and
// ends at 2k+2; its left transition runs from 2k, its right transition is
// the one leading into the next sign, from 2k+2 to 2k+3.
func (s Sentence) Slots() ([]resolver.SignSlot, error) {
	n := len(s.Tokens)
	if n == 0 {
		return nil, fmt.Errorf("no signs: %w", ErrMalformed)
	}
	if len(s.Timestamps) != 2*n+2 {
		return nil, fmt.Errorf("%d signs need %d timestamps, got %d: %w",
			n, 2*n+2, len(s.Timestamps), ErrMalformed)
	}
	for i := 1; i < len(s.Timestamps); i++ {
		if s.Timestamps[i] < s.Timestamps[i-1] {
			return nil, fmt.Errorf("timestamp %d (%d) before previous (%d): %w",
				i, s.Timestamps[i], s.Timestamps[i-1], ErrMalformed)
		}
	}

	ts := s.Timestamps
	slots := make([]resolver.SignSlot, n)
	for k, tok := range s.Tokens {
		slots[k] = resolver.SignSlot{
			Sign:     tok,
			Start:    ts[2*k+1],
			Duration: ts[2*k+2] - ts[2*k+1],
			Left:     ts[2*k+1] - ts[2*k],
			Right:    ts[2*k+3] - ts[2*k+2],
		}
	}
	return slots, nil
}

// Pick returns sentence i of sentences.
func Pick(sentences []Sentence, i int) (Sentence, error) {
	if i < 0 || i >= len(sentences) {
		return Sentence{}, fmt.Errorf("sentence %d of %d: %w", i, len(sentences), ErrMalformed)
	}
	return sentences[i], nil
}
