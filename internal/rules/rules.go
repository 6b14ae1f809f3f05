// Package rules holds the rule set that maps signs to facial expressions.
package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrMalformed = errors.New("malformed rule")

// Expression is one facial expression applied by a rule.
type Expression struct {
	ID string `yaml:"id"`
	// Offset counts signs back from the sign the rule fired on; 0 is that
	// sign itself.
	Offset int `yaml:"offset"`
	// Span is the number of signs the expression covers, starting at the
	// offset sign and moving forward.
	Span int `yaml:"span"`
}

// Rule assigns expressions to a sign.
type Rule struct {
	Sign         string       `yaml:"sign"`
	QuestionOnly bool         `yaml:"question_only"`
	Expressions  []Expression `yaml:"expressions"`
	// Supersedes removes expressions found on this many preceding signs.
	Supersedes int `yaml:"supersedes"`
}

// Set is an ordered rule set. Earlier rules take precedence.
type Set struct {
	// YesNo is applied to the last sign of a question that no rule matched.
	YesNo []Expression `yaml:"yes_no"`
	Rules []Rule       `yaml:"rules"`
}

// Validate normalizes sign names and spans and checks every rule.
func (s *Set) Validate() error {
	if err := validateExpressions(s.YesNo); err != nil {
		return fmt.Errorf("yes_no: %w", err)
	}
	for i := range s.Rules {
		r := &s.Rules[i]
		r.Sign = strings.ToUpper(strings.TrimSpace(r.Sign))
		if r.Sign == "" {
			return fmt.Errorf("rule %d: empty sign: %w", i+1, ErrMalformed)
		}
		if len(r.Expressions) == 0 {
			return fmt.Errorf("rule %d (%s): no expressions: %w", i+1, r.Sign, ErrMalformed)
		}
		if r.Supersedes < 0 {
			return fmt.Errorf("rule %d (%s): negative supersedes: %w", i+1, r.Sign, ErrMalformed)
		}
		if err := validateExpressions(r.Expressions); err != nil {
			return fmt.Errorf("rule %d (%s): %w", i+1, r.Sign, err)
		}
	}
	return nil
}

func validateExpressions(exprs []Expression) error {
	for i := range exprs {
		e := &exprs[i]
		if e.ID == "" {
			return fmt.Errorf("expression %d: empty id: %w", i+1, ErrMalformed)
		}
		if e.Offset < 0 {
			return fmt.Errorf("expression %s: negative offset: %w", e.ID, ErrMalformed)
		}
		if e.Span == 0 {
			e.Span = 1
		}
		if e.Span < 0 {
			return fmt.Errorf("expression %s: negative span: %w", e.ID, ErrMalformed)
		}
	}
	return checkDisjoint(exprs)
}

// checkDisjoint rejects expressions of one rule that cover a common sign;
// their clips would be written over each other.
func checkDisjoint(exprs []Expression) error {
	for i, a := range exprs {
		for _, b := range exprs[:i] {
			// Signs covered, relative to the rule's sign: [-Offset, -Offset+Span).
			if -a.Offset < -b.Offset+b.Span && -b.Offset < -a.Offset+a.Span {
				return fmt.Errorf("expressions %s (offset %d, span %d) and %s (offset %d, span %d) share a sign: %w",
					b.ID, b.Offset, b.Span, a.ID, a.Offset, a.Span, ErrMalformed)
			}
		}
	}
	return nil
}

// Load reads a rule file, choosing the YAML reader for .yaml and .yml files
// and the line format otherwise.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseLegacy(f)
	}
}
