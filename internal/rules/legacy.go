package rules

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseLegacy reads the line-oriented rule format, one "PATTERN EXPR" pair
// per line.
//
// EXPR is a run of (id, span) character pairs: "A1" applies expression A to
// one sign, "B1A1" applies B to the sign and A to the preceding one. Pair i
// starts i signs back and covers span signs forward, so pairs must not reach
// into each other ("B1A2" is rejected). A composite EXPR supersedes as many
// preceding signs as the span of its second pair.
//
// PATTERN is a sign name, "SIGN?" for a rule that only fires in questions,
// or "*?" / "X*" for the yes-no expression of questions.
func ParseLegacy(r io.Reader) (*Set, error) {
	set := &Set{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: %q: %w", line, text, ErrMalformed)
		}
		pattern := fields[0]
		exprs, err := parseLegacyExpr(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if pattern == "*?" || strings.HasSuffix(pattern, "*") {
			set.YesNo = exprs
			continue
		}

		rule := Rule{Sign: pattern, Expressions: exprs}
		if strings.HasSuffix(pattern, "?") {
			rule.Sign = strings.TrimSuffix(pattern, "?")
			rule.QuestionOnly = true
		}
		if len(exprs) > 1 {
			rule.Supersedes = exprs[1].Span
		}
		set.Rules = append(set.Rules, rule)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

func parseLegacyExpr(s string) ([]Expression, error) {
	if len(s) == 0 || len(s)%2 != 0 {
		return nil, fmt.Errorf("expression %q: want id/span pairs: %w", s, ErrMalformed)
	}
	var exprs []Expression
	for i := 0; i < len(s); i += 2 {
		span := s[i+1]
		if span < '1' || span > '9' {
			return nil, fmt.Errorf("expression %q: span %q is not a digit 1-9: %w", s, span, ErrMalformed)
		}
		exprs = append(exprs, Expression{
			ID:     s[i : i+1],
			Offset: i / 2,
			Span:   int(span - '0'),
		})
	}
	return exprs, nil
}
