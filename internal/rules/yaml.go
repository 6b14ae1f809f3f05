package rules

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML reads the structured rule format:
//
//	yes_no:
//	  - id: Q
//	rules:
//	  - sign: WHO
//	    question_only: true
//	    supersedes: 1
//	    expressions:
//	      - {id: B}
//	      - {id: A, offset: 1}
func ParseYAML(r io.Reader) (*Set, error) {
	var set Set
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse rules: %v: %w", err, ErrMalformed)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}
