package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Parse failure kinds. Callers distinguish "the model said nothing usable"
// from "the model said something that would not parse".
var (
	ErrNoTaskArray = errors.New("no task array found in completion")
	ErrInvalidJSON = errors.New("task array is not valid JSON")
)

// arrayPattern locates a JSON-array-of-objects span: the first `[` whose
// next significant character is `{`, greedily through the last `}` `]`.
// A conservative scan, not a full JSON tokenizer.
var arrayPattern = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)

// emptyArrayPattern matches a completion whose array is simply empty, which
// is the model's answer for non-actionable text.
var emptyArrayPattern = regexp.MustCompile(`\[\s*\]`)

// Candidate is one task parsed out of a completion. Values are copied
// verbatim; priority is not range-clamped here.
type Candidate struct {
	Text     string  `json:"text"`
	Priority int     `json:"priority"`
	Category string  `json:"category"`
	DueDate  *string `json:"dueDate"` // accepted from the model, not persisted
}

// Parse isolates the task array from a completion and decodes it. Zero
// candidates is a valid outcome; a completion with no array at all is not.
func Parse(completion string) ([]Candidate, error) {
	span := arrayPattern.FindString(completion)
	if span == "" {
		if emptyArrayPattern.MatchString(completion) {
			return []Candidate{}, nil
		}
		return nil, ErrNoTaskArray
	}

	var candidates []Candidate
	if err := json.Unmarshal([]byte(span), &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return candidates, nil
}
