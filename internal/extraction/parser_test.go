package extraction

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		completion string
		wantCount  int
		wantErr    error
	}{
		{
			name: "Given a clean task array When parsing Then returns all candidates",
			completion: `[
				{"text": "Finish quarterly report", "priority": 1, "category": "deadline", "dueDate": "2026-09-01"},
				{"text": "Book team lunch", "priority": 3, "category": "general", "dueDate": null}
			]`,
			wantCount: 2,
		},
		{
			name: "Given prose around the array When parsing Then isolates the array",
			completion: `Here are the tasks I found:

[{"text": "Call the dentist", "priority": 2, "category": "general", "dueDate": null}]

Let me know if you need anything else.`,
			wantCount: 1,
		},
		{
			name:       "Given an empty array When parsing Then returns zero candidates without error",
			completion: `No actionable items here. []`,
			wantCount:  0,
		},
		{
			name:       "Given no JSON at all When parsing Then returns ErrNoTaskArray",
			completion: `I could not find any tasks in that text.`,
			wantErr:    ErrNoTaskArray,
		},
		{
			name:       "Given a broken array When parsing Then returns ErrInvalidJSON",
			completion: `[{"text": "Dangling", "priority": }]`,
			wantErr:    ErrInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := Parse(tt.completion)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if len(candidates) != tt.wantCount {
				t.Errorf("Parse() returned %d candidates, want %d", len(candidates), tt.wantCount)
			}
		})
	}
}

func TestParsePreservesFields(t *testing.T) {
	completion := `[{"text": "Ship release notes", "priority": 1, "category": "deadline", "dueDate": "2026-09-01"}]`

	candidates, err := Parse(completion)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}

	c := candidates[0]
	if c.Text != "Ship release notes" {
		t.Errorf("Text = %q", c.Text)
	}
	if c.Priority != 1 {
		t.Errorf("Priority = %d, want 1", c.Priority)
	}
	if c.Category != "deadline" {
		t.Errorf("Category = %q, want deadline", c.Category)
	}
	if c.DueDate == nil || *c.DueDate != "2026-09-01" {
		t.Errorf("DueDate = %v, want 2026-09-01", c.DueDate)
	}
}

func TestParseMissingFieldsDefaultToZero(t *testing.T) {
	completion := `[{"text": "Bare minimum task"}]`

	candidates, err := Parse(completion)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}

	c := candidates[0]
	if c.Priority != 0 {
		t.Errorf("Priority = %d, want 0 (unset)", c.Priority)
	}
	if c.Category != "" {
		t.Errorf("Category = %q, want empty", c.Category)
	}
	if c.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", c.DueDate)
	}
}
