package core

import (
	"time"
)

// Task status constants
const (
	StatusTodo       = "todo"
	StatusInProgress = "inProgress"
	StatusDone       = "done"
)

// Task priority constants (1 is highest)
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Extraction-time category conventions. The store does not enforce these.
const (
	CategoryProject  = "project"
	CategoryMeeting  = "meeting"
	CategoryDeadline = "deadline"
	CategoryGeneral  = "general"
)

// View identifies one of the predefined task filters
type View string

const (
	ViewAll     View = "all"
	ViewToday   View = "today"
	ViewFlagged View = "flagged"
	ViewKanban  View = "kanban"
)

// Task represents a single actionable item
type Task struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Priority   int        `json:"priority"` // 1 (high) – 3 (low)
	Category   string     `json:"category"` // project, meeting, deadline, general
	Completed  bool       `json:"completed"`
	Flagged    bool       `json:"flagged"`
	Status     string     `json:"status"` // todo, inProgress, done
	SourceText *string    `json:"sourceText,omitempty"`
	FolderID   *string    `json:"folderId,omitempty"`
	Folder     *Folder    `json:"folder,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Folder groups tasks by user-defined area
type Folder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"` // hex-like display tint, not validated
	TaskCount   int       `json:"taskCount"`       // derived at read time, never stored
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskDraft carries caller-supplied fields for createOrUpdate. Nil pointers
// mean "not supplied" so updates merge only the fields that were sent.
type TaskDraft struct {
	ID       string  `json:"id,omitempty"`
	Text     *string `json:"text,omitempty"`
	Priority *int    `json:"priority,omitempty"`
	Category *string `json:"category,omitempty"`
	Status   *string `json:"status,omitempty"`
	FolderID *string `json:"folderId,omitempty"`
}

// FolderDraft carries caller-supplied fields for folder create/update
type FolderDraft struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// ValidStatus reports whether s is one of the three kanban statuses.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// ValidView reports whether v is one of the four predefined views.
func ValidView(v View) bool {
	return v == ViewAll || v == ViewToday || v == ViewFlagged || v == ViewKanban
}
