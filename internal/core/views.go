package core

import (
	"sort"
	"time"
)

// KanbanCounts holds per-column task counts for the kanban view.
type KanbanCounts struct {
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// CountSet holds the badge numbers for every predefined view plus per-folder
// totals. All counts except Completed exclude completed tasks.
type CountSet struct {
	All       int            `json:"all"`
	Today     int            `json:"today"`
	Flagged   int            `json:"flagged"`
	Completed int            `json:"completed"`
	Kanban    KanbanCounts   `json:"kanban"`
	Folders   map[string]int `json:"folders"`
}

// KanbanBoard groups tasks by status column. Completion does not remove a
// task from its column; only status places it.
type KanbanBoard struct {
	Todo       []*Task `json:"todo"`
	InProgress []*Task `json:"inProgress"`
	Done       []*Task `json:"done"`
}

// sameDay reports whether t falls on the same calendar day as now, in
// now's location.
func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Counts derives every view badge from one task slice. Completed tasks are
// counted only in Completed; they do not appear in any other number. Every
// folder gets an entry, zero included; tasks filed under an id that is not
// in folders are not counted anywhere per-folder.
func Counts(tasks []*Task, folders []*Folder, now time.Time) CountSet {
	cs := CountSet{Folders: make(map[string]int, len(folders))}
	for _, f := range folders {
		cs.Folders[f.ID] = 0
	}

	for _, t := range tasks {
		if t.Completed {
			cs.Completed++
			continue
		}

		cs.All++
		if sameDay(t.CreatedAt, now) {
			cs.Today++
		}
		if t.Flagged {
			cs.Flagged++
		}
		if t.FolderID != nil {
			if _, ok := cs.Folders[*t.FolderID]; ok {
				cs.Folders[*t.FolderID]++
			}
		}

		switch t.Status {
		case StatusTodo:
			cs.Kanban.Todo++
		case StatusInProgress:
			cs.Kanban.InProgress++
		case StatusDone:
			cs.Kanban.Done++
		}
	}

	return cs
}

// FilterTasks returns the open tasks visible in a view, optionally narrowed
// to one folder. The kanban view filters like "all"; use Buckets to split
// the result into columns.
func FilterTasks(tasks []*Task, view View, folderID *string, now time.Time) []*Task {
	filtered := make([]*Task, 0, len(tasks))

	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if folderID != nil && (t.FolderID == nil || *t.FolderID != *folderID) {
			continue
		}

		switch view {
		case ViewToday:
			if !sameDay(t.CreatedAt, now) {
				continue
			}
		case ViewFlagged:
			if !t.Flagged {
				continue
			}
		}

		filtered = append(filtered, t)
	}

	return filtered
}

// Buckets splits tasks into kanban columns by status alone, optionally
// narrowed to one folder. A completed task still appears in its status
// column. Tasks with an unknown status are dropped rather than misfiled.
func Buckets(tasks []*Task, folderID *string) KanbanBoard {
	board := KanbanBoard{
		Todo:       []*Task{},
		InProgress: []*Task{},
		Done:       []*Task{},
	}

	for _, t := range tasks {
		if folderID != nil && (t.FolderID == nil || *t.FolderID != *folderID) {
			continue
		}

		switch t.Status {
		case StatusTodo:
			board.Todo = append(board.Todo, t)
		case StatusInProgress:
			board.InProgress = append(board.InProgress, t)
		case StatusDone:
			board.Done = append(board.Done, t)
		}
	}

	return board
}

// SortTasks orders tasks by priority ascending (high first), then creation
// time descending (newest first). The sort is stable so equal tasks keep
// their incoming order.
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}
