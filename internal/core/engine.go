package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aghostraa/task-extractor-app/internal/extraction"
	"github.com/Aghostraa/task-extractor-app/internal/storage"
)

// Engine implements every task and folder operation. Handlers and CLI
// commands call it; it owns validation, error classification, and the
// translation between store records and API types.
type Engine struct {
	tasks     TaskStore
	folders   FolderStore
	extractor Extractor
}

// NewEngine creates an engine backed by one store for both entity kinds.
func NewEngine(store *storage.Store, extractor Extractor) *Engine {
	return NewEngineWithDeps(store, store, extractor)
}

// NewEngineWithDeps creates an engine with explicit dependencies (for testing)
func NewEngineWithDeps(tasks TaskStore, folders FolderStore, extractor Extractor) *Engine {
	return &Engine{
		tasks:     tasks,
		folders:   folders,
		extractor: extractor,
	}
}

// storeErr classifies a store failure: missing rows become ErrNotFound,
// everything else ErrPersistence.
func storeErr(err error) error {
	if errors.Is(err, storage.ErrNoRecord) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

func taskFromRecord(r *storage.TaskRecord) *Task {
	t := &Task{
		ID:         r.ID,
		Text:       r.Text,
		Priority:   r.Priority,
		Category:   r.Category,
		Completed:  r.Completed,
		Flagged:    r.Flagged,
		Status:     r.Status,
		SourceText: r.SourceText,
		FolderID:   r.FolderID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Folder != nil {
		t.Folder = folderFromRecord(r.Folder)
	}
	return t
}

func tasksFromRecords(records []*storage.TaskRecord) []*Task {
	tasks := make([]*Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, taskFromRecord(r))
	}
	return tasks
}

func folderFromRecord(r *storage.FolderRecord) *Folder {
	return &Folder{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		TaskCount:   r.TaskCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ExtractAndSave runs free text through the extraction model, persists the
// resulting tasks in one batch, and returns them sorted by priority then
// recency. Text that yields no tasks succeeds with an empty slice.
func (e *Engine) ExtractAndSave(ctx context.Context, text string, folderID *string) ([]*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	completion, err := e.extractor.Complete(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	candidates, err := extraction.Parse(completion)
	if err != nil {
		switch {
		case errors.Is(err, extraction.ErrNoTaskArray):
			return nil, fmt.Errorf("%w: %v", ErrNoExtractableJSON, err)
		case errors.Is(err, extraction.ErrInvalidJSON):
			return nil, fmt.Errorf("%w: %v", ErrMalformedExtraction, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedExtraction, err)
	}

	if len(candidates) == 0 {
		return []*Task{}, nil
	}

	now := time.Now()
	records := make([]*storage.TaskRecord, 0, len(candidates))
	for _, c := range candidates {
		// Unset fields default; supplied values are copied as-is, unclamped.
		priority := c.Priority
		if priority == 0 {
			priority = PriorityMedium
		}
		category := c.Category
		if category == "" {
			category = CategoryGeneral
		}
		sourceText := text
		records = append(records, &storage.TaskRecord{
			ID:         storage.GenerateID(),
			Text:       c.Text,
			Priority:   priority,
			Category:   category,
			Status:     StatusTodo,
			SourceText: &sourceText,
			FolderID:   folderID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	if err := e.tasks.SaveTasks(records); err != nil {
		return nil, storeErr(err)
	}

	// Read back through the store so folders arrive attached and the rows
	// reflect exactly what was persisted.
	saved, err := e.tasks.ListTasksBySource(text, len(records))
	if err != nil {
		return nil, storeErr(err)
	}

	tasks := tasksFromRecords(saved)
	SortTasks(tasks)
	return tasks, nil
}

// CreateOrUpdate inserts a task when the draft has no id, otherwise merges
// the supplied fields into the existing row. Unsupplied fields are untouched.
func (e *Engine) CreateOrUpdate(draft TaskDraft) (*Task, error) {
	if draft.Status != nil && !ValidStatus(*draft.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *draft.Status)
	}

	if draft.ID == "" {
		return e.createTask(draft)
	}
	return e.updateTask(draft)
}

func (e *Engine) createTask(draft TaskDraft) (*Task, error) {
	if draft.Text == nil || strings.TrimSpace(*draft.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	now := time.Now()
	record := &storage.TaskRecord{
		ID:        storage.GenerateID(),
		Text:      strings.TrimSpace(*draft.Text),
		Priority:  PriorityMedium,
		Category:  CategoryGeneral,
		Status:    StatusTodo,
		FolderID:  draft.FolderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if draft.Priority != nil {
		record.Priority = *draft.Priority
	}
	if draft.Category != nil {
		record.Category = *draft.Category
	}
	if draft.Status != nil {
		record.Status = *draft.Status
	}

	if err := e.tasks.SaveTask(record); err != nil {
		return nil, storeErr(err)
	}
	return e.GetTask(record.ID)
}

func (e *Engine) updateTask(draft TaskDraft) (*Task, error) {
	record, err := e.tasks.GetTask(draft.ID)
	if err != nil {
		return nil, storeErr(err)
	}

	if draft.Text != nil {
		text := strings.TrimSpace(*draft.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: text cannot be empty", ErrValidation)
		}
		record.Text = text
	}
	if draft.Priority != nil {
		record.Priority = *draft.Priority
	}
	if draft.Category != nil {
		record.Category = *draft.Category
	}
	if draft.Status != nil {
		record.Status = *draft.Status
	}
	if draft.FolderID != nil {
		record.FolderID = draft.FolderID
	}

	if err := e.tasks.UpdateTask(record); err != nil {
		return nil, storeErr(err)
	}
	return e.GetTask(draft.ID)
}

// GetTask returns one task with its folder attached.
func (e *Engine) GetTask(id string) (*Task, error) {
	record, err := e.tasks.GetTask(id)
	if err != nil {
		return nil, storeErr(err)
	}
	return taskFromRecord(record), nil
}

// ListTasks returns every task, newest first.
func (e *Engine) ListTasks() ([]*Task, error) {
	records, err := e.tasks.ListTasks()
	if err != nil {
		return nil, storeErr(err)
	}
	return tasksFromRecords(records), nil
}

// UpdateStatus moves a task to a kanban column.
func (e *Engine) UpdateStatus(id, status string) (*Task, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := e.tasks.SetTaskStatus(id, status); err != nil {
		return nil, storeErr(err)
	}
	return e.GetTask(id)
}

// ToggleFlag flips a task's flagged bit atomically and returns the new row.
func (e *Engine) ToggleFlag(id string) (*Task, error) {
	if err := e.tasks.ToggleTaskFlag(id); err != nil {
		return nil, storeErr(err)
	}
	return e.GetTask(id)
}

// Complete marks a task done. Both completed and status change together so
// the kanban view and the completed count stay consistent.
func (e *Engine) Complete(id string) (*Task, error) {
	if err := e.tasks.CompleteTask(id); err != nil {
		return nil, storeErr(err)
	}
	return e.GetTask(id)
}

// AssignFolder files a task under a folder, or unfiles it when folderID is
// nil. The folder id is not checked for existence.
func (e *Engine) AssignFolder(id string, folderID *string) (*Task, error) {
	if err := e.tasks.AssignTaskFolder(id, folderID); err != nil {
		return nil, storeErr(err)
	}
	return e.GetTask(id)
}

// DeleteTask removes a task permanently.
func (e *Engine) DeleteTask(id string) error {
	if err := e.tasks.DeleteTask(id); err != nil {
		return storeErr(err)
	}
	return nil
}

// ViewTasks returns the tasks visible in a view, optionally narrowed to one
// folder. Store fetch order (creation-descending) is preserved; the
// priority sort applies only to freshly extracted batches.
func (e *Engine) ViewTasks(view View, folderID *string) ([]*Task, error) {
	if !ValidView(view) {
		return nil, fmt.Errorf("%w: unknown view %q", ErrValidation, view)
	}
	tasks, err := e.ListTasks()
	if err != nil {
		return nil, err
	}
	return FilterTasks(tasks, view, folderID, time.Now()), nil
}

// ViewCounts returns the badge numbers for every view.
func (e *Engine) ViewCounts() (CountSet, error) {
	tasks, err := e.ListTasks()
	if err != nil {
		return CountSet{}, err
	}
	folders, err := e.ListFolders()
	if err != nil {
		return CountSet{}, err
	}
	return Counts(tasks, folders, time.Now()), nil
}

// KanbanView returns tasks split into status columns, in store fetch order.
func (e *Engine) KanbanView(folderID *string) (KanbanBoard, error) {
	tasks, err := e.ListTasks()
	if err != nil {
		return KanbanBoard{}, err
	}
	return Buckets(tasks, folderID), nil
}

// CreateFolder inserts a folder. Name is required; description and color
// default to empty.
func (e *Engine) CreateFolder(draft FolderDraft) (*Folder, error) {
	if draft.Name == nil || strings.TrimSpace(*draft.Name) == "" {
		return nil, fmt.Errorf("%w: folder name is required", ErrValidation)
	}

	now := time.Now()
	record := &storage.FolderRecord{
		ID:        storage.GenerateID(),
		Name:      strings.TrimSpace(*draft.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if draft.Description != nil {
		record.Description = *draft.Description
	}
	if draft.Color != nil {
		record.Color = *draft.Color
	}

	if err := e.folders.SaveFolder(record); err != nil {
		return nil, storeErr(err)
	}
	return e.GetFolder(record.ID)
}

// GetFolder returns one folder with its derived task count.
func (e *Engine) GetFolder(id string) (*Folder, error) {
	record, err := e.folders.GetFolder(id)
	if err != nil {
		return nil, storeErr(err)
	}
	return folderFromRecord(record), nil
}

// ListFolders returns every folder with task counts, newest first.
func (e *Engine) ListFolders() ([]*Folder, error) {
	records, err := e.folders.ListFolders()
	if err != nil {
		return nil, storeErr(err)
	}
	folders := make([]*Folder, 0, len(records))
	for _, r := range records {
		folders = append(folders, folderFromRecord(r))
	}
	return folders, nil
}

// UpdateFolder merges the supplied fields into an existing folder.
func (e *Engine) UpdateFolder(id string, draft FolderDraft) (*Folder, error) {
	record, err := e.folders.GetFolder(id)
	if err != nil {
		return nil, storeErr(err)
	}

	if draft.Name != nil {
		name := strings.TrimSpace(*draft.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: folder name cannot be empty", ErrValidation)
		}
		record.Name = name
	}
	if draft.Description != nil {
		record.Description = *draft.Description
	}
	if draft.Color != nil {
		record.Color = *draft.Color
	}

	if err := e.folders.UpdateFolder(record); err != nil {
		return nil, storeErr(err)
	}
	return e.GetFolder(id)
}

// DeleteFolder removes a folder; its member tasks survive unfiled.
func (e *Engine) DeleteFolder(id string) error {
	if err := e.folders.DeleteFolder(id); err != nil {
		return storeErr(err)
	}
	return nil
}
