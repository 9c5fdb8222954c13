package core

import (
	"context"

	"github.com/Aghostraa/task-extractor-app/internal/storage"
)

// TaskStore is the task persistence surface the engine depends on.
type TaskStore interface {
	SaveTask(t *storage.TaskRecord) error
	SaveTasks(tasks []*storage.TaskRecord) error
	GetTask(id string) (*storage.TaskRecord, error)
	ListTasks() ([]*storage.TaskRecord, error)
	ListTasksBySource(sourceText string, limit int) ([]*storage.TaskRecord, error)
	UpdateTask(t *storage.TaskRecord) error
	SetTaskStatus(id, status string) error
	ToggleTaskFlag(id string) error
	CompleteTask(id string) error
	AssignTaskFolder(id string, folderID *string) error
	DeleteTask(id string) error
}

// FolderStore is the folder persistence surface the engine depends on.
type FolderStore interface {
	SaveFolder(f *storage.FolderRecord) error
	GetFolder(id string) (*storage.FolderRecord, error)
	ListFolders() ([]*storage.FolderRecord, error)
	UpdateFolder(f *storage.FolderRecord) error
	DeleteFolder(id string) error
}

// Extractor produces a raw model completion for a piece of free text.
type Extractor interface {
	Complete(ctx context.Context, text string) (string, error)
}
