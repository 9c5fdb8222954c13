package core

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Aghostraa/task-extractor-app/internal/storage"
)

// Common test errors
var (
	ErrMockStore     = errors.New("mock store error")
	ErrMockExtractor = errors.New("mock extractor error")
)

// MockTaskStore implements TaskStore on an in-memory map for testing
type MockTaskStore struct {
	mu     sync.Mutex
	tasks  map[string]*storage.TaskRecord
	FailOn string // method name to fail (empty = never fail)
}

func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{tasks: make(map[string]*storage.TaskRecord)}
}

func (m *MockTaskStore) fail(op string) bool {
	return m.FailOn == op
}

func (m *MockTaskStore) SaveTask(t *storage.TaskRecord) error {
	if m.fail("SaveTask") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *MockTaskStore) SaveTasks(tasks []*storage.TaskRecord) error {
	if m.fail("SaveTasks") {
		return ErrMockStore
	}
	for _, t := range tasks {
		if err := m.SaveTask(t); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockTaskStore) GetTask(id string) (*storage.TaskRecord, error) {
	if m.fail("GetTask") {
		return nil, ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, storage.ErrNoRecord
	}
	cp := *t
	return &cp, nil
}

func (m *MockTaskStore) ListTasks() ([]*storage.TaskRecord, error) {
	if m.fail("ListTasks") {
		return nil, ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*storage.TaskRecord
	for _, t := range m.tasks {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockTaskStore) ListTasksBySource(sourceText string, limit int) ([]*storage.TaskRecord, error) {
	if m.fail("ListTasksBySource") {
		return nil, ErrMockStore
	}
	all, err := m.ListTasks()
	if err != nil {
		return nil, err
	}
	var out []*storage.TaskRecord
	for _, t := range all {
		if t.SourceText != nil && *t.SourceText == sourceText {
			out = append(out, t)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockTaskStore) UpdateTask(t *storage.TaskRecord) error {
	if m.fail("UpdateTask") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[t.ID]; !ok {
		return storage.ErrNoRecord
	}
	cp := *t
	cp.UpdatedAt = time.Now()
	m.tasks[t.ID] = &cp
	return nil
}

func (m *MockTaskStore) SetTaskStatus(id, status string) error {
	if m.fail("SetTaskStatus") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return storage.ErrNoRecord
	}
	t.Status = status
	return nil
}

func (m *MockTaskStore) ToggleTaskFlag(id string) error {
	if m.fail("ToggleTaskFlag") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return storage.ErrNoRecord
	}
	t.Flagged = !t.Flagged
	return nil
}

func (m *MockTaskStore) CompleteTask(id string) error {
	if m.fail("CompleteTask") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return storage.ErrNoRecord
	}
	t.Completed = true
	t.Status = StatusDone
	return nil
}

func (m *MockTaskStore) AssignTaskFolder(id string, folderID *string) error {
	if m.fail("AssignTaskFolder") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return storage.ErrNoRecord
	}
	t.FolderID = folderID
	return nil
}

func (m *MockTaskStore) DeleteTask(id string) error {
	if m.fail("DeleteTask") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return storage.ErrNoRecord
	}
	delete(m.tasks, id)
	return nil
}

// MockFolderStore implements FolderStore on an in-memory map for testing
type MockFolderStore struct {
	mu      sync.Mutex
	folders map[string]*storage.FolderRecord
	FailOn  string
}

func NewMockFolderStore() *MockFolderStore {
	return &MockFolderStore{folders: make(map[string]*storage.FolderRecord)}
}

func (m *MockFolderStore) fail(op string) bool {
	return m.FailOn == op
}

func (m *MockFolderStore) SaveFolder(f *storage.FolderRecord) error {
	if m.fail("SaveFolder") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *f
	m.folders[f.ID] = &cp
	return nil
}

func (m *MockFolderStore) GetFolder(id string) (*storage.FolderRecord, error) {
	if m.fail("GetFolder") {
		return nil, ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[id]
	if !ok {
		return nil, storage.ErrNoRecord
	}
	cp := *f
	return &cp, nil
}

func (m *MockFolderStore) ListFolders() ([]*storage.FolderRecord, error) {
	if m.fail("ListFolders") {
		return nil, ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*storage.FolderRecord
	for _, f := range m.folders {
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockFolderStore) UpdateFolder(f *storage.FolderRecord) error {
	if m.fail("UpdateFolder") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.folders[f.ID]; !ok {
		return storage.ErrNoRecord
	}
	cp := *f
	m.folders[f.ID] = &cp
	return nil
}

func (m *MockFolderStore) DeleteFolder(id string) error {
	if m.fail("DeleteFolder") {
		return ErrMockStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.folders[id]; !ok {
		return storage.ErrNoRecord
	}
	delete(m.folders, id)
	return nil
}

// MockExtractor implements Extractor for testing
type MockExtractor struct {
	CompleteFunc func(ctx context.Context, text string) (string, error)
	Completion   string
	CallCount    int
	LastText     string
}

func (m *MockExtractor) Complete(ctx context.Context, text string) (string, error) {
	m.CallCount++
	m.LastText = text
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, text)
	}
	return m.Completion, nil
}

func newTestEngine() (*Engine, *MockTaskStore, *MockFolderStore, *MockExtractor) {
	tasks := NewMockTaskStore()
	folders := NewMockFolderStore()
	extractor := &MockExtractor{Completion: "[]"}
	return NewEngineWithDeps(tasks, folders, extractor), tasks, folders, extractor
}
