package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoRecord is returned when a referenced row does not exist.
var ErrNoRecord = errors.New("record not found")

// Store handles SQLite storage for tasks and folders
type Store struct {
	db *sql.DB
}

// TaskRecord represents a task row
type TaskRecord struct {
	ID         string
	Text       string
	Priority   int
	Category   string
	Completed  bool
	Flagged    bool
	Status     string
	SourceText *string
	FolderID   *string
	Folder     *FolderRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FolderRecord represents a folder row
type FolderRecord struct {
	ID          string
	Name        string
	Description string
	Color       string
	TaskCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewStore opens the task database, creating it (and its parent directory)
// if needed.
func NewStore(dbPath string) (*Store, error) {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Ensure directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// migrate creates the necessary tables
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			priority INTEGER NOT NULL DEFAULT 2,
			category TEXT NOT NULL DEFAULT 'general',
			completed INTEGER NOT NULL DEFAULT 0,
			flagged INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'todo',
			source_text TEXT,
			folder_id TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_folder ON tasks(folder_id);
		CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
		CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

const taskColumns = `t.id, t.text, t.priority, t.category, t.completed, t.flagged,
	t.status, t.source_text, t.folder_id, t.created_at, t.updated_at,
	f.id, f.name, f.description, f.color, f.created_at, f.updated_at`

const taskSelect = `
	SELECT ` + taskColumns + `
	FROM tasks t
	LEFT JOIN folders f ON f.id = t.folder_id
`

func scanTask(scanner interface{ Scan(...any) error }) (*TaskRecord, error) {
	var t TaskRecord
	var sourceText, folderID sql.NullString
	var fID, fName, fDesc, fColor sql.NullString
	var fCreated, fUpdated sql.NullTime

	err := scanner.Scan(
		&t.ID, &t.Text, &t.Priority, &t.Category, &t.Completed, &t.Flagged,
		&t.Status, &sourceText, &folderID, &t.CreatedAt, &t.UpdatedAt,
		&fID, &fName, &fDesc, &fColor, &fCreated, &fUpdated,
	)
	if err != nil {
		return nil, err
	}

	if sourceText.Valid {
		t.SourceText = &sourceText.String
	}
	if folderID.Valid {
		t.FolderID = &folderID.String
	}
	// The join row is absent when folder_id is null or dangling
	if fID.Valid {
		t.Folder = &FolderRecord{
			ID:          fID.String,
			Name:        fName.String,
			Description: fDesc.String,
			Color:       fColor.String,
			CreatedAt:   fCreated.Time,
			UpdatedAt:   fUpdated.Time,
		}
	}

	return &t, nil
}

// SaveTask inserts a task row. ID and timestamps must already be set.
func (s *Store) SaveTask(t *TaskRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, text, priority, category, completed, flagged, status, source_text, folder_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Text, t.Priority, t.Category, t.Completed, t.Flagged, t.Status, t.SourceText, t.FolderID, t.CreatedAt, t.UpdatedAt)

	return err
}

// SaveTasks inserts a batch of task rows in one transaction. Either every
// row lands or none do.
func (s *Store) SaveTasks(tasks []*TaskRecord) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO tasks (id, text, priority, category, completed, flagged, status, source_text, folder_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tasks {
		if _, err := stmt.Exec(t.ID, t.Text, t.Priority, t.Category, t.Completed, t.Flagged, t.Status, t.SourceText, t.FolderID, t.CreatedAt, t.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetTask retrieves a task by ID with its folder eagerly attached
func (s *Store) GetTask(id string) (*TaskRecord, error) {
	row := s.db.QueryRow(taskSelect+`WHERE t.id = ?`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNoRecord)
		}
		return nil, err
	}
	return t, nil
}

// ListTasks returns all tasks in creation-descending order
func (s *Store) ListTasks() ([]*TaskRecord, error) {
	rows, err := s.db.Query(taskSelect + `ORDER BY t.created_at DESC, t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

// ListTasksBySource returns the most recent tasks sharing a source text.
// Used to read back generated ids and timestamps after a bulk insert.
func (s *Store) ListTasksBySource(sourceText string, limit int) ([]*TaskRecord, error) {
	rows, err := s.db.Query(taskSelect+`
		WHERE t.source_text = ?
		ORDER BY t.created_at DESC, t.id
		LIMIT ?
	`, sourceText, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]*TaskRecord, error) {
	var tasks []*TaskRecord
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTask writes the full task row. The caller merges fields beforehand.
func (s *Store) UpdateTask(t *TaskRecord) error {
	t.UpdatedAt = time.Now()
	res, err := s.db.Exec(`
		UPDATE tasks
		SET text = ?, priority = ?, category = ?, completed = ?, flagged = ?, status = ?, source_text = ?, folder_id = ?, updated_at = ?
		WHERE id = ?
	`, t.Text, t.Priority, t.Category, t.Completed, t.Flagged, t.Status, t.SourceText, t.FolderID, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "task", t.ID)
}

// SetTaskStatus updates only the status column
func (s *Store) SetTaskStatus(id, status string) error {
	res, err := s.db.Exec(`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "task", id)
}

// ToggleTaskFlag flips the flagged column in a single statement, so two
// concurrent toggles cannot lose an update.
func (s *Store) ToggleTaskFlag(id string) error {
	res, err := s.db.Exec(`UPDATE tasks SET flagged = NOT flagged, updated_at = ? WHERE id = ?`,
		time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "task", id)
}

// CompleteTask sets completed and moves the task to the done column together
func (s *Store) CompleteTask(id string) error {
	res, err := s.db.Exec(`UPDATE tasks SET completed = 1, status = ?, updated_at = ? WHERE id = ?`,
		"done", time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "task", id)
}

// AssignTaskFolder updates only folder_id. A nil folderID unfiles the task.
// Folder existence is not checked here; callers can write a dangling id.
func (s *Store) AssignTaskFolder(id string, folderID *string) error {
	res, err := s.db.Exec(`UPDATE tasks SET folder_id = ?, updated_at = ? WHERE id = ?`,
		folderID, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "task", id)
}

// DeleteTask removes a task row. Deleting a missing id reports ErrNoRecord.
func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "task", id)
}

// SaveFolder inserts a folder row
func (s *Store) SaveFolder(f *FolderRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO folders (id, name, description, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, f.ID, f.Name, f.Description, f.Color, f.CreatedAt, f.UpdatedAt)

	return err
}

const folderSelect = `
	SELECT f.id, f.name, f.description, f.color, f.created_at, f.updated_at,
		(SELECT COUNT(*) FROM tasks t WHERE t.folder_id = f.id) AS task_count
	FROM folders f
`

func scanFolder(scanner interface{ Scan(...any) error }) (*FolderRecord, error) {
	var f FolderRecord
	err := scanner.Scan(&f.ID, &f.Name, &f.Description, &f.Color, &f.CreatedAt, &f.UpdatedAt, &f.TaskCount)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFolder retrieves a folder by ID with its derived task count
func (s *Store) GetFolder(id string) (*FolderRecord, error) {
	row := s.db.QueryRow(folderSelect+`WHERE f.id = ?`, id)

	f, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder %s: %w", id, ErrNoRecord)
		}
		return nil, err
	}
	return f, nil
}

// ListFolders returns all folders with task counts, newest first
func (s *Store) ListFolders() ([]*FolderRecord, error) {
	rows, err := s.db.Query(folderSelect + `ORDER BY f.created_at DESC, f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*FolderRecord
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// UpdateFolder writes the full folder row. The caller merges fields beforehand.
func (s *Store) UpdateFolder(f *FolderRecord) error {
	f.UpdatedAt = time.Now()
	res, err := s.db.Exec(`
		UPDATE folders SET name = ?, description = ?, color = ?, updated_at = ? WHERE id = ?
	`, f.Name, f.Description, f.Color, f.UpdatedAt, f.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "folder", f.ID)
}

// DeleteFolder unfiles every member task and removes the folder row as one
// logical operation.
func (s *Store) DeleteFolder(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE tasks SET folder_id = NULL, updated_at = ? WHERE folder_id = ?`,
		time.Now(), id); err != nil {
		return err
	}

	res, err := tx.Exec(`DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("folder %s: %w", id, ErrNoRecord)
	}

	return tx.Commit()
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNoRecord)
	}
	return nil
}
