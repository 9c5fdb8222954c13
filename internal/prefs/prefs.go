// Package prefs persists the last-selected view so the UI reopens where the
// user left off.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aghostraa/task-extractor-app/internal/core"
)

// Prefs is the view-preference record: which view is active and, when the
// user was inside a folder, which one.
type Prefs struct {
	View     core.View `yaml:"view" json:"view"`
	FolderID *string   `yaml:"folderId,omitempty" json:"folderId,omitempty"`
}

// Default is what a fresh profile sees.
func Default() Prefs {
	return Prefs{View: core.ViewAll}
}

// Store reads and writes the preference file.
type Store struct {
	path string
}

// NewStore creates a preference store at path. A leading ~ expands to the
// user's home directory.
func NewStore(path string) (*Store, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[1:])
	}
	return &Store{path: path}, nil
}

// Load returns the saved preferences, or the default record when the file
// does not exist yet. An unknown saved view also falls back to the default.
func (s *Store) Load() (Prefs, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Prefs{}, fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs: %w", err)
	}
	if !core.ValidView(p.View) {
		return Default(), nil
	}
	return p, nil
}

// Save writes the preferences, creating the parent directory if needed.
func (s *Store) Save(p Prefs) error {
	if !core.ValidView(p.View) {
		return fmt.Errorf("unknown view %q", p.View)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}
