// Package jsonfile persists the project list as a single pretty-printed
// JSON array, the on-disk contract shared with backups and exports.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/repository"
)

// Indent matches existing data files (4 spaces).
const Indent = "    "

// Store reads and writes one JSON document holding all projects.
type Store struct {
	path string
}

// New creates a store for the given data file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full project list. A missing file is an empty list.
// A document that fails to parse is reported as repository.ErrMalformedData.
func (s *Store) Load(ctx context.Context) ([]project.Project, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var projects []project.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrMalformedData, err)
	}
	return projects, nil
}

// Save writes the full project list, overwriting the data file.
func (s *Store) Save(ctx context.Context, projects []project.Project) error {
	if projects == nil {
		projects = []project.Project{}
	}
	data, err := json.MarshalIndent(projects, "", Indent)
	if err != nil {
		return fmt.Errorf("encode project data: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// Decode parses a JSON document as a project list without touching the
// store. Backup restore uses it to validate a file before overwriting.
func Decode(data []byte) ([]project.Project, error) {
	var projects []project.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrMalformedData, err)
	}
	return projects, nil
}
