package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nhle/nostlichat/internal/logger"
	"github.com/nhle/nostlichat/internal/model"
)

// appDirName is the subdirectory under the user data root that holds
// the state file.
const appDirName = "nostlichat"

// dataFileName is the single JSON document holding all state.
const dataFileName = "data.json"

// JSONStore persists the state document as one JSON file at a fixed
// location under the user data directory.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store rooted at dataDir. An empty dataDir
// resolves to the platform user-data root ($XDG_DATA_HOME, falling back
// to ~/.local/share). Intermediate directories are created on demand.
func NewJSONStore(dataDir string) *JSONStore {
	if dataDir == "" {
		dataDir = defaultDataDir()
	}
	return &JSONStore{
		path: filepath.Join(dataDir, appDirName, dataFileName),
	}
}

// defaultDataDir resolves the platform user-data root.
func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// Path returns the resolved location of the state file.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads and decodes the state document. A missing file or
// malformed JSON resolves to the zero-value document rather than an
// error, so a corrupt file silently recovers to a fresh state.
func (s *JSONStore) Load() (model.Document, error) {
	var doc model.Document

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("state file unreadable, starting fresh",
				"path", s.path, "error", err)
		}
		return model.Document{}, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("state file malformed, starting fresh",
			"path", s.path, "error", err)
		return model.Document{}, nil
	}

	return doc, nil
}

// Save encodes the document and overwrites the state file, creating
// intermediate directories if needed.
func (s *JSONStore) Save(doc model.Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding state document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing state file %s: %w", s.path, err)
	}

	return nil
}

// Delete removes the state file entirely. A file that is already gone
// is not an error.
func (s *JSONStore) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing state file %s: %w", s.path, err)
	}
	return nil
}
