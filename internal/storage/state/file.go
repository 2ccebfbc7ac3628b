package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flipdeck/flipdeck/internal/core"
	"github.com/flipdeck/flipdeck/internal/journal"
)

// FileStore persists the book as a single JSON document. Writes go
// through a temp file and rename so a crash never leaves a half-written
// state file behind.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, core.WrapError(core.ErrConfigMissing, fmt.Errorf("state file path is empty"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Load(ctx context.Context) (*journal.Book, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, core.ErrStateNotFound
	}
	if err != nil {
		return nil, core.WrapError(core.ErrStateCorrupt, err)
	}

	var book journal.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, core.WrapError(core.ErrStateCorrupt, err)
	}
	return &book, nil
}

func (f *FileStore) Save(ctx context.Context, book *journal.Book) error {
	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing state: %w", err)
	}
	return nil
}
