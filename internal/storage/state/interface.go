// Package state persists the journal book between runs.
package state

import (
	"context"

	"github.com/flipdeck/flipdeck/internal/journal"
)

// Store defines the interface for journal persistence.
type Store interface {
	// Load reads the saved book. Returns core.ErrStateNotFound when
	// nothing has been saved yet.
	Load(ctx context.Context) (*journal.Book, error)

	// Save persists the book, replacing any previous state.
	Save(ctx context.Context, book *journal.Book) error
}
