package state

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/flipdeck/flipdeck/internal/core"
	"github.com/flipdeck/flipdeck/internal/journal"
)

// MemoryStore is an in-memory store for tests and ephemeral runs. The
// book is deep-copied on both Load and Save so callers never share
// mutable state with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*journal.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, core.ErrStateNotFound
	}
	var book journal.Book
	if err := json.Unmarshal(m.data, &book); err != nil {
		return nil, core.WrapError(core.ErrStateCorrupt, err)
	}
	return &book, nil
}

func (m *MemoryStore) Save(ctx context.Context, book *journal.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}
