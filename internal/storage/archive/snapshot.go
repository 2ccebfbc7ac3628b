// internal/storage/archive/snapshot.go
package archive

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flipdeck/flipdeck/internal/core"
	"github.com/flipdeck/flipdeck/internal/journal"
)

// Snapshot describes one archived journal state.
type Snapshot struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Phases    int       `json:"phases"`
	Trades    int       `json:"trades"`
}

// envelope is the archived document: metadata plus the full book.
type envelope struct {
	Snapshot Snapshot      `json:"snapshot"`
	Book     *journal.Book `json:"book"`
}

const snapshotPrefix = "snapshots"

// Snapshotter writes point-in-time copies of the journal to an archive
// backend and restores them by ID.
type Snapshotter struct {
	storage Storage

	// Swapped out in tests for stable timestamps.
	now func() time.Time
}

// NewSnapshotter creates a snapshotter over the given backend.
func NewSnapshotter(storage Storage) *Snapshotter {
	return &Snapshotter{storage: storage, now: time.Now}
}

// Save archives the book under a fresh snapshot ID and returns the
// snapshot metadata.
func (s *Snapshotter) Save(ctx context.Context, book *journal.Book) (Snapshot, error) {
	phases := book.AllPhases()
	trades := 0
	for _, p := range phases {
		for _, t := range p.Trades {
			if t.Completed {
				trades++
			}
		}
	}

	snap := Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Phases:    len(phases),
		Trades:    trades,
	}

	data, err := json.MarshalIndent(envelope{Snapshot: snap, Book: book}, "", "  ")
	if err != nil {
		return Snapshot{}, core.WrapError(core.ErrArchiveFailed, err)
	}
	if err := s.storage.Write(ctx, s.path(snap), data); err != nil {
		return Snapshot{}, core.WrapError(core.ErrArchiveFailed, err)
	}
	return snap, nil
}

// List returns every archived snapshot's metadata, newest first.
func (s *Snapshotter) List(ctx context.Context) ([]Snapshot, error) {
	paths, err := s.storage.List(ctx, snapshotPrefix)
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}

	var snaps []Snapshot
	for _, path := range paths {
		if !strings.HasSuffix(path, ".json") {
			continue
		}
		env, err := s.load(ctx, path)
		if err != nil {
			continue // skip unreadable entries instead of failing the listing
		}
		snaps = append(snaps, env.Snapshot)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].CreatedAt.After(snaps[j].CreatedAt) })
	return snaps, nil
}

// Restore loads the archived book for the given snapshot ID.
func (s *Snapshotter) Restore(ctx context.Context, id string) (*journal.Book, error) {
	path, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	env, err := s.load(ctx, path)
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	return env.Book, nil
}

// Delete removes an archived snapshot.
func (s *Snapshotter) Delete(ctx context.Context, id string) error {
	path, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, path); err != nil {
		return core.WrapError(core.ErrArchiveFailed, err)
	}
	return nil
}

func (s *Snapshotter) path(snap Snapshot) string {
	return snapshotPrefix + "/" + snap.CreatedAt.Format("20060102T150405Z") + "-" + snap.ID + ".json"
}

func (s *Snapshotter) find(ctx context.Context, id string) (string, error) {
	paths, err := s.storage.List(ctx, snapshotPrefix)
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}
	for _, path := range paths {
		if strings.Contains(path, id) {
			return path, nil
		}
	}
	return "", core.ErrSnapshotNotFound
}

func (s *Snapshotter) load(ctx context.Context, path string) (*envelope, error) {
	data, err := s.storage.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
