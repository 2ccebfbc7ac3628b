package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flipdeck/flipdeck/internal/core"
	"github.com/flipdeck/flipdeck/internal/journal"
)

func newTestSnapshotter(t *testing.T) *Snapshotter {
	t.Helper()
	fs, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}
	return NewSnapshotter(fs)
}

func testBook() *journal.Book {
	book := journal.NewBook(journal.DefaultSettings())
	book.StartPhase(100, 5, 0, "2024-03-01")
	book.CompleteTrade(1, 1, "2024-03-01", 20)
	book.CompleteTrade(1, 2, "2024-03-02", -10)
	return book
}

func TestSnapshotter_SaveRestore(t *testing.T) {
	s := newTestSnapshotter(t)
	ctx := context.Background()

	snap, err := s.Save(ctx, testBook())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if snap.ID == "" {
		t.Fatal("snapshot should carry an ID")
	}
	if snap.Phases != 1 || snap.Trades != 2 {
		t.Errorf("snapshot meta = %+v, want 1 phase, 2 completed trades", snap)
	}

	restored, err := s.Restore(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	phase, err := restored.ActivePhase()
	if err != nil {
		t.Fatalf("ActivePhase: %v", err)
	}
	if phase.InitialCapital != 100 || phase.CurrentBalance() != 110 {
		t.Errorf("restored phase capital/balance = %v/%v, want 100/110",
			phase.InitialCapital, phase.CurrentBalance())
	}
}

func TestSnapshotter_ListNewestFirst(t *testing.T) {
	s := newTestSnapshotter(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	first, _ := s.Save(ctx, testBook())

	s.now = func() time.Time { return base.Add(time.Hour) }
	second, _ := s.Save(ctx, testBook())

	snaps, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("len = %d, want 2", len(snaps))
	}
	if snaps[0].ID != second.ID || snaps[1].ID != first.ID {
		t.Errorf("expected newest first, got %v then %v", snaps[0].ID, snaps[1].ID)
	}
}

func TestSnapshotter_RestoreMissing(t *testing.T) {
	s := newTestSnapshotter(t)

	_, err := s.Restore(context.Background(), "no-such-id")
	if !errors.Is(err, core.ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSnapshotter_Delete(t *testing.T) {
	s := newTestSnapshotter(t)
	ctx := context.Background()

	snap, err := s.Save(ctx, testBook())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, snap.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := s.Restore(ctx, snap.ID); !errors.Is(err, core.ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound after delete, got %v", err)
	}
}
