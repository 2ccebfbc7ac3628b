package archive

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestLocalFS_WriteCreatesNestedDirs(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalFS(base)
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}

	ctx := context.Background()
	if err := store.Write(ctx, "snapshots/2024/03/journal.json", []byte(`{"phases":[]}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(base, "snapshots", "2024", "03", "journal.json"))
	if err != nil {
		t.Fatalf("snapshot not on disk: %v", err)
	}
	if string(got) != `{"phases":[]}` {
		t.Errorf("content = %s", got)
	}
}

func TestLocalFS_WriteLeavesNoTempFile(t *testing.T) {
	base := t.TempDir()
	store, _ := NewLocalFS(base)

	if err := store.Write(context.Background(), "snapshots/a.json", []byte("{}")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(base, "snapshots"))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestLocalFS_ListMissingPrefixIsEmpty(t *testing.T) {
	store, _ := NewLocalFS(t.TempDir())

	paths, err := store.List(context.Background(), "snapshots")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("List = %v, want empty", paths)
	}
}

func TestLocalFS_ListReturnsRelativePaths(t *testing.T) {
	store, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	store.Write(ctx, "snapshots/one.json", []byte("{}"))
	store.Write(ctx, "snapshots/two.json", []byte("{}"))

	paths, err := store.List(ctx, "snapshots")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	sort.Strings(paths)
	want := []string{
		filepath.Join("snapshots", "one.json"),
		filepath.Join("snapshots", "two.json"),
	}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("List = %v, want %v", paths, want)
	}
}

func TestLocalFS_DeleteMissingFails(t *testing.T) {
	store, _ := NewLocalFS(t.TempDir())
	if err := store.Delete(context.Background(), "snapshots/nope.json"); err == nil {
		t.Error("expected error deleting a missing snapshot")
	}
}
