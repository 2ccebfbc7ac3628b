// Package archive stores journal snapshots. A snapshot is an opaque
// JSON blob keyed by a path like snapshots/<id>.json; backends only
// move bytes and never look inside them.
package archive

import "context"

// Storage is the backend a Snapshotter writes through. Paths use
// forward slashes on every backend.
type Storage interface {
	// Write stores data at path, replacing any previous content.
	Write(ctx context.Context, path string, data []byte) error

	// Read returns the content stored at path.
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns every stored path under prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the content at path.
	Delete(ctx context.Context, path string) error

	// Exists reports whether anything is stored at path.
	Exists(ctx context.Context, path string) (bool, error)
}
