package archive

import "context"

// Storage is the artifact sink consumed by the dashboard and reporting
// layers. Artifacts are immutable once written; a cycle either writes
// its full set or nothing.
type Storage interface {
	// Write stores an artifact at the given path.
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves an artifact.
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all artifact paths under the prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists checks whether an artifact is present.
	Exists(ctx context.Context, path string) (bool, error)
}
