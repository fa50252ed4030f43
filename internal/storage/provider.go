// Package storage defines the read-only vault file-system abstraction.
package storage

import (
	"context"

	"github.com/starford/vaultgraph/internal/models"
)

// Provider is the interface for vault file access.
type Provider interface {
	// Root returns the absolute vault directory.
	Root() string
	// List returns metadata for every .md file in the vault, sorted by path.
	List(ctx context.Context) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
}

// Verify *FS satisfies Provider at compile time.
var _ Provider = (*FS)(nil)
