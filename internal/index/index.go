package index

import (
	"context"

	"github.com/starford/vaultgraph/internal/scanner"
)

// Exporter writes a snapshot and reads back what was stored.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type Exporter interface {
	Export(ctx context.Context, snap *scanner.Snapshot) error
	NotePaths(ctx context.Context) ([]string, error)
	BrokenLinks(ctx context.Context) ([]BrokenLink, error)
	Close() error
}

// Verify *DB satisfies Exporter at compile time.
var _ Exporter = (*DB)(nil)
