// Package noteservice exposes the vault queries used by every front end
// (CLI, HTTP API, MCP). Each query performs a fresh full scan of the vault;
// nothing is cached between calls.
package noteservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/vaultgraph/internal/graph"
	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/scanner"
	"github.com/starford/vaultgraph/internal/storage"
)

// Service answers queries about a single vault.
type Service struct {
	store  storage.Provider
	logger *slog.Logger
}

// New opens the vault at root. The error wraps apperr.ErrInvalidVault when
// root is missing or not a directory.
func New(root string, logger *slog.Logger) (*Service, error) {
	store, err := storage.NewFS(root)
	if err != nil {
		return nil, fmt.Errorf("noteservice: %w", err)
	}
	return NewWithProvider(store, logger), nil
}

// NewWithProvider creates a service over an existing storage provider.
func NewWithProvider(store storage.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Root returns the absolute vault directory.
func (s *Service) Root() string {
	return s.store.Root()
}

// Snapshot scans the vault and returns the raw snapshot.
func (s *Service) Snapshot(ctx context.Context) (*scanner.Snapshot, error) {
	snap, err := scanner.Scan(ctx, s.store, s.logger)
	if err != nil {
		return nil, fmt.Errorf("noteservice: scan: %w", err)
	}
	return snap, nil
}

// CollectTags returns the tag frequency table sorted by tag.
func (s *Service) CollectTags(ctx context.Context) ([]models.TagCount, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return graph.TagCounts(snap.Notes()), nil
}

// CollectFiles returns per-note metadata sorted by path.
func (s *Service) CollectFiles(ctx context.Context) ([]models.FileInfo, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return graph.FileInfos(snap.Notes()), nil
}

// CollectLinks returns every link in the vault and the sorted note set.
func (s *Service) CollectLinks(ctx context.Context) ([]models.Link, []string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	return graph.Links(snap), snap.Paths(), nil
}

// FindOrphans returns notes with neither outgoing nor resolved incoming links.
func (s *Service) FindOrphans(ctx context.Context) ([]string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return graph.Orphans(snap.Paths(), graph.Links(snap)), nil
}

// FindNotesWithTag returns the notes carrying tag, compared case-sensitively.
func (s *Service) FindNotesWithTag(ctx context.Context, tag string) ([]string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return graph.NotesWithTag(snap.Notes(), tag), nil
}

// FindBacklinks returns the notes linking to target. target may be a full
// path, a partial path, or a bare note name.
func (s *Service) FindBacklinks(ctx context.Context, target string) ([]string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return graph.Backlinks(graph.Links(snap), target), nil
}

// ComputeStats returns the vault summary.
func (s *Service) ComputeStats(ctx context.Context) (models.Stats, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return graph.ComputeStats(snap), nil
}
