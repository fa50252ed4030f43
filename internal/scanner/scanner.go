// Package scanner reads a vault into an immutable Snapshot of parsed notes.
//
// A scan is a three step pipeline: every listed file is read once into a
// per-file result, the note-identity index is built from the files that were
// read successfully, and only then are link targets resolved against that
// complete index. Resolution therefore never depends on traversal order.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/starford/vaultgraph/internal/checksum"
	"github.com/starford/vaultgraph/internal/metrics"
	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/parser"
	"github.com/starford/vaultgraph/internal/resolve"
	"github.com/starford/vaultgraph/internal/storage"
)

// errNotText marks a file whose bytes are not valid UTF-8.
var errNotText = errors.New("not valid UTF-8 text")

// fileResult is the outcome of reading and parsing one listed file.
type fileResult struct {
	note models.Note
	err  error
}

// Scan walks the vault behind store and returns a snapshot of every note that
// could be read. Unreadable files are skipped; only a failure to walk the
// vault itself is returned as an error.
func Scan(ctx context.Context, store storage.Provider, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	metas, err := store.List(ctx)
	if err != nil {
		metrics.ObserveScan(metrics.OutcomeError, time.Since(start), 0)
		return nil, fmt.Errorf("scanner: %w", err)
	}

	results, err := readAll(ctx, store, metas)
	if err != nil {
		metrics.ObserveScan(metrics.OutcomeError, time.Since(start), 0)
		return nil, fmt.Errorf("scanner: %w", err)
	}

	notes := make([]models.Note, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			logger.Debug("scan: read failed", slog.String("path", r.note.Path), slog.String("error", r.err.Error()))
			metrics.ReadFailed()
			continue
		}
		notes = append(notes, r.note)
	}

	snap := NewSnapshot(notes)
	metrics.ObserveScan(metrics.OutcomeOK, time.Since(start), len(notes))
	logger.Debug("scan: complete",
		slog.String("root", store.Root()),
		slog.Int("listed", len(metas)),
		slog.Int("notes", len(notes)),
		slog.Duration("elapsed", time.Since(start)))
	return snap, nil
}

// readAll reads and parses each listed file once.
func readAll(ctx context.Context, store storage.Provider, metas []models.NoteMetadata) ([]fileResult, error) {
	out := make([]fileResult, 0, len(metas))
	for _, m := range metas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, readNote(store, m))
	}
	return out, nil
}

func readNote(store storage.Provider, m models.NoteMetadata) fileResult {
	data, err := store.Read(m.Path)
	if err != nil {
		return fileResult{note: models.Note{Path: m.Path}, err: err}
	}
	if !utf8.Valid(data) {
		return fileResult{note: models.Note{Path: m.Path}, err: errNotText}
	}
	res := parser.Parse(data)
	return fileResult{note: models.Note{
		Path:       m.Path,
		WordCount:  res.WordCount,
		Tags:       res.Tags,
		Links:      res.Links,
		Checksum:   checksum.Sum(data),
		ModTime:    m.ModTime,
		HasModTime: m.HasModTime,
	}}
}

// Snapshot is the immutable result of one scan.
type Snapshot struct {
	notes []models.Note
	index *resolve.Index
}

// NewSnapshot builds a snapshot from already parsed notes. Note paths are
// expected to be unique.
func NewSnapshot(notes []models.Note) *Snapshot {
	sorted := make([]models.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	paths := make([]string, len(sorted))
	for i, n := range sorted {
		paths[i] = n.Path
	}
	return &Snapshot{notes: sorted, index: resolve.NewIndex(paths)}
}

// Notes returns the scanned notes sorted by path.
func (s *Snapshot) Notes() []models.Note {
	return s.notes
}

// Paths returns the note-identity set in lexicographic order.
func (s *Snapshot) Paths() []string {
	return s.index.Paths()
}

// Index returns the note-identity index used for link resolution.
func (s *Snapshot) Index() *resolve.Index {
	return s.index
}

// Links resolves every extracted link against the complete note index, in
// note order then in-note order. Unresolved links keep their raw text as Target.
func (s *Snapshot) Links() []models.Link {
	out := []models.Link{}
	for _, n := range s.notes {
		for _, raw := range n.Links {
			link := models.Link{Source: n.Path, Target: raw}
			if target, ok := s.index.Resolve(raw); ok {
				link.Target = target
				link.Exists = true
			}
			out = append(out, link)
		}
	}
	return out
}
