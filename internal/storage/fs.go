package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/starford/vaultgraph/internal/apperr"
	"github.com/starford/vaultgraph/internal/models"
)

const noteExt = ".md"

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to vault directory
	real string // root with symlinks evaluated, for loop detection
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w: %w", apperr.ErrInvalidVault, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w: %w", apperr.ErrInvalidVault, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: %w: root is not a directory: %s", apperr.ErrInvalidVault, abs)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: eval root: %w: %w", apperr.ErrInvalidVault, err)
	}
	return &FS{root: abs, real: resolved}, nil
}

// Root returns the absolute vault directory.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the vault root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	abs := filepath.Join(f.root, cleaned)
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("storage: path escapes vault root: %s", rel)
	}
	return abs, nil
}

// List walks the vault, following symbolic links, and returns metadata for
// every Markdown file sorted by path. Paths use forward slashes.
//
// Directories below the root that cannot be read and links that cannot be
// followed are skipped; an unreadable root fails with apperr.ErrInvalidVault.
// A directory link pointing back at one of its own ancestors is not descended
// into.
func (f *FS) List(ctx context.Context) ([]models.NoteMetadata, error) {
	var out []models.NoteMetadata
	v := visitor{note: func(_, rel string, info os.FileInfo) {
		out = append(out, models.NoteMetadata{
			Path:       rel,
			ModTime:    info.ModTime(),
			HasModTime: !info.ModTime().IsZero(),
		})
	}}
	if err := walk(ctx, f.root, "", []string{f.real}, v); err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Walk visits dir and the tree below it by the same rules as List. onDir is
// called for dir and for every directory descended into, and an error from it
// stops the walk. onNote is called for every note with its path relative to
// dir. Either callback may be nil.
func Walk(ctx context.Context, dir string, onDir func(abs string) error, onNote func(abs, rel string)) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("storage: walk: %w", err)
	}
	v := visitor{dir: onDir}
	if onNote != nil {
		v.note = func(abs, rel string, _ os.FileInfo) { onNote(abs, rel) }
	}
	if err := walk(ctx, dir, "", []string{real}, v); err != nil {
		return fmt.Errorf("storage: walk: %w", err)
	}
	return nil
}

type visitor struct {
	dir  func(abs string) error
	note func(abs, rel string, info os.FileInfo)
}

// walk descends into dir. ancestors holds the resolved paths of dir and every
// directory above it on the current branch.
func walk(ctx context.Context, dir, rel string, ancestors []string, v visitor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("%w: %w", apperr.ErrInvalidVault, err)
		}
		return nil
	}
	if v.dir != nil {
		if err := v.dir(dir); err != nil {
			return err
		}
	}
	for _, e := range entries {
		abs := filepath.Join(dir, e.Name())
		relPath := path.Join(rel, e.Name())

		// Stat follows links, so linked files and directories look like their targets.
		info, err := os.Stat(abs)
		if err != nil {
			continue
		}

		if info.IsDir() {
			target, err := filepath.EvalSymlinks(abs)
			if err != nil || slices.Contains(ancestors, target) {
				continue
			}
			next := append(ancestors[:len(ancestors):len(ancestors)], target)
			if err := walk(ctx, abs, relPath, next, v); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() || !IsNote(e.Name()) {
			continue
		}
		if v.note != nil {
			v.note(abs, relPath, info)
		}
	}
	return nil
}

// IsNote reports whether a file name has the Markdown extension. A name that
// is only ".md" has no stem and does not count.
func IsNote(name string) bool {
	return len(name) > len(noteExt) && strings.HasSuffix(name, noteExt)
}

// Read returns the raw bytes of a vault file.
func (f *FS) Read(rel string) ([]byte, error) {
	abs, err := f.safePath(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", rel, err)
	}
	return data, nil
}
