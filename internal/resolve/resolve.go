// Package resolve maps wiki link targets onto note paths in a vault.
//
// Comparison ignores a trailing ".md" on both sides. A link matches a note
// when the normalised forms are equal or when the note path ends with
// "/"+link, which lets bare names and partial paths resolve the way Obsidian
// resolves them.
package resolve

import (
	"sort"
	"strings"
)

const ext = ".md"

// Normalize strips one trailing ".md" extension.
func Normalize(p string) string {
	return strings.TrimSuffix(p, ext)
}

// Index is an immutable set of note paths used for link resolution.
type Index struct {
	paths []string
	norm  []string
	set   map[string]struct{}
}

// NewIndex builds an Index over paths. Duplicates are collapsed.
func NewIndex(paths []string) *Index {
	set := make(map[string]struct{}, len(paths))
	sorted := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, dup := set[p]; dup {
			continue
		}
		set[p] = struct{}{}
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	norm := make([]string, len(sorted))
	for i, p := range sorted {
		norm[i] = Normalize(p)
	}
	return &Index{paths: sorted, norm: norm, set: set}
}

// Len returns the number of notes in the index.
func (ix *Index) Len() int { return len(ix.paths) }

// Paths returns the indexed note paths in lexicographic order.
func (ix *Index) Paths() []string {
	out := make([]string, len(ix.paths))
	copy(out, ix.paths)
	return out
}

// Contains reports whether path is a note in the index.
func (ix *Index) Contains(path string) bool {
	_, ok := ix.set[path]
	return ok
}

// Resolve returns the note path that link refers to. Candidates are tried in
// lexicographic order and the first match wins. ok is false when no note matches.
func (ix *Index) Resolve(link string) (path string, ok bool) {
	want := Normalize(link)
	suffix := "/" + want
	for i, n := range ix.norm {
		if n == want || strings.HasSuffix(n, suffix) {
			return ix.paths[i], true
		}
	}
	return "", false
}

// Matches reports whether two note references point at the same note under
// symmetric suffix matching: equal after normalisation, or either one ends
// with "/" followed by the other.
func Matches(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na == nb ||
		strings.HasSuffix(na, "/"+nb) ||
		strings.HasSuffix(nb, "/"+na)
}
