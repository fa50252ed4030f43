// Package graph derives reports from a scanned vault: tag frequencies, the
// link table, orphans, tag search, backlinks, and summary statistics.
//
// Every function is pure; results depend only on its arguments and are
// sorted so that repeated runs over the same vault produce identical output.
package graph

import (
	"sort"

	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/resolve"
	"github.com/starford/vaultgraph/internal/scanner"
)

// TagCounts tallies every tag occurrence across notes, sorted by tag name.
// A tag declared twice in one note counts twice.
func TagCounts(notes []models.Note) []models.TagCount {
	counts := make(map[string]int)
	for _, n := range notes {
		for _, tag := range n.Tags {
			counts[tag]++
		}
	}
	out := make([]models.TagCount, 0, len(counts))
	for tag, c := range counts {
		out = append(out, models.TagCount{Tag: tag, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Links returns the full link table of a snapshot, duplicates and broken
// links included.
func Links(snap *scanner.Snapshot) []models.Link {
	return snap.Links()
}

// BrokenCount returns the number of links whose target does not exist.
func BrokenCount(links []models.Link) int {
	n := 0
	for _, l := range links {
		if !l.Exists {
			n++
		}
	}
	return n
}

// Orphans returns the notes with no outgoing links and no resolved incoming
// links. A dangling link neither rescues its source nor counts as incoming
// for anything.
func Orphans(paths []string, links []models.Link) []string {
	linked := make(map[string]struct{}, len(links))
	for _, l := range links {
		linked[l.Source] = struct{}{}
		if l.Exists {
			linked[l.Target] = struct{}{}
		}
	}
	out := []string{}
	for _, p := range paths {
		if _, ok := linked[p]; !ok {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// NotesWithTag returns the notes declaring tag exactly (case-sensitive), sorted.
func NotesWithTag(notes []models.Note, tag string) []string {
	out := []string{}
	for _, n := range notes {
		for _, t := range n.Tags {
			if t == tag {
				out = append(out, n.Path)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// Backlinks returns the distinct sources of links pointing at target, sorted.
// target may be a full path, a partial path, or a bare name, with or without
// extension; it is compared against each link's displayed target with
// resolve.Matches.
func Backlinks(links []models.Link, target string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, l := range links {
		if !resolve.Matches(l.Target, target) {
			continue
		}
		if _, dup := seen[l.Source]; dup {
			continue
		}
		seen[l.Source] = struct{}{}
		out = append(out, l.Source)
	}
	sort.Strings(out)
	return out
}

// FileInfos summarises each note for file listings, in note order.
func FileInfos(notes []models.Note) []models.FileInfo {
	out := make([]models.FileInfo, 0, len(notes))
	for _, n := range notes {
		out = append(out, models.FileInfo{
			Path:      n.Path,
			WordCount: n.WordCount,
			LinkCount: len(n.Links),
			TagCount:  len(n.Tags),
			Modified:  n.Modified(),
		})
	}
	return out
}

// ComputeStats derives summary statistics for a snapshot.
func ComputeStats(snap *scanner.Snapshot) models.Stats {
	links := snap.Links()
	return models.Stats{
		TotalNotes:    snap.Index().Len(),
		TotalTags:     len(TagCounts(snap.Notes())),
		TotalLinks:    len(links),
		BrokenLinks:   BrokenCount(links),
		OrphanedNotes: len(Orphans(snap.Paths(), links)),
	}
}
