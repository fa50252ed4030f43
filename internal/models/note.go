// Package models defines the domain types for vaultgraph.
package models

import "time"

// UnknownModified is reported when the platform cannot provide a modification time.
const UnknownModified = "unknown"

// Note represents a scanned Markdown file in the vault.
type Note struct {
	Path       string    `json:"path"`
	WordCount  int       `json:"word_count"`
	Tags       []string  `json:"tags"`
	Links      []string  `json:"links"`
	Checksum   string    `json:"checksum"`
	ModTime    time.Time `json:"modified"`
	HasModTime bool      `json:"-"`
}

// Modified formats the modification time, or UnknownModified when unavailable.
func (n Note) Modified() string {
	if !n.HasModTime {
		return UnknownModified
	}
	return n.ModTime.UTC().Format(time.RFC3339Nano)
}

// NoteMetadata is the lightweight listing entry produced by a vault walk.
type NoteMetadata struct {
	Path       string    `json:"path"`
	ModTime    time.Time `json:"updated_at"`
	HasModTime bool      `json:"-"`
}

// Link represents a directed edge between a note and a link target.
// Target holds the resolved note path when Exists is true, otherwise the raw link text.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Exists bool   `json:"exists"`
}
