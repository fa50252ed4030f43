// Package testutil provides shared test helpers for building vaults on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestVault creates a temporary vault directory containing files, keyed by
// forward-slash relative path.
func TestVault(t *testing.T, files map[string]string) string {
	t.Helper()
	vaultDir := t.TempDir()
	for rel, content := range files {
		WriteNote(t, vaultDir, rel, content)
	}
	return vaultDir
}

// WriteNote writes content to rel inside vaultDir, creating parent directories.
func WriteNote(t *testing.T, vaultDir, rel, content string) {
	t.Helper()
	p := filepath.Join(vaultDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// SampleVault returns the three-note vault used across package tests:
// A links to B and tags #work, B declares a frontmatter tag, C is isolated.
func SampleVault(t *testing.T) string {
	t.Helper()
	return TestVault(t, map[string]string{
		"A.md": "#work\n[[B]]",
		"B.md": "---\ntags: [home]\n---\ncontent",
		"C.md": "plain text only",
	})
}
