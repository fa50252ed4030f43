package index

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/starford/vaultgraph/internal/scanner"
)

// Export replaces the database contents with snap in a single transaction.
// Readers never observe a half-written snapshot.
func (db *DB) Export(ctx context.Context, snap *scanner.Snapshot) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	for _, stmt := range []string{`DELETE FROM links`, `DELETE FROM tags`, `DELETE FROM notes`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("index: clear: %w", err)
		}
	}

	noteStmt, err := tx.PrepareContext(ctx, `INSERT INTO notes (path, word_count, checksum, modified) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare note insert: %w", err)
	}
	defer noteStmt.Close()
	tagStmt, err := tx.PrepareContext(ctx, `INSERT INTO tags (note, position, tag) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare tag insert: %w", err)
	}
	defer tagStmt.Close()
	linkStmt, err := tx.PrepareContext(ctx, `INSERT INTO links (source, position, target, resolved) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare link insert: %w", err)
	}
	defer linkStmt.Close()

	for _, n := range snap.Notes() {
		if _, err := noteStmt.ExecContext(ctx, n.Path, n.WordCount, n.Checksum, n.Modified()); err != nil {
			return fmt.Errorf("index: insert note %s: %w", n.Path, err)
		}
		for i, tag := range n.Tags {
			if _, err := tagStmt.ExecContext(ctx, n.Path, i, tag); err != nil {
				return fmt.Errorf("index: insert tag: %w", err)
			}
		}
	}

	position := make(map[string]int)
	for _, l := range snap.Links() {
		i := position[l.Source]
		position[l.Source]++
		if _, err := linkStmt.ExecContext(ctx, l.Source, i, l.Target, l.Exists); err != nil {
			return fmt.Errorf("index: insert link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("index: commit: %w", err)
	}
	return nil
}

// NotePaths returns every exported note path in order.
func (db *DB) NotePaths(ctx context.Context) ([]string, error) {
	return db.strings(ctx, `SELECT path FROM notes ORDER BY path`)
}

// BrokenLink is an unresolved link as stored in the export.
type BrokenLink struct {
	Source string
	Target string
}

// BrokenLinks returns every unresolved link ordered by source and position.
func (db *DB) BrokenLinks(ctx context.Context) ([]BrokenLink, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT source, target FROM links WHERE resolved = 0 ORDER BY source, position`)
	if err != nil {
		return nil, fmt.Errorf("index: broken links: %w", err)
	}
	defer rows.Close()

	var out []BrokenLink
	for rows.Next() {
		var bl BrokenLink
		if err := rows.Scan(&bl.Source, &bl.Target); err != nil {
			return nil, err
		}
		out = append(out, bl)
	}
	return out, rows.Err()
}

func (db *DB) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: query: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
