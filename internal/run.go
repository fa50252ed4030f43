package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/vaultgraph/internal/index"
	"github.com/starford/vaultgraph/internal/mcpserver"
	"github.com/starford/vaultgraph/internal/noteservice"
	"github.com/starford/vaultgraph/internal/report"
	"github.com/starford/vaultgraph/internal/scanner"
)

// Version is reported by the MCP server and the CLI.
var Version = "dev"

// RunReport scans the vault once and writes the selected report as JSON.
func RunReport(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	out := app.out
	if out == nil {
		out = os.Stdout
	}

	svc, err := noteservice.New(app.config.Vault.Path, app.logger)
	if err != nil {
		return err
	}
	v, err := report.Build(ctx, svc, app.report)
	if err != nil {
		return err
	}
	return report.WriteJSON(out, v)
}

// Export scans the vault once and writes the snapshot to SQLite.
func Export(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	dbPath := app.dbPath
	if dbPath == "" {
		dbPath = app.config.SQLite.Path
	}

	svc, err := noteservice.New(app.config.Vault.Path, app.logger)
	if err != nil {
		return err
	}
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		return err
	}

	db, err := index.Open(dbPath)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer db.Close()

	notes, broken, err := writeSnapshot(ctx, db, snap)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	app.logger.Info("Snapshot exported",
		slog.String("db", dbPath),
		slog.Int("notes", notes),
		slog.Int("broken_links", broken))
	return nil
}

// writeSnapshot exports snap and reads back the stored note and broken link
// counts.
func writeSnapshot(ctx context.Context, ex index.Exporter, snap *scanner.Snapshot) (notes, broken int, err error) {
	if err := ex.Export(ctx, snap); err != nil {
		return 0, 0, err
	}
	paths, err := ex.NotePaths(ctx)
	if err != nil {
		return 0, 0, err
	}
	bl, err := ex.BrokenLinks(ctx)
	if err != nil {
		return 0, 0, err
	}
	return len(paths), len(bl), nil
}

// ServeMCP serves the vault graph tools over stdio until the client disconnects.
func ServeMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	svc, err := noteservice.New(app.config.Vault.Path, app.logger)
	if err != nil {
		return err
	}
	app.logger.Info("MCP server starting", slog.String("vault_path", svc.Root()))
	if err := mcpserver.New(svc, Version).ServeStdio(); err != nil {
		return fmt.Errorf("mcp: %w", err)
	}
	return nil
}
