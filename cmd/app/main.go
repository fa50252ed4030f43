package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/vaultgraph/internal"
	"github.com/starford/vaultgraph/internal/report"
	pkgconfig "github.com/starford/vaultgraph/pkg/config"
)

// loadConfig reads the config file (a missing file keeps the defaults) and
// applies command-line overrides shared by every command.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cmd.IsSet("log-level") {
		if err := cfg.App.LogLevel.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	return cfg, nil
}

func baseOptions(cmd *cli.Command) ([]internal.Option, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := internal.NewLogger(os.Stderr, cfg.App.LogLevel)
	slog.SetDefault(logger)
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVault(cmd.Args().First()),
		internal.WithLogger(logger),
	}, nil
}

// selectedReports collects the report flags given on the command line.
func selectedReports(cmd *cli.Command) []report.Request {
	var out []report.Request
	for _, kind := range []report.Kind{report.Tags, report.Stats, report.Files, report.Links, report.Orphans} {
		if cmd.Bool(string(kind)) {
			out = append(out, report.Request{Kind: kind})
		}
	}
	if cmd.IsSet("tag") {
		out = append(out, report.Request{Kind: report.Tag, Arg: cmd.String("tag")})
	}
	if cmd.IsSet("backlinks") {
		out = append(out, report.Request{Kind: report.Backlinks, Arg: cmd.String("backlinks")})
	}
	return out
}

func runReport(ctx context.Context, cmd *cli.Command) error {
	req, err := report.Select(selectedReports(cmd))
	if err != nil {
		return err
	}
	opts, err := baseOptions(cmd)
	if err != nil {
		return err
	}
	opts = append(opts, internal.WithReport(req))
	return internal.RunReport(ctx, opts...)
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	opts, err := baseOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.Serve(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	opts, err := baseOptions(cmd)
	if err != nil {
		return err
	}
	return internal.ServeMCP(ctx, opts...)
}

func runExport(ctx context.Context, cmd *cli.Command) error {
	opts, err := baseOptions(cmd)
	if err != nil {
		return err
	}
	opts = append(opts, internal.WithDatabase(cmd.String("db")))
	return internal.Export(ctx, opts...)
}

func main() {
	cmd := &cli.Command{
		Name:      "vaultgraph",
		Usage:     "Scan an Obsidian-style Markdown vault and report tags, wiki links, orphans and backlinks",
		Version:   internal.Version,
		ArgsUsage: "[VAULT_PATH]",
		Action:    runReport,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error); overrides app.log_level",
				Sources: cli.EnvVars("APP_LOG_LEVEL"),
			},
			&cli.BoolFlag{Name: "stats", Usage: "Print vault statistics (default)"},
			&cli.BoolFlag{Name: "tags", Usage: "Print every tag with its occurrence count"},
			&cli.BoolFlag{Name: "files", Usage: "Print per-note metadata"},
			&cli.BoolFlag{Name: "links", Usage: "Print every wiki link and the broken link count"},
			&cli.BoolFlag{Name: "orphans", Usage: "Print notes with no incoming or outgoing links"},
			&cli.StringFlag{Name: "tag", Usage: "Print notes declaring `TAG`"},
			&cli.StringFlag{Name: "backlinks", Usage: "Print notes linking to `FILE`"},
		},
		Commands: []*cli.Command{
			{
				Name:      "serve",
				Usage:     "Serve the HTTP API with a live change feed",
				ArgsUsage: "[VAULT_PATH]",
				Action:    runServe,
			},
			{
				Name:      "mcp",
				Usage:     "Serve vault graph tools over MCP stdio",
				ArgsUsage: "[VAULT_PATH]",
				Action:    runMCP,
			},
			{
				Name:      "export",
				Usage:     "Write a full vault snapshot to a SQLite database",
				ArgsUsage: "[VAULT_PATH]",
				Action:    runExport,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "SQLite database `FILE`; overrides sqlite.path",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
