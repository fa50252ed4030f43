package internal

import (
	"io"
	"log/slog"

	"github.com/starford/vaultgraph/internal/report"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	logger *slog.Logger
	out    io.Writer
	report report.Request
	dbPath string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithVault overrides the configured vault path. An empty path is ignored.
func WithVault(path string) Option {
	return func(a *application) {
		if path == "" || a.config == nil {
			return
		}
		a.config.Vault.Path = path
	}
}

// WithLogger sets the logger. Without it a logger is built from the
// configured level.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithOutput sets where reports are written.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithReport selects the report produced by RunReport.
func WithReport(r report.Request) Option {
	return func(a *application) {
		a.report = r
	}
}

// WithDatabase overrides the SQLite file written by Export.
func WithDatabase(path string) Option {
	return func(a *application) {
		a.dbPath = path
	}
}

// newApplication applies opts in order. WithConfig must precede WithVault.
func newApplication(opts ...Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, errConfigRequired
	}
	if app.logger == nil {
		app.logger = NewLogger(nil, app.config.App.LogLevel)
	}
	return app, nil
}
