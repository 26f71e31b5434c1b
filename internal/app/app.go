package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/prodgraph/internal/scheduler"
	"github.com/specialistvlad/prodgraph/internal/source"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger *slog.Logger
	config *Config
	loader source.Loader
	engine scheduler.Engine
}

// NewApp is the constructor for the main application. The plan payload is
// written to outW and logs to logW. A nil engine selects the export engine in
// the configured output format.
func NewApp(outW, logW io.Writer, cfg *Config, loader source.Loader, engine scheduler.Engine) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if engine == nil {
		engine = scheduler.NewExport(outW, scheduler.Format(cfg.OutputFormat))
	}

	return &App{
		logger: logger,
		config: cfg,
		loader: loader,
		engine: engine,
	}
}

// Close releases the loader's resources when it holds any.
func (a *App) Close() error {
	if c, ok := a.loader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
