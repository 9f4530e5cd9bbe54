// Package cli implements the rotaplan command line: solve, precheck and
// export over request JSON files.
package cli

import (
	"log/slog"

	"github.com/rotaplan/rotaplan/internal/roster/application/services"
)

// App holds the CLI application dependencies.
type App struct {
	Engine *services.Engine
}

var (
	app    *App
	logger *slog.Logger
)

// SetApp wires the application dependencies into the CLI commands.
func SetApp(a *App) {
	app = a
}

// GetApp returns the wired application.
func GetApp() *App {
	return app
}

// SetLogger sets the logger used by CLI commands.
func SetLogger(l *slog.Logger) {
	logger = l
}

// GetLogger returns the CLI logger.
func GetLogger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
