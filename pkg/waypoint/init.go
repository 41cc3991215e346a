// Package waypoint provides navigation-change tracking for Go applications
// running in a browser tab.
//
// The package selects and configures a location adapter for the tab and sets
// up logging. The adapters themselves live in the location package, the tab
// abstraction in platform.
package waypoint

import (
	"log/slog"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
)

// Options configures waypoint initialization.
type Options struct {
	LogPath  string // Full path for log file including filename (creates parent directories)
	LogLevel string // Application log level name ("debug", "info", "warn", "error")
	Debug    bool   // Also lower the internal waypoint logger to debug
}

// Init configures logging. Call it before creating any location adapter.
// If ENVIRONMENT=DEV is set, internal logging is switched to debug as well.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if options.Debug || constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}
}

// Close releases the log file, if one was opened.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
