// Package constants defines shared constants and configuration values
// used throughout waypoint.
package constants

import "os"

// Development is the environment variable value for development mode.
const Development = "DEV"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// URL syntax the adapters rely on.
const (
	PathSeparator  = "/" // Required first character of a fragment path
	FragmentMarker = "#" // Separates the fragment from the rest of the URL
)

// Adapter selection modes.
const (
	ModeAuto     = "auto"     // Session history when available, fragment otherwise
	ModeFragment = "fragment" // Always FragmentLocation
	ModeSession  = "session"  // Always SessionLocation
)

// Environment variables read by waypoint.LoadConfig. They match the env tags on waypoint.Config.
const (
	ModeEnvVar               = "WAYPOINT_MODE"
	MaxCorrectionTurnsEnvVar = "WAYPOINT_MAX_CORRECTION_TURNS"
	LogLevelEnvVar           = "WAYPOINT_LOG_LEVEL"
	LogPathEnvVar            = "WAYPOINT_LOG_PATH"
)

// Defaults applied by waypoint.DefaultConfig.
const (
	DefaultMode               = ModeAuto
	DefaultMaxCorrectionTurns = 1000
	DefaultLogLevel           = "info"
)
