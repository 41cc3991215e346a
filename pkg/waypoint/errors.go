package waypoint

import (
	"errors"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/location"
)

// Sentinel errors for configuration problems.
var (
	// ErrUnknownMode indicates a Config.Mode other than auto, fragment or session.
	ErrUnknownMode = errors.New("waypoint: unknown location mode")
)

// IsPlatformError checks if an error was reported by the platform while navigating.
func IsPlatformError(err error) bool {
	return location.IsPlatformError(err)
}
