package waypoint

import (
	"fmt"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/location"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform"
)

// NewLocation creates the location adapter cfg asks for on window.
//
// In auto mode the session history adapter is used when the window supports
// pushState, the fragment adapter otherwise.
func NewLocation(window platform.Window, cfg Config) (location.Location, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := location.Options{MaxCorrectionTurns: cfg.MaxCorrectionTurns}

	mode := cfg.Mode
	if mode == constants.ModeAuto {
		mode = constants.ModeFragment
		if platform.SupportsPushState(window) {
			mode = constants.ModeSession
		}
	}

	switch mode {
	case constants.ModeFragment:
		GetLogger().Debug("using fragment location")
		return location.NewFragment(window, opts), nil
	case constants.ModeSession:
		GetLogger().Debug("using session location")
		return location.NewSession(window, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
