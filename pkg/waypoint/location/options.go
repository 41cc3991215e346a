package location

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
)

// Options configures a location adapter. The zero value is ready to use.
type Options struct {
	// MaxCorrectionTurns bounds how many scheduler turns FragmentLocation waits
	// for the platform to reflect a corrected fragment. Zero waits forever.
	MaxCorrectionTurns int
	// Logger receives adapter diagnostics. Defaults to the internal waypoint logger.
	Logger *slog.Logger
}

func (o Options) logger(adapter string) (string, *slog.Logger) {
	id := uuid.NewString()
	logger := o.Logger
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	return id, logger.With("adapter", adapter, "location_id", id)
}
