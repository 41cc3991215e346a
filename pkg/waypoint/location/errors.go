package location

import (
	"errors"
	"fmt"
)

// ErrCorrectionStalled is logged when the platform has not reflected a
// corrected fragment within Options.MaxCorrectionTurns turns. The listener
// waiting on the correction is dropped.
var ErrCorrectionStalled = errors.New("fragment correction did not settle")

// PlatformError wraps a failure reported by the platform while navigating.
type PlatformError struct {
	Op  string // Navigation that failed ("push", "replace", "pop")
	Err error  // Error returned by the platform
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("location: %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// IsPlatformError checks if an error came from the platform.
func IsPlatformError(err error) bool {
	var platformErr *PlatformError
	return errors.As(err, &platformErr)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PlatformError{Op: op, Err: err}
}
