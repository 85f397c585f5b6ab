package attendance

import (
	"errors"
	"fmt"
)

var (
	// Terminal for the day once they occur.
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrNotCheckedIn      = errors.New("you have not checked in today")

	ErrLogNotFound = errors.New("attendance record not found")
)

// GeofenceViolationError is recoverable: the caller moves closer and retries.
type GeofenceViolationError struct {
	DistanceMeters float64
	MaxMeters      int
}

func (e *GeofenceViolationError) Error() string {
	return fmt.Sprintf("you are too far from the office (%.0fm). Maximum allowed distance: %dm",
		e.DistanceMeters, e.MaxMeters)
}
