package face

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFaceDetected means the detector found no face in the probe image.
	// Recoverable: the caller should capture again.
	ErrNoFaceDetected = errors.New("no face detected in the image")

	// ErrBlurryImage means the probe failed the sharpness gate.
	// Recoverable: the caller should capture again.
	ErrBlurryImage = errors.New("image is too blurry")

	// ErrFaceNotEnrolled means attendance was attempted before enrollment.
	ErrFaceNotEnrolled = errors.New("face has not been enrolled yet")

	ErrProfileNotFound = errors.New("enrollment profile not found")
)

// InsufficientSamplesError reports how many usable samples an enrollment
// attempt produced; the caller resubmits with better captures.
type InsufficientSamplesError struct {
	Valid int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("not enough valid face samples: got %d, need at least %d", e.Valid, MinSamples)
}

// MismatchError carries the best correlation confidence of a failed
// verification. Recoverable; no lockout policy applies.
type MismatchError struct {
	Confidence float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("face does not match (confidence: %.1f%%)", e.Confidence)
}
