package response

import (
	"errors"
	"net/http"

	"github.com/goodzwork/hr-backend-go/internal/domain/attendance"
	"github.com/goodzwork/hr-backend-go/internal/domain/face"
	"github.com/goodzwork/hr-backend-go/internal/domain/payroll"
	"github.com/goodzwork/hr-backend-go/internal/domain/settings"
	"github.com/goodzwork/hr-backend-go/internal/domain/user"
	"github.com/goodzwork/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Recoverable pipeline failures carry detail the client shows verbatim.
	var geofenceErr *attendance.GeofenceViolationError
	if errors.As(err, &geofenceErr) {
		BadRequest(w, geofenceErr.Error(), nil)
		return
	}
	var mismatchErr *face.MismatchError
	if errors.As(err, &mismatchErr) {
		BadRequest(w, mismatchErr.Error(), nil)
		return
	}
	var samplesErr *face.InsufficientSamplesError
	if errors.As(err, &samplesErr) {
		BadRequest(w, samplesErr.Error(), nil)
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserNotActive):
		Forbidden(w, "Account is not active")

	// Face domain errors
	case errors.Is(err, face.ErrNoFaceDetected):
		BadRequest(w, "No face detected in the image", nil)
	case errors.Is(err, face.ErrBlurryImage):
		BadRequest(w, "Image is too blurry, please capture again", nil)
	case errors.Is(err, face.ErrFaceNotEnrolled):
		BadRequest(w, "Face has not been enrolled yet", nil)
	case errors.Is(err, face.ErrProfileNotFound):
		NotFound(w, "Enrollment profile not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "You have not checked in today", nil)
	case errors.Is(err, attendance.ErrLogNotFound):
		NotFound(w, "Attendance record not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Company settings not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
