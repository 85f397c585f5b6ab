package attendance

import (
	"github.com/goodzwork/hr-backend-go/internal/pkg/validator"
)

type LocationCheckRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *LocationCheckRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

type LocationCheckResponse struct {
	Allowed     bool    `json:"allowed"`
	Distance    float64 `json:"distance"`
	MaxDistance int     `json:"max_distance"`
	Message     string  `json:"message"`
}

// CheckRequest is shared by check-in and check-out: coordinates plus the
// base64 probe capture from the browser camera.
type CheckRequest struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
	FaceImage string   `json:"face_image"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validateCoordinates(r.Latitude, r.Longitude); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if validator.IsEmpty(r.FaceImage) {
		errs = append(errs, validator.ValidationError{
			Field:   "face_image",
			Message: "face_image is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCoordinates(lat, lon float64) error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckInResponse struct {
	Message    string  `json:"message"`
	UserName   string  `json:"user_name"`
	Time       string  `json:"time"`
	Status     Status  `json:"status"`
	Confidence float64 `json:"confidence"`
	LogID      string  `json:"log_id"`
}

type CheckOutResponse struct {
	Message      string  `json:"message"`
	UserName     string  `json:"user_name"`
	Time         string  `json:"time"`
	Status       Status  `json:"status"`
	WorkingHours float64 `json:"working_hours"`
	Confidence   float64 `json:"confidence"`
	LogID        string  `json:"log_id"`
}

type LogsFilter struct {
	StartDate string `json:"start_date"` // "2006-01-02", optional
	EndDate   string `json:"end_date"`   // "2006-01-02", optional
}

func (f *LogsFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LogResponse struct {
	ID             string   `json:"id"`
	Type           Type     `json:"type"`
	Status         Status   `json:"status"`
	Timestamp      string   `json:"timestamp"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Accuracy       *float64 `json:"accuracy,omitempty"`
	FaceConfidence float64  `json:"face_confidence"`
	PhotoURL       string   `json:"photo_url,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

type TodayStatusResponse struct {
	CheckedIn      bool    `json:"checked_in"`
	CheckedOut     bool    `json:"checked_out"`
	CheckInTime    *string `json:"checkin_time,omitempty"`
	CheckOutTime   *string `json:"checkout_time,omitempty"`
	CheckInStatus  *Status `json:"checkin_status,omitempty"`
	CheckOutStatus *Status `json:"checkout_status,omitempty"`
}
