package settings

import (
	"github.com/goodzwork/hr-backend-go/internal/pkg/validator"
)

type UpdateCompanySettingsRequest struct {
	CompanyName      *string  `json:"company_name"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	RadiusMeters     *int     `json:"radius_meters"`
	WorkStartTime    *string  `json:"work_start_time"`
	WorkEndTime      *string  `json:"work_end_time"`
	LateGraceMinutes *int     `json:"late_grace_minutes"`
}

func (r *UpdateCompanySettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be positive",
		})
	}

	if r.WorkStartTime != nil {
		if _, ok := validator.IsValidClock(*r.WorkStartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "work_start_time",
				Message: "work_start_time must be in HH:MM format",
			})
		}
	}

	if r.WorkEndTime != nil {
		if _, ok := validator.IsValidClock(*r.WorkEndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "work_end_time",
				Message: "work_end_time must be in HH:MM format",
			})
		}
	}

	if r.LateGraceMinutes != nil && *r.LateGraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_grace_minutes",
			Message: "late_grace_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CompanySettingsResponse struct {
	CompanyName      string  `json:"company_name"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	RadiusMeters     int     `json:"radius_meters"`
	WorkStartTime    string  `json:"work_start_time"`
	WorkEndTime      string  `json:"work_end_time"`
	LateGraceMinutes int     `json:"late_grace_minutes"`
	Version          int     `json:"version"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
	UpdatedBy        *string `json:"updated_by,omitempty"`
}

// CompanyLocationResponse is the public geofence descriptor used by clients
// before the camera is opened.
type CompanyLocationResponse struct {
	CompanyName  string  `json:"company_name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
}
