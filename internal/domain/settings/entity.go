package settings

import "time"

// CompanySettings is the single company-wide work schedule and geofence
// configuration. There is exactly one logical row; every update bumps Version
// and is visible to the next request (reads always hit storage).
type CompanySettings struct {
	ID               string
	CompanyName      string
	Latitude         float64
	Longitude        float64
	RadiusMeters     int
	WorkStartTime    string // "HH:MM", 24-hour
	WorkEndTime      string // "HH:MM", 24-hour
	LateGraceMinutes int
	Version          int
	UpdatedAt        time.Time
	UpdatedBy        *string
}

// Defaults applied until an admin saves settings for the first time.
const (
	DefaultCompanyName      = "GoodZWork"
	DefaultWorkStartTime    = "08:30"
	DefaultWorkEndTime      = "17:30"
	DefaultLateGraceMinutes = 15
)

// Default returns the documented fallback settings built around the
// configured geofence center.
func Default(latitude, longitude float64, radiusMeters int) CompanySettings {
	return CompanySettings{
		CompanyName:      DefaultCompanyName,
		Latitude:         latitude,
		Longitude:        longitude,
		RadiusMeters:     radiusMeters,
		WorkStartTime:    DefaultWorkStartTime,
		WorkEndTime:      DefaultWorkEndTime,
		LateGraceMinutes: DefaultLateGraceMinutes,
		Version:          0,
	}
}
