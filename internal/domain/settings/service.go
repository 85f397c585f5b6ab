package settings

import "context"

// SettingsService exposes the work schedule configuration to handlers and to
// the attendance pipeline. Current always resolves against storage so an
// administrative update is visible to the very next request.
type SettingsService interface {
	// Current returns the active settings, falling back to defaults when unset.
	Current(ctx context.Context) (CompanySettings, error)

	// GetCompanySettings returns settings for the admin UI.
	GetCompanySettings(ctx context.Context) (CompanySettingsResponse, error)

	// UpdateCompanySettings applies a partial update (admin only).
	UpdateCompanySettings(ctx context.Context, req UpdateCompanySettingsRequest) (CompanySettingsResponse, error)

	// CompanyLocation returns the public geofence descriptor.
	CompanyLocation(ctx context.Context) (CompanyLocationResponse, error)
}
