package settings

import "context"

// SettingsRepository stores the single company settings row.
type SettingsRepository interface {
	// Get returns the current settings, or ErrSettingsNotFound when no admin
	// has saved any yet.
	Get(ctx context.Context) (CompanySettings, error)

	// Upsert replaces the settings row, bumping its version.
	Upsert(ctx context.Context, s CompanySettings) (CompanySettings, error)
}
