package postgresql

import (
	"context"
	"fmt"

	"github.com/goodzwork/hr-backend-go/internal/domain/settings"
	"github.com/goodzwork/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db *database.DB
}

// Get implements settings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context) (settings.CompanySettings, error) {
	q := GetQuerier(ctx, r.db)

	// Singleton row.
	query := `
		SELECT id, company_name, latitude, longitude, radius_meters,
			   work_start_time, work_end_time, late_grace_minutes,
			   version, updated_by, updated_at
		FROM company_settings
		LIMIT 1
	`

	var s settings.CompanySettings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.CompanyName, &s.Latitude, &s.Longitude, &s.RadiusMeters,
		&s.WorkStartTime, &s.WorkEndTime, &s.LateGraceMinutes,
		&s.Version, &s.UpdatedBy, &s.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.CompanySettings{}, settings.ErrSettingsNotFound
		}
		return settings.CompanySettings{}, fmt.Errorf("failed to get company settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.CompanySettings) (settings.CompanySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_settings (
			id, company_name, latitude, longitude, radius_meters,
			work_start_time, work_end_time, late_grace_minutes,
			version, updated_by, updated_at
		) VALUES (
			'singleton', $1, $2, $3, $4, $5, $6, $7, 1, $8, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius_meters = EXCLUDED.radius_meters,
			work_start_time = EXCLUDED.work_start_time,
			work_end_time = EXCLUDED.work_end_time,
			late_grace_minutes = EXCLUDED.late_grace_minutes,
			version = company_settings.version + 1,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING id, version, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.CompanyName, s.Latitude, s.Longitude, s.RadiusMeters,
		s.WorkStartTime, s.WorkEndTime, s.LateGraceMinutes, s.UpdatedBy,
	).Scan(&s.ID, &s.Version, &s.UpdatedAt)

	if err != nil {
		return settings.CompanySettings{}, fmt.Errorf("failed to upsert company settings: %w", err)
	}

	return s, nil
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}
