package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/goodzwork/hr-backend-go/internal/config"
	"github.com/goodzwork/hr-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
	defaults settings.CompanySettings
}

func NewSettingsService(repo settings.SettingsRepository, cfg config.CompanyConfig) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: repo,
		defaults: settings.Default(
			cfg.DefaultLatitude,
			cfg.DefaultLongitude,
			cfg.DefaultRadiusMeters,
		),
	}
}

// Current implements settings.SettingsService. Reads always hit storage so an
// admin update is visible to the next check-in.
func (s *SettingsServiceImpl) Current(ctx context.Context) (settings.CompanySettings, error) {
	current, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return s.defaults, nil
		}
		return settings.CompanySettings{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	return current, nil
}

// GetCompanySettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetCompanySettings(ctx context.Context) (settings.CompanySettingsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return settings.CompanySettingsResponse{}, err
	}
	return toResponse(current), nil
}

// UpdateCompanySettings implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateCompanySettings(ctx context.Context, req settings.UpdateCompanySettingsRequest) (settings.CompanySettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.CompanySettingsResponse{}, err
	}

	current, err := s.Current(ctx)
	if err != nil {
		return settings.CompanySettingsResponse{}, err
	}

	if req.CompanyName != nil {
		current.CompanyName = *req.CompanyName
	}
	if req.Latitude != nil {
		current.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		current.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		current.RadiusMeters = *req.RadiusMeters
	}
	if req.WorkStartTime != nil {
		current.WorkStartTime = *req.WorkStartTime
	}
	if req.WorkEndTime != nil {
		current.WorkEndTime = *req.WorkEndTime
	}
	if req.LateGraceMinutes != nil {
		current.LateGraceMinutes = *req.LateGraceMinutes
	}

	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		if userID, ok := claims["user_id"].(string); ok && userID != "" {
			current.UpdatedBy = &userID
		}
	}

	saved, err := s.SettingsRepository.Upsert(ctx, current)
	if err != nil {
		return settings.CompanySettingsResponse{}, fmt.Errorf("failed to save company settings: %w", err)
	}

	return toResponse(saved), nil
}

// CompanyLocation implements settings.SettingsService.
func (s *SettingsServiceImpl) CompanyLocation(ctx context.Context) (settings.CompanyLocationResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return settings.CompanyLocationResponse{}, err
	}
	return settings.CompanyLocationResponse{
		CompanyName:  current.CompanyName,
		Latitude:     current.Latitude,
		Longitude:    current.Longitude,
		RadiusMeters: current.RadiusMeters,
	}, nil
}

func toResponse(s settings.CompanySettings) settings.CompanySettingsResponse {
	resp := settings.CompanySettingsResponse{
		CompanyName:      s.CompanyName,
		Latitude:         s.Latitude,
		Longitude:        s.Longitude,
		RadiusMeters:     s.RadiusMeters,
		WorkStartTime:    s.WorkStartTime,
		WorkEndTime:      s.WorkEndTime,
		LateGraceMinutes: s.LateGraceMinutes,
		Version:          s.Version,
		UpdatedBy:        s.UpdatedBy,
	}
	if !s.UpdatedAt.IsZero() {
		formatted := s.UpdatedAt.Format("2006-01-02 15:04:05")
		resp.UpdatedAt = &formatted
	}
	return resp
}
