package settings

import (
	"context"
	"testing"
	"time"

	"github.com/goodzwork/hr-backend-go/internal/config"
	"github.com/goodzwork/hr-backend-go/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	stored *settings.CompanySettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (settings.CompanySettings, error) {
	if r.stored == nil {
		return settings.CompanySettings{}, settings.ErrSettingsNotFound
	}
	return *r.stored, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, s settings.CompanySettings) (settings.CompanySettings, error) {
	if r.stored == nil {
		s.Version = 1
	} else {
		s.Version = r.stored.Version + 1
	}
	s.UpdatedAt = time.Now()
	r.stored = &s
	return s, nil
}

func testCompanyConfig() config.CompanyConfig {
	return config.CompanyConfig{
		Timezone:            "Asia/Ho_Chi_Minh",
		DefaultLatitude:     10.7769,
		DefaultLongitude:    106.7009,
		DefaultRadiusMeters: 50,
	}
}

func TestCurrent_FallsBackToDefaults(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeSettingsRepo{}, testCompanyConfig())

	current, err := svc.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, settings.DefaultCompanyName, current.CompanyName)
	assert.Equal(t, "08:30", current.WorkStartTime)
	assert.Equal(t, "17:30", current.WorkEndTime)
	assert.Equal(t, 15, current.LateGraceMinutes)
	assert.Equal(t, 50, current.RadiusMeters)
	assert.Equal(t, 0, current.Version)
}

func TestUpdateCompanySettings_PartialUpdate(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, testCompanyConfig())

	grace := 10
	resp, err := svc.UpdateCompanySettings(context.Background(), settings.UpdateCompanySettingsRequest{
		LateGraceMinutes: &grace,
	})

	require.NoError(t, err)
	assert.Equal(t, 10, resp.LateGraceMinutes)
	// Untouched fields keep their defaults.
	assert.Equal(t, "08:30", resp.WorkStartTime)
	assert.Equal(t, 1, resp.Version)
}

func TestUpdateCompanySettings_VisibleToNextRead(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, testCompanyConfig())

	radius := 120
	_, err := svc.UpdateCompanySettings(context.Background(), settings.UpdateCompanySettingsRequest{
		RadiusMeters: &radius,
	})
	require.NoError(t, err)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, current.RadiusMeters)
}

func TestUpdateCompanySettings_EachUpdateBumpsVersion(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, testCompanyConfig())

	name := "GoodZWork HQ"
	first, err := svc.UpdateCompanySettings(context.Background(), settings.UpdateCompanySettingsRequest{CompanyName: &name})
	require.NoError(t, err)

	second, err := svc.UpdateCompanySettings(context.Background(), settings.UpdateCompanySettingsRequest{CompanyName: &name})
	require.NoError(t, err)

	assert.Equal(t, first.Version+1, second.Version)
}

func TestUpdateCompanySettings_Invalid(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeSettingsRepo{}, testCompanyConfig())

	badLat := 95.0
	_, err := svc.UpdateCompanySettings(context.Background(), settings.UpdateCompanySettingsRequest{Latitude: &badLat})
	assert.Error(t, err)

	badClock := "25:00"
	_, err = svc.UpdateCompanySettings(context.Background(), settings.UpdateCompanySettingsRequest{WorkStartTime: &badClock})
	assert.Error(t, err)
}

func TestCompanyLocation(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeSettingsRepo{}, testCompanyConfig())

	loc, err := svc.CompanyLocation(context.Background())

	require.NoError(t, err)
	assert.Equal(t, settings.DefaultCompanyName, loc.CompanyName)
	assert.InDelta(t, 10.7769, loc.Latitude, 0.0001)
	assert.Equal(t, 50, loc.RadiusMeters)
}
