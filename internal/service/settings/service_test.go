package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	"github.com/avdeevsv/GBS-QueueService/internal/service/settings/models"
	"github.com/avdeevsv/GBS-QueueService/pkg/ptr"
	"github.com/avdeevsv/GBS-QueueService/pkg/types"
)

type fakeSettingsRepo struct {
	settings domain.ScheduleSettings
	upserts  map[string]interface{}
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: domain.DefaultScheduleSettings(),
		upserts:  make(map[string]interface{}),
	}
}

func (f *fakeSettingsRepo) GetScheduleSettings(_ context.Context) (domain.ScheduleSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, key string, value interface{}) error {
	f.upserts[key] = value
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetReturnsDefaultsFromEmptyStore(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultMaxConcurrentSessions, resp.MaxConcurrentSessions)
	assert.Equal(t, domain.DefaultProofRequired, resp.ProofRequired)
	assert.Equal(t, domain.DefaultAutoArchiveDays, resp.AutoArchiveDays)
	assert.Len(t, resp.BusinessHours, 7)
}

func TestUpdateWritesOnlyProvidedKeys(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		MaxConcurrentSessions: ptr.Ptr(5),
	})
	require.NoError(t, err)

	require.Len(t, repo.upserts, 1)
	assert.Equal(t, domain.MaxConcurrentSetting{Count: 5}, repo.upserts[domain.SettingMaxConcurrentSessions])
}

func TestUpdateRejectsConcurrencyOutOfRange(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, nopLogger{})

	for _, count := range []int{0, -1, 11} {
		_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
			MaxConcurrentSessions: ptr.Ptr(count),
		})
		assert.ErrorIs(t, err, ErrInvalidConcurrency, "count=%d", count)
	}
	assert.Empty(t, repo.upserts)
}

func TestUpdateRejectsArchiveDaysOutOfRange(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, nopLogger{})

	for _, days := range []int{0, 366} {
		_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
			AutoArchiveDays: ptr.Ptr(days),
		})
		assert.ErrorIs(t, err, ErrInvalidArchiveDays, "days=%d", days)
	}
	assert.Empty(t, repo.upserts)
}

func TestUpdateRejectsInvertedBusinessHours(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, nopLogger{})

	hours := domain.DefaultBusinessHours()
	hours[domain.Monday] = domain.DayHours{
		Enabled: true,
		Start:   types.TimeString("22:00"),
		End:     types.TimeString("14:00"),
	}

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		BusinessHours: &hours,
	})
	assert.ErrorIs(t, err, ErrInvalidBusinessHours)
	assert.Empty(t, repo.upserts)
}

func TestUpdateAllowsDisabledDayWithInvertedWindow(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, nopLogger{})

	// Выключенный день не валидируется
	hours := domain.DefaultBusinessHours()
	hours[domain.Sunday] = domain.DayHours{
		Enabled: false,
		Start:   types.TimeString("23:00"),
		End:     types.TimeString("01:00"),
	}

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		BusinessHours: &hours,
	})
	require.NoError(t, err)
	assert.Contains(t, repo.upserts, domain.SettingBusinessHours)
}

func TestUpdateRejectsEmptyRequest(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
