package settings

import (
	"context"
	"fmt"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	"github.com/avdeevsv/GBS-QueueService/internal/service/settings/models"
)

// Service сервис настроек планировщика
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get возвращает все настройки. Отсутствующие ключи заменяются
// значениями по умолчанию на уровне хранилища.
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.settingsRepo.GetScheduleSettings(ctx)
	if err != nil {
		s.logger.Error("Get: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// GetBusinessHours возвращает публичную часть настроек для витрины
func (s *Service) GetBusinessHours(ctx context.Context) (*models.BusinessHoursResponse, error) {
	settings, err := s.settingsRepo.GetScheduleSettings(ctx)
	if err != nil {
		s.logger.Error("GetBusinessHours: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: GetBusinessHours - repository error: %v", ErrInternal, err)
	}

	return &models.BusinessHoursResponse{
		BusinessHours:         settings.BusinessHours,
		MaxConcurrentSessions: settings.MaxConcurrentSessions,
	}, nil
}

// Update валидирует и сохраняет переданные ключи настроек.
// Непереданные ключи не затрагиваются.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	if req.IsEmpty() {
		s.logger.Warn("Update: empty settings update")
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.BusinessHours != nil {
		if err := req.BusinessHours.Validate(); err != nil {
			s.logger.Warn("Update: invalid business hours: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidBusinessHours, err)
		}
		if err := s.settingsRepo.Upsert(ctx, domain.SettingBusinessHours, *req.BusinessHours); err != nil {
			s.logger.Error("Update: failed to save business hours: %v", err)
			return nil, fmt.Errorf("%w: Update - save business hours: %v", ErrInternal, err)
		}
	}

	if req.MaxConcurrentSessions != nil {
		count := *req.MaxConcurrentSessions
		if count < domain.MinConcurrentSessions || count > domain.MaxConcurrentSessions {
			s.logger.Warn("Update: max concurrent sessions=%d out of range", count)
			return nil, fmt.Errorf("%w: must be between %d and %d",
				ErrInvalidConcurrency, domain.MinConcurrentSessions, domain.MaxConcurrentSessions)
		}
		value := domain.MaxConcurrentSetting{Count: count}
		if err := s.settingsRepo.Upsert(ctx, domain.SettingMaxConcurrentSessions, value); err != nil {
			s.logger.Error("Update: failed to save max concurrent sessions: %v", err)
			return nil, fmt.Errorf("%w: Update - save max concurrent sessions: %v", ErrInternal, err)
		}
	}

	if req.ProofRequired != nil {
		value := domain.ProofRequiredSetting{Enabled: *req.ProofRequired}
		if err := s.settingsRepo.Upsert(ctx, domain.SettingProofRequired, value); err != nil {
			s.logger.Error("Update: failed to save proof required: %v", err)
			return nil, fmt.Errorf("%w: Update - save proof required: %v", ErrInternal, err)
		}
	}

	if req.AutoArchiveDays != nil {
		days := *req.AutoArchiveDays
		if days < domain.MinAutoArchiveDays || days > domain.MaxAutoArchiveDays {
			s.logger.Warn("Update: auto archive days=%d out of range", days)
			return nil, fmt.Errorf("%w: must be between %d and %d",
				ErrInvalidArchiveDays, domain.MinAutoArchiveDays, domain.MaxAutoArchiveDays)
		}
		value := domain.AutoArchiveSetting{Days: days}
		if err := s.settingsRepo.Upsert(ctx, domain.SettingAutoArchiveDays, value); err != nil {
			s.logger.Error("Update: failed to save auto archive days: %v", err)
			return nil, fmt.Errorf("%w: Update - save auto archive days: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: settings saved")
	return s.Get(ctx)
}
