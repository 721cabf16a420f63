package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	"github.com/avdeevsv/GBS-QueueService/pkg/dbmetrics"
	"github.com/avdeevsv/GBS-QueueService/pkg/psqlbuilder"
)

// Repository репозиторий настроек планирования.
// Хранилище key/value с JSON-значениями; отсутствующий ключ означает
// значение по умолчанию, а не ошибку.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает сырое JSON-значение настройки
func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From("schedule_settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrSettingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan value: %v", ErrScanRow, err)
	}

	return value, nil
}

// Upsert записывает значение настройки, перезаписывая существующее
func (r *Repository) Upsert(ctx context.Context, key string, value interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: Upsert - key %s: %v", ErrEncodeValue, key, err)
	}

	query, args, err := psqlbuilder.Insert("schedule_settings").
		Columns("key", "value").
		Values(key, encoded).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBusinessHours читает часы работы; при отсутствии ключа - дефолт
func (r *Repository) GetBusinessHours(ctx context.Context) (domain.BusinessHours, error) {
	var hours domain.BusinessHours
	found, err := r.getTyped(ctx, domain.SettingBusinessHours, &hours)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.DefaultBusinessHours(), nil
	}
	return hours, nil
}

// GetMaxConcurrentSessions читает лимит параллельных сеансов; дефолт при отсутствии
func (r *Repository) GetMaxConcurrentSessions(ctx context.Context) (int, error) {
	var setting domain.MaxConcurrentSetting
	found, err := r.getTyped(ctx, domain.SettingMaxConcurrentSessions, &setting)
	if err != nil {
		return 0, err
	}
	if !found || setting.Count <= 0 {
		return domain.DefaultMaxConcurrentSessions, nil
	}
	return setting.Count, nil
}

// GetProofRequired читает флаг обязательного подтверждения выполнения
func (r *Repository) GetProofRequired(ctx context.Context) (bool, error) {
	var setting domain.ProofRequiredSetting
	found, err := r.getTyped(ctx, domain.SettingProofRequired, &setting)
	if err != nil {
		return false, err
	}
	if !found {
		return domain.DefaultProofRequired, nil
	}
	return setting.Enabled, nil
}

// GetAutoArchiveDays читает срок хранения завершённых позиций
func (r *Repository) GetAutoArchiveDays(ctx context.Context) (int, error) {
	var setting domain.AutoArchiveSetting
	found, err := r.getTyped(ctx, domain.SettingAutoArchiveDays, &setting)
	if err != nil {
		return 0, err
	}
	if !found || setting.Days <= 0 {
		return domain.DefaultAutoArchiveDays, nil
	}
	return setting.Days, nil
}

// GetScheduleSettings читает все настройки планирования одним вызовом
func (r *Repository) GetScheduleSettings(ctx context.Context) (domain.ScheduleSettings, error) {
	hours, err := r.GetBusinessHours(ctx)
	if err != nil {
		return domain.ScheduleSettings{}, err
	}
	maxConcurrent, err := r.GetMaxConcurrentSessions(ctx)
	if err != nil {
		return domain.ScheduleSettings{}, err
	}
	proofRequired, err := r.GetProofRequired(ctx)
	if err != nil {
		return domain.ScheduleSettings{}, err
	}
	archiveDays, err := r.GetAutoArchiveDays(ctx)
	if err != nil {
		return domain.ScheduleSettings{}, err
	}

	return domain.ScheduleSettings{
		BusinessHours:         hours,
		MaxConcurrentSessions: maxConcurrent,
		ProofRequired:         proofRequired,
		AutoArchiveDays:       archiveDays,
	}, nil
}

// getTyped читает и декодирует значение; found=false при отсутствии ключа
func (r *Repository) getTyped(ctx context.Context, key string, dest interface{}) (bool, error) {
	value, err := r.Get(ctx, key)
	if errors.Is(err, ErrSettingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(value, dest); err != nil {
		return false, fmt.Errorf("%w: key %s: %v", ErrDecodeValue, key, err)
	}
	return true, nil
}
