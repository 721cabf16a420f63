package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	"github.com/avdeevsv/GBS-QueueService/pkg/dbmetrics"
	"github.com/avdeevsv/GBS-QueueService/pkg/psqlbuilder"
)

var sessionColumns = []string{
	"id",
	"queue_item_id",
	"session_number",
	"status",
	"appointment_time",
	"room_code",
	"proof_added",
	"missed",
	"created_at",
	"updated_at",
}

// UpdateFields - опциональные поля сеанса. nil-поле означает "не трогать".
type UpdateFields struct {
	Status          *domain.SessionStatus
	AppointmentTime *time.Time
	RoomCode        *string
	ProofAdded      *bool
	Missed          *bool
}

// Repository репозиторий для работы с сеансами многосессионных заказов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сеансов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает сеанс со следующим порядковым номером внутри позиции очереди.
// Номер монотонно растёт и не переиспользуется после удаления сеансов.
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = domain.SessionStatusPending
	}

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"id",
			"queue_item_id",
			"session_number",
			"status",
			"appointment_time",
			"room_code",
			"proof_added",
			"missed",
		).
		Values(
			s.ID,
			s.QueueItemID,
			squirrel.Expr(
				"(SELECT COALESCE(MAX(session_number), 0) + 1 FROM sessions WHERE queue_item_id = ?)",
				s.QueueItemID,
			),
			s.Status,
			s.AppointmentTime,
			s.RoomCode,
			s.ProofAdded,
			s.Missed,
		).
		Suffix("RETURNING session_number, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.SessionNumber,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сеанс по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListByQueueItem получает сеансы позиции очереди в порядке номеров
func (r *Repository) ListByQueueItem(ctx context.Context, queueItemID string) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"queue_item_id": queueItemID}).
		OrderBy("session_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByQueueItem - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByQueueItem - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByQueueItem - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByQueueItem - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}

// Update обновляет поля сеанса
func (r *Repository) Update(ctx context.Context, id string, fields UpdateFields) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("sessions").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if fields.Status != nil {
		updateBuilder = updateBuilder.Set("status", *fields.Status)
	}
	if fields.AppointmentTime != nil {
		updateBuilder = updateBuilder.Set("appointment_time", *fields.AppointmentTime)
	}
	if fields.RoomCode != nil {
		updateBuilder = updateBuilder.Set("room_code", *fields.RoomCode)
	}
	if fields.ProofAdded != nil {
		updateBuilder = updateBuilder.Set("proof_added", *fields.ProofAdded)
	}
	if fields.Missed != nil {
		updateBuilder = updateBuilder.Set("missed", *fields.Missed)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Delete удаляет сеанс
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var appointmentTime sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.QueueItemID,
		&s.SessionNumber,
		&s.Status,
		&appointmentTime,
		&s.RoomCode,
		&s.ProofAdded,
		&s.Missed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if appointmentTime.Valid {
		s.AppointmentTime = &appointmentTime.Time
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
