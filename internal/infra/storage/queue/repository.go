package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	"github.com/avdeevsv/GBS-QueueService/pkg/dbmetrics"
	"github.com/avdeevsv/GBS-QueueService/pkg/psqlbuilder"
)

var queueItemColumns = []string{
	"id",
	"order_id",
	"customer_id",
	"customer_name",
	"package_id",
	"package_name",
	"status",
	"availability",
	"appointment_time",
	"room_code",
	"notes",
	"proof_added",
	"missed_count",
	"position",
	"created_at",
	"updated_at",
}

// UpdateFields - опциональные поля, меняемые вместе со статусом.
// nil-поле означает "не трогать".
type UpdateFields struct {
	AppointmentTime *time.Time
	RoomCode        *string
	AppendNote      *string
	ProofAdded      *bool
	IncrementMissed bool
}

// Repository репозиторий для работы с очередью выполнения заказов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория очереди
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает позицию очереди. Если ID не задан, генерирует uuid.
// Позиция в списке назначается в конец (MAX(position)+1).
func (r *Repository) Create(ctx context.Context, item *domain.QueueItem) (*domain.QueueItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	availabilityJSON, err := json.Marshal(item.Availability.Normalize())
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrMarshalAvailability, err)
	}

	query, args, err := psqlbuilder.Insert("queue_items").
		Columns(
			"id",
			"order_id",
			"customer_id",
			"customer_name",
			"package_id",
			"package_name",
			"status",
			"availability",
			"appointment_time",
			"room_code",
			"notes",
			"proof_added",
			"missed_count",
			"position",
		).
		Values(
			item.ID,
			item.OrderID,
			item.CustomerID,
			item.CustomerName,
			item.PackageID,
			item.PackageName,
			item.Status,
			availabilityJSON,
			item.AppointmentTime,
			item.RoomCode,
			item.Notes,
			item.ProofAdded,
			item.MissedCount,
			squirrel.Expr("(SELECT COALESCE(MAX(position), 0) + 1 FROM queue_items)"),
		).
		Suffix("RETURNING position, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&item.Position,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return item, nil
}

// GetByID получает позицию очереди по ID.
// Внутри транзакции добавляет FOR UPDATE - блокировка строки нужна
// на пути подтверждения записи, чтобы исключить параллельное изменение статуса.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.QueueItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(queueItemColumns...).
		From("queue_items").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanQueueItem(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrQueueItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan queue item: %v", ErrScanRow, err)
	}

	return item, nil
}

// GetByOrderID получает позицию очереди по ID заказа.
// Заказ порождает не более одной позиции.
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.QueueItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(queueItemColumns...).
		From("queue_items").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanQueueItem(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrQueueItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - scan queue item: %v", ErrScanRow, err)
	}

	return item, nil
}

// List получает очередь в порядке позиций
// Опционально фильтрует по статусу
func (r *Repository) List(ctx context.Context, filter domain.QueueFilter) ([]*domain.QueueItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(queueItemColumns...).
		From("queue_items").
		OrderBy("position ASC", "created_at ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanQueueItems(rows)
}

// UpdateStatus обновляет статус позиции и связанные опциональные поля.
// Заметки только дописываются (notes append-only), существующий текст
// никогда не перезаписывается.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.QueueStatus, fields UpdateFields) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("queue_items").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if fields.AppointmentTime != nil {
		updateBuilder = updateBuilder.Set("appointment_time", *fields.AppointmentTime)
	}
	if fields.RoomCode != nil {
		updateBuilder = updateBuilder.Set("room_code", *fields.RoomCode)
	}
	if fields.AppendNote != nil {
		updateBuilder = updateBuilder.Set(
			"notes",
			squirrel.Expr("TRIM(COALESCE(notes || E'\\n', '') || ?)", *fields.AppendNote),
		)
	}
	if fields.ProofAdded != nil {
		updateBuilder = updateBuilder.Set("proof_added", *fields.ProofAdded)
	}
	if fields.IncrementMissed {
		updateBuilder = updateBuilder.Set("missed_count", squirrel.Expr("missed_count + 1"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrQueueItemNotFound
	}

	return nil
}

// SetAppointment записывает время встречи и переводит позицию в scheduled
func (r *Repository) SetAppointment(ctx context.Context, id string, appointmentTime time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("queue_items").
		Set("appointment_time", appointmentTime).
		Set("status", domain.QueueStatusScheduled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAppointment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAppointment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAppointment - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrQueueItemNotFound
	}

	return nil
}

// ClearAppointment снимает назначенное время встречи
func (r *Repository) ClearAppointment(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("queue_items").
		Set("appointment_time", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearAppointment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ClearAppointment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ClearAppointment - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrQueueItemNotFound
	}

	return nil
}

// UpdateAvailability обновляет доступность клиента (уже нормализованную)
func (r *Repository) UpdateAvailability(ctx context.Context, id string, availability domain.Availability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	availabilityJSON, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability: %v", ErrMarshalAvailability, err)
	}

	query, args, err := psqlbuilder.Update("queue_items").
		Set("availability", availabilityJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrQueueItemNotFound
	}

	return nil
}

// GetAppointmentsInWindow собирает все занятые интервалы со стартом в [from, to):
// одиночные встречи незавершённых позиций очереди и сеансы в статусах
// scheduled/in_progress. Длительность берется из пакета (estimated_duration).
//
// Встречи, начавшиеся раньше from, сюда не попадают - вызывающая сторона
// расширяет окно влево на максимальную длительность сеанса.
//
// Внутри транзакции блокирует строки очереди (FOR UPDATE) - это основа
// проверки вместимости на пути подтверждения записи.
func (r *Repository) GetAppointmentsInWindow(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	inTx := dbmetrics.IsInTransaction(ctx)

	appointments := make([]domain.Appointment, 0)

	// Одиночные встречи на позициях очереди
	queueBuilder := psqlbuilder.Select(
		"qi.id",
		"qi.id AS queue_item_id",
		"'queue' AS source",
		"COALESCE(qi.customer_name, '')",
		"qi.package_name",
		"qi.appointment_time",
		"COALESCE(p.estimated_duration, 60)",
		"qi.status",
	).
		From("queue_items qi").
		LeftJoin("packages p ON p.id = qi.package_id").
		Where(squirrel.NotEq{"qi.appointment_time": nil}).
		Where(squirrel.NotEq{"qi.status": domain.QueueStatusFinished}).
		Where(squirrel.GtOrEq{"qi.appointment_time": from}).
		Where(squirrel.Lt{"qi.appointment_time": to})

	if inTx {
		queueBuilder = queueBuilder.Suffix("FOR UPDATE OF qi")
	}

	query, args, err := queueBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentsInWindow - build queue query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentsInWindow - execute queue query: %v", ErrExecQuery, err)
	}
	appointments, err = appendAppointments(appointments, rows)
	if err != nil {
		return nil, err
	}

	// Сеансы многосессионных заказов
	sessionBuilder := psqlbuilder.Select(
		"s.id",
		"s.queue_item_id",
		"'session' AS source",
		"COALESCE(qi.customer_name, '')",
		"qi.package_name",
		"s.appointment_time",
		"COALESCE(p.estimated_duration, 60)",
		"s.status",
	).
		From("sessions s").
		Join("queue_items qi ON qi.id = s.queue_item_id").
		LeftJoin("packages p ON p.id = qi.package_id").
		Where(squirrel.Eq{"s.status": []string{
			string(domain.SessionStatusScheduled),
			string(domain.SessionStatusInProgress),
		}}).
		Where(squirrel.GtOrEq{"s.appointment_time": from}).
		Where(squirrel.Lt{"s.appointment_time": to})

	if inTx {
		sessionBuilder = sessionBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err = sessionBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentsInWindow - build session query: %v", ErrBuildQuery, err)
	}

	rows, err = executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentsInWindow - execute session query: %v", ErrExecQuery, err)
	}
	return appendAppointments(appointments, rows)
}

// DeleteFinishedBefore удаляет завершённые позиции, не обновлявшиеся
// с момента cutoff. Возвращает число удалённых строк.
func (r *Repository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("queue_items").
		Where(squirrel.Eq{"status": domain.QueueStatusFinished}).
		Where(squirrel.Lt{"updated_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFinishedBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFinishedBefore - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFinishedBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// ListDueForStart получает запланированные позиции, чьё время встречи уже
// наступило (для автоматического перевода в in_progress)
func (r *Repository) ListDueForStart(ctx context.Context, now time.Time) ([]*domain.QueueItem, error) {
	return r.listDue(ctx, domain.QueueStatusScheduled, now, "ListDueForStart")
}

// ListDueForReview получает позиции в работе без подтверждения выполнения,
// чьё время встречи прошло раньше cutoff (для автоматического перевода в review)
func (r *Repository) ListDueForReview(ctx context.Context, cutoff time.Time) ([]*domain.QueueItem, error) {
	items, err := r.listDue(ctx, domain.QueueStatusInProgress, cutoff, "ListDueForReview")
	if err != nil {
		return nil, err
	}

	due := make([]*domain.QueueItem, 0, len(items))
	for _, item := range items {
		if !item.ProofAdded {
			due = append(due, item)
		}
	}
	return due, nil
}

func (r *Repository) listDue(ctx context.Context, status domain.QueueStatus, cutoff time.Time, op string) ([]*domain.QueueItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(queueItemColumns...).
		From("queue_items").
		Where(squirrel.Eq{"status": status}).
		Where(squirrel.NotEq{"appointment_time": nil}).
		Where(squirrel.LtOrEq{"appointment_time": cutoff}).
		OrderBy("appointment_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanQueueItems(rows)
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQueueItem(row rowScanner) (*domain.QueueItem, error) {
	var item domain.QueueItem
	var availabilityJSON []byte
	var appointmentTime sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.OrderID,
		&item.CustomerID,
		&item.CustomerName,
		&item.PackageID,
		&item.PackageName,
		&item.Status,
		&availabilityJSON,
		&appointmentTime,
		&item.RoomCode,
		&item.Notes,
		&item.ProofAdded,
		&item.MissedCount,
		&item.Position,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(availabilityJSON) > 0 {
		if err := json.Unmarshal(availabilityJSON, &item.Availability); err != nil {
			return nil, fmt.Errorf("unmarshal availability: %v", err)
		}
	}
	if appointmentTime.Valid {
		item.AppointmentTime = &appointmentTime.Time
	}
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}

func scanQueueItems(rows *sql.Rows) ([]*domain.QueueItem, error) {
	items := make([]*domain.QueueItem, 0)

	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanQueueItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanQueueItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

func appendAppointments(appointments []domain.Appointment, rows *sql.Rows) ([]domain.Appointment, error) {
	defer rows.Close()

	for rows.Next() {
		var apt domain.Appointment
		err := rows.Scan(
			&apt.ID,
			&apt.QueueItemID,
			&apt.Source,
			&apt.CustomerName,
			&apt.PackageName,
			&apt.Start,
			&apt.DurationMinutes,
			&apt.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: appendAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: appendAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
