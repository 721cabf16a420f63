package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	"github.com/avdeevsv/GBS-QueueService/pkg/dbmetrics"
	"github.com/avdeevsv/GBS-QueueService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"customer_id",
	"customer_name",
	"package_id",
	"package_name",
	"amount",
	"refunded_amount",
	"availability",
	"status",
	"created_at",
	"updated_at",
	"paid_at",
}

// Repository репозиторий для работы с заказами.
// Сервис не создаёт заказы - они появляются на стороне магазина;
// здесь только чтение и зеркалирование статуса очереди.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает заказ по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.Order
	var availabilityJSON []byte
	var refundedAmount sql.NullFloat64
	var createdAt, updatedAt, paidAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.CustomerID,
		&o.CustomerName,
		&o.PackageID,
		&o.PackageName,
		&o.Amount,
		&refundedAmount,
		&availabilityJSON,
		&o.Status,
		&createdAt,
		&updatedAt,
		&paidAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	if len(availabilityJSON) > 0 {
		if err := json.Unmarshal(availabilityJSON, &o.Availability); err != nil {
			return nil, fmt.Errorf("%w: GetByID - unmarshal availability: %v", ErrScanRow, err)
		}
	}
	if refundedAmount.Valid {
		o.RefundedAmount = &refundedAmount.Float64
	}
	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time
	if paidAt.Valid {
		o.PaidAt = &paidAt.Time
	}

	return &o, nil
}

// UpdateStatus обновляет статус заказа (зеркало статуса очереди)
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

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
		return ErrOrderNotFound
	}

	return nil
}

// UpdateAvailability обновляет доступность клиента на заказе
func (r *Repository) UpdateAvailability(ctx context.Context, id string, availability domain.Availability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	availabilityJSON, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability: %v", ErrMarshalAvailability, err)
	}

	query, args, err := psqlbuilder.Update("orders").
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
		return ErrOrderNotFound
	}

	return nil
}

// SetRefunded отмечает заказ возвращённым с указанием суммы возврата
func (r *Repository) SetRefunded(ctx context.Context, id string, amount float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.OrderStatusRefunded).
		Set("refunded_amount", amount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetRefunded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetRefunded - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetRefunded - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
