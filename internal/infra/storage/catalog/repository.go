package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	"github.com/avdeevsv/GBS-QueueService/pkg/dbmetrics"
	"github.com/avdeevsv/GBS-QueueService/pkg/psqlbuilder"
)

var packageColumns = []string{
	"id",
	"name",
	"price",
	"estimated_duration",
	"active",
	"position",
	"created_at",
}

// Repository репозиторий каталога пакетов.
// Каталог редактируется на стороне магазина; здесь чтение для расчёта
// длительности сеансов и изменение порядка отображения.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пакет по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Package
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.EstimatedDuration,
		&p.Active,
		&p.Position,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan package: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time

	return &p, nil
}

// ListActive получает активные пакеты в порядке отображения
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("packages").
		Where(squirrel.Eq{"active": true}).
		OrderBy("position ASC", "created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	packages := make([]*domain.Package, 0)
	for rows.Next() {
		var p domain.Package
		var createdAt sql.NullTime

		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.EstimatedDuration,
			&p.Active,
			&p.Position,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}

		p.CreatedAt = createdAt.Time
		packages = append(packages, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return packages, nil
}

// Reorder записывает новый порядок отображения пакетов.
// Позиция равна индексу ID в переданном списке.
func (r *Repository) Reorder(ctx context.Context, orderedIDs []string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for position, id := range orderedIDs {
		query, args, err := psqlbuilder.Update("packages").
			Set("position", position).
			Where(squirrel.Eq{"id": id}).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: Reorder - build update query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: Reorder - execute update: %v", ErrExecQuery, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: Reorder - get rows affected: %v", ErrExecQuery, err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: Reorder - id %s", ErrPackageNotFound, id)
		}
	}

	return nil
}
