package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/pkg/dbmetrics"
	"github.com/SyahmiDin/app-raya-studio/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг (пакетов съемки).
// Каталог управляется админ-инструментами и для ядра бронирования read-only.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"sort_order",
	"created_at",
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.DurationMinutes,
		&svc.Price,
		&svc.SortOrder,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time

	return &svc, nil
}

// List возвращает все услуги каталога в порядке отображения
func (r *Repository) List(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("sort_order ASC, price ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		var createdAt sql.NullTime

		err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Description,
			&svc.DurationMinutes,
			&svc.Price,
			&svc.SortOrder,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		svc.CreatedAt = createdAt.Time
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
