package referral

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/pkg/dbmetrics"
	"github.com/SyahmiDin/app-raya-studio/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// Repository репозиторий промокодов сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var referralColumns = []string{
	"code",
	"staff_name",
	"discount_percent",
	"created_at",
}

// Create создает промокод
func (r *Repository) Create(ctx context.Context, code *domain.ReferralCode) (*domain.ReferralCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("referral_codes").
		Columns("code", "staff_name", "discount_percent").
		Values(code.Code, code.StaffName, code.DiscountPercent).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	code.CreatedAt = createdAt.Time

	return code, nil
}

// GetByCode получает промокод по коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.ReferralCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(referralColumns...).
		From("referral_codes").
		Where(squirrel.Eq{"code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var rc domain.ReferralCode
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rc.Code,
		&rc.StaffName,
		&rc.DiscountPercent,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan referral code: %v", ErrScanRow, err)
	}

	rc.CreatedAt = createdAt.Time

	return &rc, nil
}

// List возвращает все промокоды
func (r *Repository) List(ctx context.Context) ([]*domain.ReferralCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(referralColumns...).
		From("referral_codes").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	codes := make([]*domain.ReferralCode, 0)
	for rows.Next() {
		var rc domain.ReferralCode
		var createdAt sql.NullTime

		if err := rows.Scan(&rc.Code, &rc.StaffName, &rc.DiscountPercent, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		rc.CreatedAt = createdAt.Time
		codes = append(codes, &rc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return codes, nil
}

// Delete удаляет промокод
func (r *Repository) Delete(ctx context.Context, code string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("referral_codes").
		Where(squirrel.Eq{"code": code}).
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
		return ErrCodeNotFound
	}

	return nil
}
