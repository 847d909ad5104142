package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/pkg/dbmetrics"
	"github.com/SyahmiDin/app-raya-studio/pkg/psqlbuilder"
	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pgUniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"booking_date",
	"start_time",
	"service_id",
	"duration_minutes",
	"kind",
	"status",
	"client_name",
	"client_email",
	"client_phone",
	"referral_code",
	"base_price",
	"final_price",
	"stripe_session_id",
	"created_at",
	"updated_at",
	"confirmed_at",
}

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет бронь (held или сразу confirmed для админ-блоков).
// Уникальный индекс (booking_date, start_time) гарантирует, что два writer'а
// не займут один слот: нарушение маппится в ErrDuplicateSlot.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"booking_date",
			"start_time",
			"service_id",
			"duration_minutes",
			"kind",
			"status",
			"client_name",
			"client_email",
			"client_phone",
			"referral_code",
			"base_price",
			"final_price",
			"stripe_session_id",
			"confirmed_at",
		).
		Values(
			res.ID,
			res.BookingDate,
			res.StartTime,
			nullIfEmpty(res.ServiceID),
			res.DurationMinutes,
			res.Kind,
			res.Status,
			res.ClientName,
			res.ClientEmail,
			res.ClientPhone,
			res.ReferralCode,
			res.BasePrice,
			res.FinalPrice,
			res.StripeSessionID,
			res.ConfirmedAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetBySlot получает бронь по точной идентичности слота (date, start_time).
// Внутри транзакции добавляет FOR UPDATE, чтобы заблокировать строку
// на время проверки hold-таймаута.
func (r *Repository) GetBySlot(ctx context.Context, date time.Time, start types.TimeString) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"booking_date": date, "start_time": start})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetBySlot")
}

// GetWithFilter получает брони с фильтрацией по дате, статусу и типу
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations")

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"booking_date": *filter.Date}).
			OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time ASC")
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.WithReferral {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"referral_code": nil})
	}

	// Внутри транзакции выборка по конкретной дате блокирует строки:
	// использует ее usecase создания брони для проверки доступности
	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Confirm атомарно переводит held-бронь в confirmed одним условным UPDATE.
// Если строка уже confirmed или отсутствует, возвращает ErrNotHeld -
// вызывающая сторона перечитывает состояние и решает, идемпотентный это
// повтор или потерянный слот. Платёжный референс записывается здесь же:
// при сбое SetPaymentRef на этапе checkout строка могла остаться без него
func (r *Repository) Confirm(ctx context.Context, id string, sessionID string, confirmedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusConfirmed).
		Set("stripe_session_id", sessionID).
		Set("confirmed_at", confirmedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusHeld}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotHeld
	}

	return nil
}

// SetPaymentRef записывает внешний платежный референс (id Stripe-сессии)
func (r *Repository) SetPaymentRef(ctx context.Context, id string, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("stripe_session_id", sessionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentRef - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentRef - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentRef - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete удаляет бронь (используется для освобождения слота админом
// и для снятия admin-блоков)
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
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
		return ErrReservationNotFound
	}

	return nil
}

// DeleteHeld удаляет бронь, только если она все еще held.
// Используется для отката hold'а при сбое создания платежной сессии:
// уже подтвержденную бронь этот путь тронуть не может.
func (r *Repository) DeleteHeld(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id, "status": domain.StatusHeld}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteHeld - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteHeld - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteHeld - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotHeld
	}

	return nil
}

// DeleteExpiredHolds удаляет все held-брони, созданные раньше cutoff.
// Возвращает количество удаленных строк. Используется фоновым sweep'ом.
func (r *Repository) DeleteExpiredHolds(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"status": domain.StatusHeld}).
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredHolds - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredHolds - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredHolds - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Reservation, error) {
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}
	return res, nil
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func scanReservation(scan func(dest ...interface{}) error) (*domain.Reservation, error) {
	var res domain.Reservation
	var serviceID sql.NullString
	var createdAt, updatedAt, confirmedAt sql.NullTime

	err := scan(
		&res.ID,
		&res.BookingDate,
		&res.StartTime,
		&serviceID,
		&res.DurationMinutes,
		&res.Kind,
		&res.Status,
		&res.ClientName,
		&res.ClientEmail,
		&res.ClientPhone,
		&res.ReferralCode,
		&res.BasePrice,
		&res.FinalPrice,
		&res.StripeSessionID,
		&createdAt,
		&updatedAt,
		&confirmedAt,
	)
	if err != nil {
		return nil, err
	}

	res.ServiceID = serviceID.String
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	if confirmedAt.Valid {
		res.ConfirmedAt = &confirmedAt.Time
	}

	return &res, nil
}

// nullIfEmpty маппит пустой service_id админ-блока в NULL
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
