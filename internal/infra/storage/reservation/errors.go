package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDuplicateSlot возвращается при нарушении уникальности (booking_date, start_time).
	// Это основной сигнал проигранной гонки за слот: вставка второго writer'а
	// отклоняется constraint'ом, а не предварительной проверкой.
	ErrDuplicateSlot = errors.New("reservation.repository: slot already taken")

	// ErrNotHeld возвращается, когда условное подтверждение не нашло held-брони
	ErrNotHeld = errors.New("reservation.repository: reservation is not held")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
