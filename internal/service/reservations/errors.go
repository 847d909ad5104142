package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrNotABlock возвращается при попытке снять как блокировку клиентскую бронь
	ErrNotABlock = errors.New("reservation is not an admin block")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
