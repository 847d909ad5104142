package confirm_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда платёжная сессия неизвестна Stripe
	ErrSessionNotFound = errors.New("payment session not found")

	// ErrPaymentNotVerified возвращается, когда Stripe не подтверждает оплату сессии.
	// Бронь при этом не меняется: клиент может оплатить и повторить подтверждение
	ErrPaymentNotVerified = errors.New("payment is not verified")

	// ErrReservationExpired возвращается, когда удержание истекло до подтверждения
	// и слот уже отдан другому клиенту. Состояние терминальное, оплату нужно вернуть вручную
	ErrReservationExpired = errors.New("reservation expired before confirmation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
