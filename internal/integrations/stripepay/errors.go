package stripepay

import "errors"

var (
	// ErrSessionNotFound возвращается, когда платёжная сессия не найдена в Stripe
	ErrSessionNotFound = errors.New("stripe checkout session not found")

	// ErrInternal возвращается при внутренних ошибках клиента или недоступности Stripe
	ErrInternal = errors.New("stripepay client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Stripe
	ErrInvalidResponse = errors.New("stripepay client: invalid response")
)
