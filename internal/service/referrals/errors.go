package referrals

import "errors"

var (
	// ErrCodeNotFound возвращается, когда промокод не найден
	ErrCodeNotFound = errors.New("referral code not found")

	// ErrDuplicateCode возвращается при попытке создать уже существующий промокод
	ErrDuplicateCode = errors.New("referral code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
