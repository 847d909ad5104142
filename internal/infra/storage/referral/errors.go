package referral

import "errors"

var (
	// ErrCodeNotFound возвращается, когда промокод не найден
	ErrCodeNotFound = errors.New("referral.repository: referral code not found")

	// ErrDuplicateCode возвращается при попытке создать уже существующий промокод
	ErrDuplicateCode = errors.New("referral.repository: referral code already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("referral.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("referral.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("referral.repository: failed to scan row")
)
