package block_slot

import "errors"

var (
	// ErrSlotAlreadyConfirmed возвращается, когда интервал пересекается с подтвержденной бронью
	ErrSlotAlreadyConfirmed = errors.New("slot is already booked")

	// ErrSlotHeldByOther возвращается, когда слот удержан клиентом на время оплаты
	ErrSlotHeldByOther = errors.New("slot is temporarily held by a customer")

	// ErrRaceLost возвращается, когда параллельный запрос успел занять слот первым
	ErrRaceLost = errors.New("slot was taken by a concurrent request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
