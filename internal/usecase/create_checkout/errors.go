package create_checkout

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrReferralNotFound возвращается при неизвестном промокоде
	ErrReferralNotFound = errors.New("referral code not found")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("time slot is not on the booking grid")

	// ErrSlotAlreadyConfirmed возвращается, когда слот занят подтвержденной бронью
	ErrSlotAlreadyConfirmed = errors.New("slot is already booked")

	// ErrSlotHeldByOther возвращается, когда слот удержан другим клиентом на время оплаты
	ErrSlotHeldByOther = errors.New("slot is temporarily held by another customer")

	// ErrRaceLost возвращается, когда параллельный запрос успел занять слот первым
	ErrRaceLost = errors.New("slot was taken by a concurrent request")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrPaymentGateway возвращается при сбое создания платёжной сессии
	ErrPaymentGateway = errors.New("payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
