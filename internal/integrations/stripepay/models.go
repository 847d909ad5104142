package stripepay

// CheckoutRequest параметры создания платёжной сессии
type CheckoutRequest struct {
	ReservationID string
	ServiceName   string
	// AmountCents итоговая цена в центах валюты (после применения скидки)
	AmountCents int64
	ClientEmail string
}

// CheckoutSession созданная платёжная сессия Stripe Checkout
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentInfo статус оплаты платёжной сессии
type PaymentInfo struct {
	SessionID     string
	Paid          bool
	ReservationID string
}
