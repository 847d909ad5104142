package create_checkout

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// Request модель запроса на создание брони с оплатой
type Request struct {
	ServiceID    string           // ID услуги
	Date         time.Time        // Дата брони (без времени)
	StartTime    types.TimeString // Время начала слота из сетки
	ClientName   string           // Имя клиента
	ClientEmail  string           // Email клиента
	ClientPhone  string           // Телефон клиента
	ReferralCode *string          // Промокод сотрудника (опционально)
}

// Response модель ответа: бронь удержана, клиент уходит на оплату
type Response struct {
	ReservationID string    // ID созданной брони
	SessionID     string    // ID платёжной сессии Stripe
	CheckoutURL   string    // URL Stripe Checkout для редиректа
	BasePrice     float64   // Цена услуги без скидки
	FinalPrice    float64   // Итоговая цена с учетом промокода
	HoldExpiresAt time.Time // Момент истечения удержания слота
}
