package get_availability

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
)

// Request модель запроса на получение сетки слотов
type Request struct {
	ServiceID string    // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа с сеткой слотов на день
type Response struct {
	Date            time.Time     // Дата, на которую запрашивались слоты
	ServiceID       string        // ID услуги
	ServiceName     string        // Название услуги
	DurationMinutes int           // Длительность сессии в минутах
	Slots           []domain.Slot // Полная сетка слотов с признаком доступности
}
