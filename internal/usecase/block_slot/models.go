package block_slot

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// Request модель запроса на блокировку интервала администратором.
// Время не обязано лежать на сетке слотов: студия может закрыть
// произвольный интервал под свои нужды
type Request struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// Response модель созданной блокировки
type Response struct {
	BlockID         string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	CreatedAt       time.Time
}
