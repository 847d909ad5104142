package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString представляет время дня в формате "HH:MM" (без даты и секунд).
// Используется для слотов бронирования: хранится в БД как TIME, сравнивается
// и складывается в минутах от начала дня.
type TimeString string

const (
	timeLayout    = "15:04"
	minutesPerDay = 24 * 60
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time out of day range")
)

// NewTimeString создает TimeString из time.Time (часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(timeLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(s), nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от начала дня
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет корректность формата
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает количество минут от начала дня.
// Для некорректного значения возвращает 0 (валидация выполняется отдельно).
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// AddMinutes возвращает время через minutes минут.
// Выход за пределы суток считается ошибкой - слоты не переходят через полночь.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.Minutes() + minutes)
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из колонки TIME.
// Postgres возвращает время как "HH:MM:SS" - обрезаем до минут.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > len(timeLayout) {
		s = s[:len(timeLayout)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
