package get_availability

import (
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
)

// generateTimeSlots генерирует полную сетку слотов на день.
// Слоты идут внутри каждого рабочего окна с шагом duration+buffer от его начала.
// Слот попадает в сетку, пока сама сессия (без буфера) помещается в окно:
// start + duration <= window.End. Окна независимы друг от друга.
func generateTimeSlots(windows []domain.SessionWindow, durationMinutes, bufferMinutes int) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)

	for _, window := range windows {
		currentSlot := window.Start

		for {
			slotEnd, err := currentSlot.AddMinutes(durationMinutes)
			if err != nil {
				// Сессия вышла за пределы суток, окно исчерпано
				break
			}
			if slotEnd.IsAfter(window.End) {
				break
			}

			slots = append(slots, domain.Slot{
				StartTime:       currentSlot,
				DurationMinutes: durationMinutes,
				Session:         window.Name,
			})

			currentSlot, err = currentSlot.AddMinutes(durationMinutes + bufferMinutes)
			if err != nil {
				break
			}
		}
	}

	return slots, nil
}

// markAvailability проставляет признак доступности каждому слоту сетки.
// Слот недоступен, если его интервал с буфером пересекается с интервалом
// (тоже с буфером) хотя бы одной подтвержденной брони даты. Блокировки
// администратора учитываются наравне с оплаченными бронированиями.
func markAvailability(slots []domain.Slot, bufferMinutes int, reservations []*domain.Reservation) []domain.Slot {
	occupied := make([]domain.OccupiedInterval, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsConfirmed() {
			continue
		}
		occupied = append(occupied, domain.NewOccupiedInterval(r.StartTime, r.DurationMinutes, bufferMinutes))
	}

	result := make([]domain.Slot, len(slots))
	for i, slot := range slots {
		candidate := domain.NewOccupiedInterval(slot.StartTime, slot.DurationMinutes, bufferMinutes)

		available := true
		for _, interval := range occupied {
			if candidate.Overlaps(interval) {
				available = false
				break
			}
		}

		slot.Available = available
		result[i] = slot
	}

	return result
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
