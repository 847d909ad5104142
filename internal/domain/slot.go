package domain

import "github.com/SyahmiDin/app-raya-studio/pkg/types"

// SessionWindow рабочее окно студии в течение дня (например, "Pagi" 10:00-12:30).
// Окна независимы: слоты одного окна не перетекают в следующее.
type SessionWindow struct {
	Name  string
	Start types.TimeString
	End   types.TimeString
}

// Slot кандидат на бронирование, выдаваемый генератором слотов
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Session         string
	Available       bool
}

// OccupiedInterval полуинтервал [start, start+duration+buffer), занимаемый
// бронью или кандидатом. Буфер добавляется к КАЖДОЙ стороне независимо:
// длинная бронь своим буфером блокирует короткого кандидата сразу после нее.
type OccupiedInterval struct {
	startMin int
	endMin   int
}

// NewOccupiedInterval строит занятый интервал от начала слота с учетом буфера
func NewOccupiedInterval(start types.TimeString, durationMinutes, bufferMinutes int) OccupiedInterval {
	s := start.Minutes()
	return OccupiedInterval{
		startMin: s,
		endMin:   s + durationMinutes + bufferMinutes,
	}
}

// Overlaps проверяет пересечение полуинтервалов: a.start < b.end && a.end > b.start.
// Касание ровно на границе пересечением НЕ считается, поэтому бронь,
// заканчивающаяся (с буфером) в 10:40, не блокирует кандидата на 10:40.
// Проверка симметрична: a.Overlaps(b) == b.Overlaps(a).
func (a OccupiedInterval) Overlaps(b OccupiedInterval) bool {
	return a.startMin < b.endMin && a.endMin > b.startMin
}
