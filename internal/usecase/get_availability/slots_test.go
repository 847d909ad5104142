package get_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

func window(name, start, end string) domain.SessionWindow {
	return domain.SessionWindow{
		Name:  name,
		Start: types.TimeString(start),
		End:   types.TimeString(end),
	}
}

func startTimes(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestGenerateTimeSlots(t *testing.T) {
	t.Run("steps by duration plus buffer within window", func(t *testing.T) {
		slots, err := generateTimeSlots([]domain.SessionWindow{window("Pagi", "10:00", "13:00")}, 15, 5)
		require.NoError(t, err)

		// Шаг 20 минут, сессия 15 минут должна помещаться до 13:00
		assert.Equal(t, []string{
			"10:00", "10:20", "10:40", "11:00", "11:20", "11:40",
			"12:00", "12:20", "12:40",
		}, startTimes(slots))
	})

	t.Run("emits slot that ends exactly at window end", func(t *testing.T) {
		slots, err := generateTimeSlots([]domain.SessionWindow{window("Pagi", "10:00", "12:30")}, 30, 0)
		require.NoError(t, err)

		// Без буфера последняя сессия 12:00-12:30 заканчивается ровно в конце окна
		assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30", "12:00"}, startTimes(slots))
	})

	t.Run("session must fit without the trailing buffer", func(t *testing.T) {
		slots, err := generateTimeSlots([]domain.SessionWindow{window("Pagi", "10:00", "12:30")}, 30, 5)
		require.NoError(t, err)

		// Шаг 35 минут; слот 11:45-12:15 помещается, следующий 12:20-12:50 нет
		assert.Equal(t, []string{"10:00", "10:35", "11:10", "11:45"}, startTimes(slots))
	})

	t.Run("window too short for a single session", func(t *testing.T) {
		slots, err := generateTimeSlots([]domain.SessionWindow{window("Mini", "10:00", "10:20")}, 30, 5)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("windows are independent", func(t *testing.T) {
		slots, err := generateTimeSlots([]domain.SessionWindow{
			window("Pagi", "10:00", "11:00"),
			window("Petang", "14:00", "15:00"),
		}, 30, 5)
		require.NoError(t, err)

		assert.Equal(t, []string{"10:00", "14:00"}, startTimes(slots))
		assert.Equal(t, "Pagi", slots[0].Session)
		assert.Equal(t, "Petang", slots[1].Session)
	})

	t.Run("deterministic for same inputs", func(t *testing.T) {
		windows := []domain.SessionWindow{window("Pagi", "10:00", "12:30"), window("Malam", "20:00", "22:30")}
		first, err := generateTimeSlots(windows, 45, 5)
		require.NoError(t, err)
		second, err := generateTimeSlots(windows, 45, 5)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestMarkAvailability(t *testing.T) {
	confirmed := func(start string, duration int) *domain.Reservation {
		return &domain.Reservation{
			ID:              "res-" + start,
			StartTime:       types.TimeString(start),
			DurationMinutes: duration,
			Kind:            domain.KindCustomer,
			Status:          domain.StatusConfirmed,
		}
	}

	t.Run("only the booked slot of a 15 minute grid goes dark", func(t *testing.T) {
		slots, err := generateTimeSlots([]domain.SessionWindow{window("Pagi", "10:00", "13:00")}, 15, 5)
		require.NoError(t, err)
		require.Equal(t, "12:40", slots[len(slots)-1].StartTime.String())

		marked := markAvailability(slots, 5, []*domain.Reservation{confirmed("10:20", 15)})

		byStart := make(map[string]bool)
		for _, s := range marked {
			byStart[s.StartTime.String()] = s.Available
		}

		// Интервалы полуоткрытые: бронь 10:20 занимает [10:20, 10:40),
		// соседние слоты 10:00 и 10:40 касаются границ и остаются свободны
		assert.True(t, byStart["10:00"])
		assert.False(t, byStart["10:20"])
		assert.True(t, byStart["10:40"])
	})

	t.Run("booking blocks its own slot", func(t *testing.T) {
		slots, err := generateTimeSlots([]domain.SessionWindow{window("Pagi", "10:00", "13:00")}, 30, 5)
		require.NoError(t, err)

		marked := markAvailability(slots, 5, []*domain.Reservation{confirmed("10:35", 30)})

		byStart := make(map[string]bool)
		for _, s := range marked {
			byStart[s.StartTime.String()] = s.Available
		}

		assert.True(t, byStart["10:00"])
		assert.False(t, byStart["10:35"])
		assert.True(t, byStart["11:10"])
	})

	t.Run("buffer on both sides does not block adjacent grid slots", func(t *testing.T) {
		// Бронь 10:00 длительностью 35 с буфером занимает [10:00, 10:40).
		// Следующий слот сетки 10:40 начинается ровно на границе и свободен.
		slots, err := generateTimeSlots([]domain.SessionWindow{window("Pagi", "10:00", "13:00")}, 35, 5)
		require.NoError(t, err)

		marked := markAvailability(slots, 5, []*domain.Reservation{confirmed("10:00", 35)})

		assert.False(t, marked[0].Available) // 10:00
		assert.True(t, marked[1].Available)  // 10:40
	})

	t.Run("off-grid admin block shadows overlapping candidates", func(t *testing.T) {
		slots := []domain.Slot{
			{StartTime: "14:10", DurationMinutes: 30},
			{StartTime: "14:45", DurationMinutes: 30},
		}

		block := &domain.Reservation{
			ID:              "blk-1",
			StartTime:       "14:00",
			DurationMinutes: 30,
			Kind:            domain.KindAdminBlock,
			Status:          domain.StatusConfirmed,
		}

		marked := markAvailability(slots, 5, []*domain.Reservation{block})

		// Блок с буфером занимает [14:00, 14:35): кандидат 14:10 пересекается,
		// кандидат 14:45 нет
		assert.False(t, marked[0].Available)
		assert.True(t, marked[1].Available)
	})

	t.Run("held reservations do not affect the grid", func(t *testing.T) {
		slots, err := generateTimeSlots([]domain.SessionWindow{window("Pagi", "10:00", "11:00")}, 30, 5)
		require.NoError(t, err)

		held := &domain.Reservation{
			ID:              "hold-1",
			StartTime:       "10:00",
			DurationMinutes: 30,
			Kind:            domain.KindCustomer,
			Status:          domain.StatusHeld,
		}

		marked := markAvailability(slots, 5, []*domain.Reservation{held})
		assert.True(t, marked[0].Available)
	})
}

func TestOccupiedIntervalOverlapSymmetry(t *testing.T) {
	// Проверка перестановочности на наборе интервалов с разными длительностями
	starts := []string{"10:00", "10:20", "10:35", "11:00", "11:05"}
	durations := []int{15, 30, 45, 60, 90}

	for _, sa := range starts {
		for _, da := range durations {
			for _, sb := range starts {
				for _, db := range durations {
					a := domain.NewOccupiedInterval(types.TimeString(sa), da, 5)
					b := domain.NewOccupiedInterval(types.TimeString(sb), db, 5)
					assert.Equal(t, a.Overlaps(b), b.Overlaps(a),
						"overlap must be symmetric for %s/%d vs %s/%d", sa, da, sb, db)
				}
			}
		}
	}
}
