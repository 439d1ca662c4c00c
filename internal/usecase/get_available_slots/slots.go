package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// generateTimeSlots сетка от открытия до закрытия с шагом duration.
// Слоты, начало которых уже прошло, отбрасываются.
func generateTimeSlots(day time.Time, hours OpeningHours, duration int, now time.Time) []domain.TimeSlot {
	open := day.Add(time.Duration(hours.Open) * time.Hour)
	closeAt := day.Add(time.Duration(hours.Close) * time.Hour)
	step := time.Duration(duration) * time.Minute

	slots := make([]domain.TimeSlot, 0)
	for start := open; !start.Add(step).After(closeAt); start = start.Add(step) {
		if start.Before(now) {
			continue
		}
		slots = append(slots, domain.RestoreTimeSlot(start, duration))
	}
	return slots
}

// markAvailability слот свободен, если не пересекается ни с одной активной резервацией.
// Соприкасающиеся интервалы не пересекаются.
func markAvailability(slots []domain.TimeSlot, bookings []*domain.Booking, lessons []*domain.Lesson) []Slot {
	busy := make([]domain.TimeSlot, 0, len(bookings)+len(lessons))
	for _, b := range bookings {
		if b.IsActive() {
			busy = append(busy, b.Slot())
		}
	}
	for _, l := range lessons {
		if l.IsActive() {
			busy = append(busy, l.Slot())
		}
	}

	result := make([]Slot, len(slots))
	for i, s := range slots {
		available := true
		for _, taken := range busy {
			if s.OverlapsWith(taken) {
				available = false
				break
			}
		}
		result[i] = Slot{
			StartTime:       s.Start(),
			EndTime:         s.End(),
			DurationMinutes: s.DurationMinutes(),
			Available:       available,
		}
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
