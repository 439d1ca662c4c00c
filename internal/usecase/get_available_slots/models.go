package get_available_slots

import "time"

// OpeningHours часы работы студии в UTC, [Open, Close)
type OpeningHours struct {
	Open  int
	Close int
}

// Request запрос сетки слотов зала на день
type Request struct {
	HallID          int64
	Date            time.Time // учитывается только дата
	DurationMinutes int       // длина слота и шаг сетки
}

// Response сетка слотов на день
type Response struct {
	HallID int64
	Date   time.Time
	Slots  []Slot
}

// Slot слот сетки; занятые слоты тоже возвращаются
type Slot struct {
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Available       bool
}
