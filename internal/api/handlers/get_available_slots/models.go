package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DanceStudio/internal/usecase/get_available_slots"
)

// DefaultDurationMinutes длина слота, если duration не передан
const DefaultDurationMinutes = 60

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date   string          `json:"date"`
	HallID int64           `json:"hallId"`
	Slots  []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Available       bool      `json:"available"`
}

// ToUseCaseRequest парсит дату формата YYYY-MM-DD
func ToUseCaseRequest(hallID int64, dateStr string, duration int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{
		HallID:          hallID,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}

func FromUseCaseResponse(resp *getAvailableSlots.Response) AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		}
	}
	return AvailableSlotsResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		HallID: resp.HallID,
		Slots:  slots,
	}
}
