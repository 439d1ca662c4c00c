package conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// Detector ищет активные брони и занятия зала, пересекающиеся с запрошенным слотом.
// Ничего не пишет и не хранит состояние; проверку и последующую запись вызывающий
// выполняет в одной транзакции.
type Detector struct {
	repo ReservationRepository
}

func NewDetector(repo ReservationRepository) *Detector {
	return &Detector{repo: repo}
}

// FindConflicts возвращает пересечения, отсортированные по слоту
func (d *Detector) FindConflicts(ctx context.Context, hallID int64, slot domain.TimeSlot) (domain.Conflicts, error) {
	bookings, err := d.repo.FindActiveBookings(ctx, hallID)
	if err != nil {
		return domain.Conflicts{}, fmt.Errorf("%w: FindConflicts - bookings of hall=%d: %v", ErrInternal, hallID, err)
	}

	lessons, err := d.repo.FindActiveLessons(ctx, hallID)
	if err != nil {
		return domain.Conflicts{}, fmt.Errorf("%w: FindConflicts - lessons of hall=%d: %v", ErrInternal, hallID, err)
	}

	return domain.FilterOverlapping(slot, bookings, lessons), nil
}

// Check nil, если слот свободен, иначе *domain.ConflictError
func (d *Detector) Check(ctx context.Context, hallID int64, slot domain.TimeSlot) error {
	c, err := d.FindConflicts(ctx, hallID, slot)
	if err != nil {
		return err
	}
	return c.Err(hallID, slot)
}
