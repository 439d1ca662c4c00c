package enroll

import (
	"time"

	enrollUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/enroll"
)

// EnrollmentResponse HTTP response model
type EnrollmentResponse struct {
	EnrollmentID        int64  `json:"enrollmentId"`
	LessonID            int64  `json:"lessonId"`
	SubscriptionID      int64  `json:"subscriptionId"`
	RemainingVisits     int    `json:"remainingVisits"` // -1 для безлимитного
	CurrentParticipants int    `json:"currentParticipants"`
	MaxParticipants     int    `json:"maxParticipants"`
	CreatedAt           string `json:"createdAt"`
}

func FromUseCaseResponse(resp *enrollUC.Response) *EnrollmentResponse {
	return &EnrollmentResponse{
		EnrollmentID:        resp.EnrollmentID,
		LessonID:            resp.LessonID,
		SubscriptionID:      resp.SubscriptionID,
		RemainingVisits:     resp.RemainingVisits,
		CurrentParticipants: resp.CurrentParticipants,
		MaxParticipants:     resp.MaxParticipants,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
	}
}
