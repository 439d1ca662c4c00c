package transition_booking

import "github.com/m04kA/SMC-DanceStudio/internal/service/bookings/models"

// TransitionBookingRequest HTTP request model
type TransitionBookingRequest struct {
	Action string `json:"action" validate:"required,oneof=confirm cancel complete"`
}

func (r *TransitionBookingRequest) ToServiceRequest(bookingID, userID int64) *models.TransitionRequest {
	return &models.TransitionRequest{
		UserID:    userID,
		BookingID: bookingID,
		Action:    r.Action,
	}
}
