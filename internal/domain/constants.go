package domain

// TimeSlot bounds
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 1440 // 24 hours
	MaxAdvanceYears        = 1    // start time sanity bound
)

// Business validation constants
const (
	MaxPurposeLength              = 500
	MaxLessonTypeLength           = 50
	MaxLessonNameLength           = 100
	MaxLessonDescriptionLength    = 2000
	MaxLessonParticipants         = 500
	MaxSubscriptionTypeNameLength = 100
	MaxValidityDays               = 3650
)

// UnlimitedVisits sentinel value of Subscription.RemainingVisits for unlimited subscriptions
const UnlimitedVisits = -1

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses statuses taking part in conflict detection
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
}

// ActiveLessonStatuses statuses taking part in conflict detection
var ActiveLessonStatuses = []LessonStatus{
	LessonStatusScheduled,
	LessonStatusOngoing,
}
