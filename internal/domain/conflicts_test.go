package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoredBooking(t *testing.T, id int64, slot TimeSlot, status BookingStatus) *Booking {
	t.Helper()
	b, err := RestoreBooking(BookingRecord{
		ID:              id,
		ClientID:        1,
		HallID:          2,
		StartTime:       slot.Start(),
		DurationMinutes: slot.DurationMinutes(),
		Status:          status,
	})
	require.NoError(t, err)
	return b
}

func restoredLesson(t *testing.T, id int64, slot TimeSlot, status LessonStatus) *Lesson {
	t.Helper()
	rec := newTestLesson(t, 5).Record()
	rec.ID = id
	rec.StartTime = slot.Start()
	rec.DurationMinutes = slot.DurationMinutes()
	rec.Status = status
	l, err := RestoreLesson(rec)
	require.NoError(t, err)
	return l
}

func TestFilterOverlapping(t *testing.T) {
	candidate := mustSlot(t, at(10, 30), 60)

	bookings := []*Booking{
		restoredBooking(t, 1, mustSlot(t, at(10, 0), 60), BookingStatusConfirmed),
		restoredBooking(t, 2, mustSlot(t, at(11, 30), 60), BookingStatusPending),
		restoredBooking(t, 3, mustSlot(t, at(10, 45), 15), BookingStatusCancelled),
		restoredBooking(t, 4, mustSlot(t, at(9, 0), 120), BookingStatusPending),
	}
	lessons := []*Lesson{
		restoredLesson(t, 10, mustSlot(t, at(11, 0), 60), LessonStatusScheduled),
		restoredLesson(t, 11, mustSlot(t, at(10, 0), 45), LessonStatusCompleted),
		restoredLesson(t, 12, mustSlot(t, at(10, 0), 45), LessonStatusOngoing),
	}

	c := FilterOverlapping(candidate, bookings, lessons)
	require.False(t, c.IsEmpty())

	var bookingIDs, lessonIDs []int64
	for _, b := range c.Bookings {
		bookingIDs = append(bookingIDs, b.ID())
	}
	for _, l := range c.Lessons {
		lessonIDs = append(lessonIDs, l.ID())
	}
	assert.Equal(t, []int64{4, 1}, bookingIDs)
	assert.Equal(t, []int64{12, 10}, lessonIDs)

	err := c.Err(2, candidate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchedulingConflict)

	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, int64(2), ce.HallID)
	assert.Equal(t, []int64{4, 1}, ce.BookingIDs)
	assert.Equal(t, []int64{12, 10}, ce.LessonIDs)
}

func TestFilterOverlapping_BoundaryAdjacent(t *testing.T) {
	existing := []*Booking{restoredBooking(t, 1, mustSlot(t, at(10, 0), 60), BookingStatusConfirmed)}

	c := FilterOverlapping(mustSlot(t, at(11, 0), 60), existing, nil)
	assert.True(t, c.IsEmpty())
	assert.NoError(t, c.Err(2, mustSlot(t, at(11, 0), 60)))
}
