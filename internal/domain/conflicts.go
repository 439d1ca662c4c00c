package domain

import (
	"fmt"
	"sort"
)

// Conflicts active reservations of a hall overlapping a requested slot
type Conflicts struct {
	Bookings []*Booking
	Lessons  []*Lesson
}

func (c Conflicts) IsEmpty() bool {
	return len(c.Bookings) == 0 && len(c.Lessons) == 0
}

// Sort orders both lists by their time slot
func (c Conflicts) Sort() {
	sort.SliceStable(c.Bookings, func(i, j int) bool {
		return c.Bookings[i].Slot().Compare(c.Bookings[j].Slot()) < 0
	})
	sort.SliceStable(c.Lessons, func(i, j int) bool {
		return c.Lessons[i].Slot().Compare(c.Lessons[j].Slot()) < 0
	})
}

// Err nil when there is no conflict, *ConflictError otherwise
func (c Conflicts) Err(hallID int64, slot TimeSlot) error {
	if c.IsEmpty() {
		return nil
	}
	e := &ConflictError{HallID: hallID, Slot: slot}
	for _, b := range c.Bookings {
		e.BookingIDs = append(e.BookingIDs, b.ID())
	}
	for _, l := range c.Lessons {
		e.LessonIDs = append(e.LessonIDs, l.ID())
	}
	return e
}

// FilterOverlapping keeps active bookings and lessons whose slot overlaps with slot
func FilterOverlapping(slot TimeSlot, bookings []*Booking, lessons []*Lesson) Conflicts {
	var c Conflicts
	for _, b := range bookings {
		if b.IsActive() && b.Slot().OverlapsWith(slot) {
			c.Bookings = append(c.Bookings, b)
		}
	}
	for _, l := range lessons {
		if l.IsActive() && l.Slot().OverlapsWith(slot) {
			c.Lessons = append(c.Lessons, l)
		}
	}
	c.Sort()
	return c
}

// ConflictError requested slot collides with existing reservations of the hall
type ConflictError struct {
	HallID     int64
	Slot       TimeSlot
	BookingIDs []int64
	LessonIDs  []int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("hall %d: slot %s conflicts with bookings %v and lessons %v",
		e.HallID, e.Slot, e.BookingIDs, e.LessonIDs)
}

func (e *ConflictError) Unwrap() error {
	return ErrSchedulingConflict
}
