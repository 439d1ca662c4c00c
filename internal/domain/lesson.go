package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// LessonStatus represents the status of a lesson
type LessonStatus string

const (
	LessonStatusScheduled LessonStatus = "scheduled"
	LessonStatusOngoing   LessonStatus = "ongoing"
	LessonStatusCompleted LessonStatus = "completed"
	LessonStatusCancelled LessonStatus = "cancelled"
)

// Difficulty level of a lesson
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Lesson is a scheduled trainer-led activity in a hall with a participant cap
type Lesson struct {
	id                  int64
	lessonType          string
	name                string
	description         string
	slot                TimeSlot
	difficulty          Difficulty
	maxParticipants     int
	currentParticipants int
	price               float64
	status              LessonStatus
	trainerID           int64
	hallID              int64
	createdAt           time.Time
	updatedAt           time.Time
}

// LessonParams input of NewLesson
type LessonParams struct {
	Type            string
	Name            string
	Description     string
	Slot            TimeSlot
	Difficulty      Difficulty
	MaxParticipants int
	Price           float64
	TrainerID       int64
	HallID          int64
}

// LessonRecord is the persisted form of a lesson used by storage adapters
type LessonRecord struct {
	ID                  int64
	Type                string
	Name                string
	Description         string
	StartTime           time.Time
	DurationMinutes     int
	Difficulty          Difficulty
	MaxParticipants     int
	CurrentParticipants int
	Price               float64
	Status              LessonStatus
	TrainerID           int64
	HallID              int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewLesson validates params and creates a scheduled lesson without participants
func NewLesson(p LessonParams, now time.Time) (*Lesson, error) {
	lessonType := strings.TrimSpace(p.Type)
	name := strings.TrimSpace(p.Name)
	description := strings.TrimSpace(p.Description)

	switch {
	case lessonType == "":
		return nil, validationError("lesson type is required")
	case utf8.RuneCountInString(lessonType) > MaxLessonTypeLength:
		return nil, validationError("lesson type must be at most %d characters", MaxLessonTypeLength)
	case name == "":
		return nil, validationError("lesson name is required")
	case utf8.RuneCountInString(name) > MaxLessonNameLength:
		return nil, validationError("lesson name must be at most %d characters", MaxLessonNameLength)
	case utf8.RuneCountInString(description) > MaxLessonDescriptionLength:
		return nil, validationError("lesson description must be at most %d characters", MaxLessonDescriptionLength)
	case p.Slot.IsZero():
		return nil, validationError("time slot is required")
	case p.MaxParticipants <= 0 || p.MaxParticipants > MaxLessonParticipants:
		return nil, validationError("maxParticipants must be between 1 and %d", MaxLessonParticipants)
	case p.Price < 0:
		return nil, validationError("price must not be negative")
	case p.TrainerID <= 0:
		return nil, validationError("trainerID must be positive")
	case p.HallID <= 0:
		return nil, validationError("hallID must be positive")
	}

	if _, err := ParseDifficulty(string(p.Difficulty)); err != nil {
		return nil, err
	}

	return &Lesson{
		lessonType:      lessonType,
		name:            name,
		description:     description,
		slot:            p.Slot,
		difficulty:      p.Difficulty,
		maxParticipants: p.MaxParticipants,
		price:           p.Price,
		status:          LessonStatusScheduled,
		trainerID:       p.TrainerID,
		hallID:          p.HallID,
		createdAt:       now.UTC(),
		updatedAt:       now.UTC(),
	}, nil
}

// RestoreLesson rebuilds a lesson loaded from storage
func RestoreLesson(r LessonRecord) (*Lesson, error) {
	if _, err := ParseLessonStatus(string(r.Status)); err != nil {
		return nil, err
	}
	if r.CurrentParticipants < 0 || r.CurrentParticipants > r.MaxParticipants {
		return nil, validationError("currentParticipants %d out of range 0..%d", r.CurrentParticipants, r.MaxParticipants)
	}
	return &Lesson{
		id:                  r.ID,
		lessonType:          r.Type,
		name:                r.Name,
		description:         r.Description,
		slot:                RestoreTimeSlot(r.StartTime, r.DurationMinutes),
		difficulty:          r.Difficulty,
		maxParticipants:     r.MaxParticipants,
		currentParticipants: r.CurrentParticipants,
		price:               r.Price,
		status:              r.Status,
		trainerID:           r.TrainerID,
		hallID:              r.HallID,
		createdAt:           r.CreatedAt,
		updatedAt:           r.UpdatedAt,
	}, nil
}

// Record returns the persisted form of the lesson
func (l *Lesson) Record() LessonRecord {
	return LessonRecord{
		ID:                  l.id,
		Type:                l.lessonType,
		Name:                l.name,
		Description:         l.description,
		StartTime:           l.slot.Start(),
		DurationMinutes:     l.slot.DurationMinutes(),
		Difficulty:          l.difficulty,
		MaxParticipants:     l.maxParticipants,
		CurrentParticipants: l.currentParticipants,
		Price:               l.price,
		Status:              l.status,
		TrainerID:           l.trainerID,
		HallID:              l.hallID,
		CreatedAt:           l.createdAt,
		UpdatedAt:           l.updatedAt,
	}
}

// MarkPersisted stores identity and timestamps assigned by storage on insert
func (l *Lesson) MarkPersisted(id int64, createdAt, updatedAt time.Time) {
	l.id = id
	l.createdAt = createdAt
	l.updatedAt = updatedAt
}

func (l *Lesson) ID() int64                { return l.id }
func (l *Lesson) Type() string             { return l.lessonType }
func (l *Lesson) Name() string             { return l.name }
func (l *Lesson) Description() string      { return l.description }
func (l *Lesson) Slot() TimeSlot           { return l.slot }
func (l *Lesson) Difficulty() Difficulty   { return l.difficulty }
func (l *Lesson) MaxParticipants() int     { return l.maxParticipants }
func (l *Lesson) CurrentParticipants() int { return l.currentParticipants }
func (l *Lesson) Price() float64           { return l.price }
func (l *Lesson) Status() LessonStatus     { return l.status }
func (l *Lesson) TrainerID() int64         { return l.trainerID }
func (l *Lesson) HallID() int64            { return l.hallID }
func (l *Lesson) CreatedAt() time.Time     { return l.createdAt }
func (l *Lesson) UpdatedAt() time.Time     { return l.updatedAt }

// HasSpots returns true if at least one participant can still join
func (l *Lesson) HasSpots() bool {
	return l.currentParticipants < l.maxParticipants
}

// AvailableSpots number of free places
func (l *Lesson) AvailableSpots() int {
	return l.maxParticipants - l.currentParticipants
}

// CanBeBooked lesson is scheduled and not full
func (l *Lesson) CanBeBooked() bool {
	return l.status == LessonStatusScheduled && l.HasSpots()
}

// IsActive scheduled and ongoing lessons occupy the hall
func (l *Lesson) IsActive() bool {
	return l.status == LessonStatusScheduled || l.status == LessonStatusOngoing
}

// IsOngoing time-based predicate: now lies inside the slot
func (l *Lesson) IsOngoing(now time.Time) bool {
	return l.slot.Contains(now)
}

// IsCompleted time-based predicate: the slot has ended
func (l *Lesson) IsCompleted(now time.Time) bool {
	return !now.Before(l.slot.End())
}

// AddParticipant increments the counter when a spot is free.
// A full lesson is not an error: false is returned and the counter is unchanged.
func (l *Lesson) AddParticipant() bool {
	if !l.HasSpots() {
		return false
	}
	l.currentParticipants++
	return true
}

// RemoveParticipant decrements the counter; false when there is nobody to remove
func (l *Lesson) RemoveParticipant() bool {
	if l.currentParticipants == 0 {
		return false
	}
	l.currentParticipants--
	return true
}

// Start scheduled -> ongoing
func (l *Lesson) Start(now time.Time) error {
	if l.status != LessonStatusScheduled {
		return &TransitionError{Entity: "lesson", From: string(l.status), Action: "start"}
	}
	l.status = LessonStatusOngoing
	l.updatedAt = now.UTC()
	return nil
}

// Finish scheduled|ongoing -> completed
func (l *Lesson) Finish(now time.Time) error {
	if !l.IsActive() {
		return &TransitionError{Entity: "lesson", From: string(l.status), Action: "finish"}
	}
	l.status = LessonStatusCompleted
	l.updatedAt = now.UTC()
	return nil
}

// Cancel scheduled -> cancelled
func (l *Lesson) Cancel(now time.Time) error {
	if l.status != LessonStatusScheduled {
		return &TransitionError{Entity: "lesson", From: string(l.status), Action: "cancel"}
	}
	l.status = LessonStatusCancelled
	l.updatedAt = now.UTC()
	return nil
}

// SyncWithClock moves the status forward according to the wall clock.
// Returns true if the status changed.
func (l *Lesson) SyncWithClock(now time.Time) bool {
	switch {
	case l.IsActive() && l.IsCompleted(now):
		return l.Finish(now) == nil
	case l.status == LessonStatusScheduled && l.IsOngoing(now):
		return l.Start(now) == nil
	default:
		return false
	}
}

// ParseLessonStatus validates a status string
func ParseLessonStatus(s string) (LessonStatus, error) {
	switch status := LessonStatus(s); status {
	case LessonStatusScheduled, LessonStatusOngoing, LessonStatusCompleted, LessonStatusCancelled:
		return status, nil
	default:
		return "", validationError("unknown lesson status %q", s)
	}
}

// ParseDifficulty validates a difficulty string
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return d, nil
	default:
		return "", validationError("unknown difficulty %q", s)
	}
}
