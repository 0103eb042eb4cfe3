package course

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Course struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Provider      string
	URL           string
	DurationHours int
	Level         string
	Skills        []TaughtSkill
	CreatedAt     time.Time
}

type TaughtSkill struct {
	SkillID     uuid.UUID
	SkillName   string
	LevelTaught int
}

type Enrollment struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CourseID    uuid.UUID
	CourseTitle string
	Status      Status
	Progress    int
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplyProgress moves the enrollment through its lifecycle. StartedAt is set
// on the first non-zero progress and never moved afterwards.
func (e *Enrollment) ApplyProgress(progress int, now time.Time) {
	e.Progress = progress
	e.UpdatedAt = now
	switch {
	case progress >= 100:
		e.Status = StatusCompleted
		if e.StartedAt == nil {
			e.StartedAt = &now
		}
		if e.CompletedAt == nil {
			e.CompletedAt = &now
		}
	case progress > 0:
		e.Status = StatusInProgress
		if e.StartedAt == nil {
			e.StartedAt = &now
		}
		e.CompletedAt = nil
	default:
		e.Status = StatusNotStarted
		e.CompletedAt = nil
	}
}
