package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application stores the match score computed when the candidate applied.
type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	JobTitle    string
	UserID      uuid.UUID
	Username    string
	CoverLetter string
	MatchScore  int
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
