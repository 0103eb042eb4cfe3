package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeCVAnalysisCreated  = "cv_analysis.created"
	TypeApplicationCreated = "application.created"
	TypeApplicationUpdated = "application.updated"
	TypeJobCreated         = "job.created"
	TypeJobsImported       = "jobs.imported"
)

type Event struct {
	Type      string     `json:"type"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	EntityID  uuid.UUID  `json:"entity_id"`
	Timestamp time.Time  `json:"timestamp"`
}

func New(typ string, userID *uuid.UUID, entityID uuid.UUID, now time.Time) Event {
	return Event{Type: typ, UserID: userID, EntityID: entityID, Timestamp: now.UTC()}
}
