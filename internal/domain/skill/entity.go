package skill

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	ProficiencyLevel int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// JobSkill is one stored requirement row. RequiredLevel is nil when the
// posting did not state a level.
type JobSkill struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	SkillID       uuid.UUID
	SkillName     string
	RequiredLevel *int
	Preferred     bool
}

// Demand aggregates every requirement row for one skill across all jobs.
type Demand struct {
	SkillID       uuid.UUID
	SkillName     string
	RequiredLevel *int
	JobCount      int
}
