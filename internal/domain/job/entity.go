package job

import (
	"time"

	"github.com/google/uuid"
)

// Company is the employer profile; one per employer account.
type Company struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CompanyName string
	Industry    *string
	Size        *string
	Website     *string
	Location    *string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Job struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	CompanyName string
	Title       string
	Description string
	Location    string
	Salary      string
	IsRemote    bool
	ExternalURL *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
