package user

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeStudent  Type = "student"
	TypeEmployee Type = "employee"
	TypeEmployer Type = "employer"
)

func (t Type) Valid() bool {
	switch t {
	case TypeStudent, TypeEmployee, TypeEmployer:
		return true
	}
	return false
}

// CanApply reports whether this kind of account may apply to jobs.
func (t Type) CanApply() bool {
	return t == TypeStudent || t == TypeEmployee
}

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	UserType     Type
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StudentProfile struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FullName       string
	Education      *string
	GraduationYear *int
	University     *string
	Interests      []string
	ResumeURL      *string
	Bio            *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type EmployeeProfile struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	FullName          string
	CompanyID         *uuid.UUID
	Position          *string
	Department        *string
	YearsOfExperience *int
	Bio               *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
