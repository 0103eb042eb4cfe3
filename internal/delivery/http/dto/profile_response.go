package dto

import (
	"time"

	"skillsync/internal/usecase"

	"github.com/google/uuid"
)

// ProfileResponse flattens the three profile shapes. Only the fields that
// belong to UserType are filled.
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName       string   `json:"full_name,omitempty"`
	Education      *string  `json:"education,omitempty"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	University     *string  `json:"university,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	ResumeURL      *string  `json:"resume_url,omitempty"`
	Bio            *string  `json:"bio,omitempty"`

	CompanyName string  `json:"company_name,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Size        *string `json:"size,omitempty"`
	Website     *string `json:"website,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`

	CompanyID         *uuid.UUID `json:"company_id,omitempty"`
	Position          *string    `json:"position,omitempty"`
	Department        *string    `json:"department,omitempty"`
	YearsOfExperience *int       `json:"years_of_experience,omitempty"`
}

func NewProfileResponse(p usecase.Profile) ProfileResponse {
	res := ProfileResponse{UserType: string(p.UserType)}
	switch {
	case p.Student != nil:
		s := p.Student
		res.ID, res.UserID, res.CreatedAt, res.UpdatedAt = s.ID, s.UserID, s.CreatedAt, s.UpdatedAt
		res.FullName = s.FullName
		res.Education = s.Education
		res.GraduationYear = s.GraduationYear
		res.University = s.University
		res.Interests = s.Interests
		res.ResumeURL = s.ResumeURL
		res.Bio = s.Bio
	case p.Employee != nil:
		e := p.Employee
		res.ID, res.UserID, res.CreatedAt, res.UpdatedAt = e.ID, e.UserID, e.CreatedAt, e.UpdatedAt
		res.FullName = e.FullName
		res.CompanyID = e.CompanyID
		res.Position = e.Position
		res.Department = e.Department
		res.YearsOfExperience = e.YearsOfExperience
		res.Bio = e.Bio
	case p.Company != nil:
		c := p.Company
		res.ID, res.UserID, res.CreatedAt, res.UpdatedAt = c.ID, c.UserID, c.CreatedAt, c.UpdatedAt
		res.CompanyName = c.CompanyName
		res.Industry = c.Industry
		res.Size = c.Size
		res.Website = c.Website
		res.Location = c.Location
		res.Description = c.Description
	}
	return res
}
