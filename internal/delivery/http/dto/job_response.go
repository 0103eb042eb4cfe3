package dto

import (
	"time"

	"skillsync/internal/domain/job"
	"skillsync/internal/usecase"

	"github.com/google/uuid"
)

type JobSkillResponse struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	RequiredLevel *int      `json:"required_level"`
	Preferred     bool      `json:"preferred"`
}

type JobResponse struct {
	ID          uuid.UUID          `json:"id"`
	CompanyID   uuid.UUID          `json:"company_id"`
	CompanyName string             `json:"company_name"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Salary      string             `json:"salary"`
	IsRemote    bool               `json:"is_remote"`
	ExternalURL *string            `json:"external_url,omitempty"`
	Skills      []JobSkillResponse `json:"skills"`
	CreatedAt   time.Time          `json:"created_at"`
}

func NewJobResponse(d usecase.JobDetail) JobResponse {
	skills := make([]JobSkillResponse, 0, len(d.Requirements))
	for _, r := range d.Requirements {
		skills = append(skills, JobSkillResponse{
			SkillID:       r.SkillID,
			SkillName:     r.SkillName,
			RequiredLevel: r.RequiredLevel,
			Preferred:     r.Preferred,
		})
	}
	return JobResponse{
		ID:          d.Job.ID,
		CompanyID:   d.Job.CompanyID,
		CompanyName: d.Job.CompanyName,
		Title:       d.Job.Title,
		Description: d.Job.Description,
		Location:    d.Job.Location,
		Salary:      d.Job.Salary,
		IsRemote:    d.Job.IsRemote,
		ExternalURL: d.Job.ExternalURL,
		Skills:      skills,
		CreatedAt:   d.Job.CreatedAt,
	}
}

func NewJobResponses(items []usecase.JobDetail) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJobResponse(it))
	}
	return out
}

type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	Industry    *string   `json:"industry"`
	Size        *string   `json:"size"`
	Website     *string   `json:"website"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCompanyResponse(c job.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		Industry:    c.Industry,
		Size:        c.Size,
		Website:     c.Website,
		Location:    c.Location,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type JobMatchListResponse struct {
	Items  []usecase.JobMatch `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
