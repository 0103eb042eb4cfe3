package dto

import (
	"time"

	"skillsync/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	JobTitle    string    `json:"job_title,omitempty"`
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	CoverLetter string    `json:"cover_letter"`
	MatchScore  int       `json:"match_score"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		JobTitle:    a.JobTitle,
		UserID:      a.UserID,
		Username:    a.Username,
		CoverLetter: a.CoverLetter,
		MatchScore:  a.MatchScore,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func NewApplicationResponses(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewApplicationResponse(it))
	}
	return out
}
