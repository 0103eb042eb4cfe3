package dto

import (
	"time"

	"skillsync/internal/domain/cvanalysis"
	"skillsync/internal/domain/matching"

	"github.com/google/uuid"
)

type CVAnalysisResponse struct {
	ID               uuid.UUID           `json:"id"`
	Analysis         cvanalysis.Analysis `json:"analysis"`
	SkillGapAnalysis matching.GapReport  `json:"skill_gap_analysis"`
	ObjectKey        *string             `json:"object_key,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

func NewCVAnalysisResponse(r cvanalysis.Record) CVAnalysisResponse {
	return CVAnalysisResponse{
		ID:               r.ID,
		Analysis:         r.Analysis,
		SkillGapAnalysis: r.SkillGap,
		ObjectKey:        r.ObjectKey,
		CreatedAt:        r.CreatedAt,
	}
}
