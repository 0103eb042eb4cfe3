package dto

import (
	"skillsync/internal/usecase"

	"github.com/google/uuid"
)

type UserSkillResponse struct {
	ID               uuid.UUID `json:"id"`
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	ProficiencyLevel int       `json:"proficiency_level"`
}

func NewUserSkillResponse(it usecase.UserSkillItem) UserSkillResponse {
	return UserSkillResponse{
		ID:               it.ID,
		SkillID:          it.SkillID,
		SkillName:        it.SkillName,
		ProficiencyLevel: it.ProficiencyLevel,
	}
}

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
}

func NewSkillResponse(it usecase.SkillItem) SkillResponse {
	return SkillResponse{ID: it.ID, Name: it.Name, Category: it.Category}
}
