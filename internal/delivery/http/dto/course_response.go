package dto

import (
	"time"

	"skillsync/internal/domain/course"
	"skillsync/internal/usecase"

	"github.com/google/uuid"
)

type TaughtSkillResponse struct {
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name"`
	LevelTaught int       `json:"level_taught"`
}

type CourseResponse struct {
	ID            uuid.UUID             `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Provider      string                `json:"provider"`
	URL           string                `json:"url"`
	DurationHours int                   `json:"duration_hours"`
	Level         string                `json:"level"`
	Skills        []TaughtSkillResponse `json:"skills"`
}

func NewCourseResponse(c course.Course) CourseResponse {
	skills := make([]TaughtSkillResponse, 0, len(c.Skills))
	for _, s := range c.Skills {
		skills = append(skills, TaughtSkillResponse{SkillID: s.SkillID, SkillName: s.SkillName, LevelTaught: s.LevelTaught})
	}
	return CourseResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Provider:      c.Provider,
		URL:           c.URL,
		DurationHours: c.DurationHours,
		Level:         c.Level,
		Skills:        skills,
	}
}

type EnrollmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	CourseID    uuid.UUID  `json:"course_id"`
	CourseTitle string     `json:"course_title"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewEnrollmentResponse(e course.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:          e.ID,
		CourseID:    e.CourseID,
		CourseTitle: e.CourseTitle,
		Status:      string(e.Status),
		Progress:    e.Progress,
		StartedAt:   e.StartedAt,
		CompletedAt: e.CompletedAt,
		CreatedAt:   e.CreatedAt,
	}
}

type CourseRecommendationResponse struct {
	Course        CourseResponse `json:"course"`
	CoveredSkills []string       `json:"covered_skills"`
}

func NewCourseRecommendationResponse(r usecase.CourseRecommendation) CourseRecommendationResponse {
	return CourseRecommendationResponse{Course: NewCourseResponse(r.Course), CoveredSkills: r.CoveredSkills}
}
