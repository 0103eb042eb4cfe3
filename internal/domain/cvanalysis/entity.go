package cvanalysis

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillsync/internal/domain/matching"
)

// IdentifiedSkill is one skill the analysis oracle found in a CV.
type IdentifiedSkill struct {
	Name             string `json:"name"`
	ProficiencyLevel int    `json:"proficiency_level"`
}

// UnmarshalJSON accepts the level as an integer, a fraction or a numeric
// string. Fractions round half away from zero; anything unreadable is 0.
func (s *IdentifiedSkill) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name             string          `json:"name"`
		ProficiencyLevel json.RawMessage `json:"proficiency_level"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Name = raw.Name
	s.ProficiencyLevel = parseLevel(raw.ProficiencyLevel)
	return nil
}

func parseLevel(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return roundLevel(f)
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0
	}
	return roundLevel(f)
}

func roundLevel(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f))
}

// Analysis is the oracle's structured reading of a CV.
type Analysis struct {
	IdentifiedSkills      []IdentifiedSkill `json:"identified_skills"`
	EducationSummary      string            `json:"education_summary"`
	ExperienceSummary     string            `json:"experience_summary"`
	Strengths             []string          `json:"strengths"`
	Weaknesses            []string          `json:"weaknesses"`
	CareerRecommendations []string          `json:"career_recommendations"`
}

// NamedLevels adapts the identified skills for the gap analyzer.
func (a Analysis) NamedLevels() []matching.NamedLevel {
	out := make([]matching.NamedLevel, 0, len(a.IdentifiedSkills))
	for _, s := range a.IdentifiedSkills {
		out = append(out, matching.NamedLevel{Name: s.Name, Level: s.ProficiencyLevel})
	}
	return out
}

// Record is a persisted analysis. SkillGap is a snapshot and is never
// recomputed when the user's skills change later.
type Record struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CVText    string
	ObjectKey *string
	Analysis  Analysis
	SkillGap  matching.GapReport
	CreatedAt time.Time
}
