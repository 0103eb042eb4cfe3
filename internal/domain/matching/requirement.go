package matching

import (
	"strings"

	"github.com/google/uuid"
)

const (
	MinLevel             = 1
	MaxLevel             = 5
	DefaultRequiredLevel = 3

	pointsPerLevel = 20
)

// SkillRequirement is a requirement as stored by a job or course. A nil or
// zero RequiredLevel means the owner never set one.
type SkillRequirement struct {
	SkillID       uuid.UUID
	SkillName     string
	RequiredLevel *int
	Preferred     bool
}

// Requirement is a SkillRequirement with its level resolved.
type Requirement struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	RequiredLevel int       `json:"required_level"`
	Preferred     bool      `json:"preferred"`
}

type DemandRecord struct {
	SkillName     string
	RequiredLevel *int
}

type Demand struct {
	SkillName     string
	RequiredLevel int
}

// ResolveRequiredLevel treats nil and 0 as unset. Other values are clamped
// to MinLevel..MaxLevel.
func ResolveRequiredLevel(v *int) int {
	if v == nil || *v == 0 {
		return DefaultRequiredLevel
	}
	return clampInt(*v, MinLevel, MaxLevel)
}

func SanitizeRequirements(reqs []SkillRequirement) []Requirement {
	out := make([]Requirement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, Requirement{
			SkillID:       r.SkillID,
			SkillName:     r.SkillName,
			RequiredLevel: ResolveRequiredLevel(r.RequiredLevel),
			Preferred:     r.Preferred,
		})
	}
	return out
}

func SanitizeDemand(records []DemandRecord) []Demand {
	out := make([]Demand, 0, len(records))
	for _, d := range records {
		out = append(out, Demand{
			SkillName:     d.SkillName,
			RequiredLevel: ResolveRequiredLevel(d.RequiredLevel),
		})
	}
	return out
}

// DedupeRequirements collapses repeated skill ids into the first position,
// keeping the highest required level seen. Score does not call it; job
// matching applies it only when requirement dedupe is enabled.
func DedupeRequirements(reqs []Requirement) []Requirement {
	out := make([]Requirement, 0, len(reqs))
	pos := make(map[uuid.UUID]int, len(reqs))
	for _, r := range reqs {
		if i, ok := pos[r.SkillID]; ok {
			if r.RequiredLevel > out[i].RequiredLevel {
				out[i].RequiredLevel = r.RequiredLevel
			}
			continue
		}
		pos[r.SkillID] = len(out)
		out = append(out, r)
	}
	return out
}

// NormalizeSkillName is the only place skill names are folded for comparison.
// "Java Development" and "Java" stay different skills.
func NormalizeSkillName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
