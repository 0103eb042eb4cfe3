package matching

import (
	"math"

	"github.com/google/uuid"
)

// CandidateSkills maps skill id to proficiency level. No entry means level 0.
type CandidateSkills map[uuid.UUID]int

type MatchResult struct {
	MatchScore    int
	MissingSkills []Requirement
}

func Score(candidate CandidateSkills, reqs []Requirement) MatchResult {
	missing := make([]Requirement, 0)

	maxPossible := 0
	total := 0
	for _, r := range reqs {
		maxPossible += r.RequiredLevel * pointsPerLevel

		lvl, held := candidate[r.SkillID]
		if !held {
			missing = append(missing, r)
			continue
		}
		if lvl > 0 {
			total += minInt(lvl, r.RequiredLevel) * pointsPerLevel
		}
	}

	return MatchResult{
		MatchScore:    percentage(total, maxPossible),
		MissingSkills: missing,
	}
}

func percentage(total, maxPossible int) int {
	if maxPossible <= 0 {
		return 0
	}
	score := int(math.Round(float64(total) * 100 / float64(maxPossible)))
	return clampInt(score, 0, 100)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
