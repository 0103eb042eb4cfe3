package importer

import (
	"sort"
	"strings"

	"skillsync/internal/domain/skill"
	"skillsync/internal/repository"
)

var preferredMarkers = []string{"nice to have", "preferred", "a plus", "bonus", "optional"}

// ExtractRequirements maps catalog skills mentioned in a posting to
// requirement rows. The number of mentions in the description sets the
// level; a skill named only in the title gets no level.
func ExtractRequirements(title, description string, catalog []skill.Skill) []repository.JobRequirementInput {
	titleLower := strings.ToLower(strings.TrimSpace(title))
	bodyLower := strings.ToLower(strings.TrimSpace(description))
	if titleLower == "" && bodyLower == "" {
		return nil
	}

	type hit struct {
		s     skill.Skill
		count int
	}

	hits := make([]hit, 0)
	for _, s := range catalog {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		n := countMentions(bodyLower, name)
		if n == 0 && countMentions(titleLower, name) == 0 {
			continue
		}
		hits = append(hits, hit{s: s, count: n})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].count == hits[j].count {
			return hits[i].s.Name < hits[j].s.Name
		}
		return hits[i].count > hits[j].count
	})

	out := make([]repository.JobRequirementInput, 0, len(hits))
	for _, h := range hits {
		req := repository.JobRequirementInput{SkillID: h.s.ID}
		if h.count > 0 {
			lvl := LevelFromMentions(h.count)
			req.RequiredLevel = &lvl
			req.Preferred = nearMarker(bodyLower, h.s.Name, preferredMarkers)
		}
		out = append(out, req)
	}
	return out
}

func LevelFromMentions(count int) int {
	switch {
	case count >= 4:
		return 5
	case count == 3:
		return 4
	case count == 2:
		return 3
	default:
		return 2
	}
}

func countMentions(textLower, name string) int {
	needle := strings.ToLower(name)
	if textLower == "" || needle == "" {
		return 0
	}
	n := 0
	for from := 0; from < len(textLower); {
		i := strings.Index(textLower[from:], needle)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(needle)
		if boundaryBefore(textLower, start) && boundaryAfter(textLower, end) {
			n++
		}
		from = start + 1
	}
	return n
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordByte(s[i-1]) && s[i-1] != '.'
}

// boundaryAfter lets "Go." end a sentence but keeps "c" out of "c++".
func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	return !isWordByte(s[i]) && s[i] != '+' && s[i] != '#'
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// nearMarker looks 80 bytes either side of the first mention.
func nearMarker(textLower, name string, markers []string) bool {
	idx := strings.Index(textLower, strings.ToLower(name))
	if idx < 0 {
		return false
	}
	start := max(idx-80, 0)
	end := min(idx+len(name)+80, len(textLower))
	window := textLower[start:end]
	for _, m := range markers {
		if strings.Contains(window, m) {
			return true
		}
	}
	return false
}
