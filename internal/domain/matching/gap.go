package matching

type NamedLevel struct {
	Name  string
	Level int
}

// NamedSkills is a candidate skill map keyed by NormalizeSkillName.
type NamedSkills map[string]int

// IndexByName builds NamedSkills from an ordered list. A later entry for the
// same normalized name replaces an earlier one.
func IndexByName(skills []NamedLevel) NamedSkills {
	out := make(NamedSkills, len(skills))
	for _, s := range skills {
		key := NormalizeSkillName(s.Name)
		if key == "" {
			continue
		}
		out[key] = s.Level
	}
	return out
}

func (n NamedSkills) Level(name string) int {
	lvl := n[NormalizeSkillName(name)]
	if lvl < 0 {
		return 0
	}
	return lvl
}

type GapEntry struct {
	SkillName     string `json:"skill_name"`
	RequiredLevel int    `json:"required_level"`
	CurrentLevel  int    `json:"current_level"`
	Gap           int    `json:"gap"`
}

type StrongEntry struct {
	SkillName     string `json:"skill_name"`
	RequiredLevel int    `json:"required_level"`
	CurrentLevel  int    `json:"current_level"`
	Surplus       int    `json:"surplus"`
}

type GapReport struct {
	MissingCriticalSkills []GapEntry    `json:"missing_critical_skills"`
	SkillsToImprove       []GapEntry    `json:"skills_to_improve"`
	StrongSkills          []StrongEntry `json:"strong_skills"`
}

func (r GapReport) Len() int {
	return len(r.MissingCriticalSkills) + len(r.SkillsToImprove) + len(r.StrongSkills)
}

func AnalyzeGap(candidate NamedSkills, demand []Demand) GapReport {
	report := GapReport{
		MissingCriticalSkills: make([]GapEntry, 0),
		SkillsToImprove:       make([]GapEntry, 0),
		StrongSkills:          make([]StrongEntry, 0),
	}

	for _, d := range demand {
		current := candidate.Level(d.SkillName)
		switch {
		case current == 0:
			report.MissingCriticalSkills = append(report.MissingCriticalSkills, GapEntry{
				SkillName:     d.SkillName,
				RequiredLevel: d.RequiredLevel,
				CurrentLevel:  0,
				Gap:           d.RequiredLevel,
			})
		case current < d.RequiredLevel:
			report.SkillsToImprove = append(report.SkillsToImprove, GapEntry{
				SkillName:     d.SkillName,
				RequiredLevel: d.RequiredLevel,
				CurrentLevel:  current,
				Gap:           d.RequiredLevel - current,
			})
		default:
			report.StrongSkills = append(report.StrongSkills, StrongEntry{
				SkillName:     d.SkillName,
				RequiredLevel: d.RequiredLevel,
				CurrentLevel:  current,
				Surplus:       current - d.RequiredLevel,
			})
		}
	}

	return report
}

// GapSkillNames lists the names in the missing and improvable buckets, in
// report order.
func (r GapReport) GapSkillNames() []string {
	out := make([]string, 0, len(r.MissingCriticalSkills)+len(r.SkillsToImprove))
	for _, e := range r.MissingCriticalSkills {
		out = append(out, e.SkillName)
	}
	for _, e := range r.SkillsToImprove {
		out = append(out, e.SkillName)
	}
	return out
}
