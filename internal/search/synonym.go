package search

// Synonyms maps a normalized phrase to alternate phrasings of the same role
// or technology.
var Synonyms = map[string][]string{
	"golang":       {"go"},
	"js":           {"javascript"},
	"ts":           {"typescript"},
	"k8s":          {"kubernetes"},
	"postgres":     {"postgresql"},
	"front end":    {"frontend", "ui developer"},
	"back end":     {"backend", "server developer"},
	"devops":       {"platform engineer", "site reliability"},
	"data analyst": {"data analysis", "business intelligence"},
	"ml":           {"machine learning"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
