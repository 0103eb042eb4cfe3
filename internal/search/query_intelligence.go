package search

import (
	"sort"
	"strings"
	"unicode"
)

const maxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lower-cases, drops punctuation and collapses whitespace.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	input = strings.ToLower(input)

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false

	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if unicode.IsSpace(r) || r == '-' || r == '/' {
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// spacedKeys lists multi-word synonym keys in a stable order.
func spacedKeys() []string {
	keys := make([]string, 0, len(Synonyms))
	for k := range Synonyms {
		if strings.Contains(k, " ") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// ExpandQuery returns the normalized query first, then synonym variants. The
// output is deterministic and capped at ten entries.
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)

	replacePrefix := func(phrase string, rest []string) {
		syns := GetSynonyms(phrase)
		restStr := strings.Join(rest, " ")
		for _, syn := range syns {
			add(strings.TrimSpace(syn + " " + restStr))
		}
	}

	if len(words) >= 1 {
		replacePrefix(words[0], words[1:])
	}
	if len(words) >= 2 {
		replacePrefix(words[0]+" "+words[1], words[2:])
	}

	// "frontend jakarta" also tries the spaced key "front end jakarta".
	if len(words) >= 1 {
		first, rest := words[0], words[1:]
		for _, k := range spacedKeys() {
			if strings.ReplaceAll(k, " ", "") != first {
				continue
			}
			add(strings.TrimSpace(k + " " + strings.Join(rest, " ")))
			replacePrefix(k, rest)
			break
		}
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	if ctx.Normalized == "" {
		ctx.Variants = []string{}
		return ctx
	}
	ctx.Variants = ExpandQuery(ctx.Normalized)
	return ctx
}

func FallbackFirstWord(normalized string) string {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
