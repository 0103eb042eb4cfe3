package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"skillsync/internal/domain/cvanalysis"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 500 * time.Millisecond
)

// CVAnalyzer turns CV text into a structured cvanalysis.Analysis. Transport
// failures are retried; an answer that is not the expected JSON is not.
type CVAnalyzer struct {
	llm      Completer
	attempts int
	backoff  time.Duration
	logger   *log.Logger
}

func NewCVAnalyzer(llm Completer, logger *log.Logger) *CVAnalyzer {
	return &CVAnalyzer{llm: llm, attempts: defaultAttempts, backoff: defaultBackoff, logger: logger}
}

func (a *CVAnalyzer) AnalyzeCV(ctx context.Context, cvText string, catalog []string) (cvanalysis.Analysis, error) {
	if a == nil || a.llm == nil {
		return cvanalysis.Analysis{}, ErrNotConfigured
	}
	prompt := BuildCVPrompt(cvText, catalog)

	return retry(ctx, a.attempts, a.backoff, func() (cvanalysis.Analysis, error) {
		raw, err := a.llm.Complete(ctx, prompt)
		if err != nil {
			if a.logger != nil {
				a.logger.Printf("llm=cv_analysis status=retry err=%v", err)
			}
			return cvanalysis.Analysis{}, err
		}
		out, err := ParseAnalysis(raw)
		if err != nil {
			return cvanalysis.Analysis{}, permanent{err: err}
		}
		return out, nil
	})
}

func ParseAnalysis(raw string) (cvanalysis.Analysis, error) {
	var out cvanalysis.Analysis
	clean := CleanJSON(raw)
	if !strings.HasPrefix(clean, "{") {
		return out, ErrBadResponse
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return out, nil
}

func BuildCVPrompt(cvText string, catalog []string) string {
	var b strings.Builder
	b.WriteString(`Analyze the CV below and extract the candidate's skills.

Rules:
- Prefer skill names from the catalog when the CV mentions them. Use the catalog spelling.
- Rate each skill with a whole number from 1 (beginner) to 5 (expert) based only on the CV text.
- Do not invent experience that the CV does not state.

Return only a JSON object with this shape:
{
  "identified_skills": [{"name": string, "proficiency_level": integer 1-5}],
  "education_summary": string,
  "experience_summary": string,
  "strengths": [string],
  "weaknesses": [string],
  "career_recommendations": [string]
}
`)
	if len(catalog) > 0 {
		b.WriteString("\nSkill catalog: ")
		b.WriteString(strings.Join(catalog, ", "))
		b.WriteString("\n")
	}
	b.WriteString("\nCV:\n")
	b.WriteString(cvText)
	return b.String()
}
