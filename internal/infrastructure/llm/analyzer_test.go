package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type scriptedCompleter struct {
	replies []string
	errs    []error
	calls   int
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", errors.New("no reply scripted")
}

func newTestAnalyzer(c Completer) *CVAnalyzer {
	a := NewCVAnalyzer(c, nil)
	a.backoff = time.Millisecond
	return a
}

func TestCleanJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1} ":            `{"a":1}`,
	}
	for in, want := range cases {
		if got := CleanJSON(in); got != want {
			t.Fatalf("CleanJSON(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCVAnalyzer_ParsesFencedJSON(t *testing.T) {
	c := &scriptedCompleter{replies: []string{"```json\n{\"identified_skills\":[{\"name\":\"Go\",\"proficiency_level\":4}],\"strengths\":[\"backend\"]}\n```"}}

	out, err := newTestAnalyzer(c).AnalyzeCV(context.Background(), "cv", []string{"Go"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.IdentifiedSkills) != 1 || out.IdentifiedSkills[0].Name != "Go" || out.IdentifiedSkills[0].ProficiencyLevel != 4 {
		t.Fatalf("unexpected analysis: %+v", out)
	}
}

func TestCVAnalyzer_RetriesTransportErrors(t *testing.T) {
	c := &scriptedCompleter{
		errs:    []error{errors.New("timeout"), nil},
		replies: []string{"", `{"strengths":["x"]}`},
	}

	out, err := newTestAnalyzer(c).AnalyzeCV(context.Background(), "cv", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.calls != 2 || len(out.Strengths) != 1 {
		t.Fatalf("calls=%d analysis=%+v", c.calls, out)
	}
}

func TestCVAnalyzer_GivesUpAfterAttempts(t *testing.T) {
	boom := errors.New("down")
	c := &scriptedCompleter{errs: []error{boom, boom, boom, boom}}

	_, err := newTestAnalyzer(c).AnalyzeCV(context.Background(), "cv", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
	if c.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", c.calls)
	}
}

func TestCVAnalyzer_NonJSONIsNotRetried(t *testing.T) {
	c := &scriptedCompleter{replies: []string{"I cannot help with that.", `{}`}}

	_, err := newTestAnalyzer(c).AnalyzeCV(context.Background(), "cv", nil)
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
	if c.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", c.calls)
	}
}

func TestBuildCVPrompt_IncludesCatalog(t *testing.T) {
	p := BuildCVPrompt("Ten years of Go.", []string{"Go", "PostgreSQL"})
	if !strings.Contains(p, "Skill catalog: Go, PostgreSQL") || !strings.HasSuffix(p, "Ten years of Go.") {
		t.Fatalf("unexpected prompt:\n%s", p)
	}
}

func TestParseAnalysis_LenientProficiencyLevel(t *testing.T) {
	raw := `{"identified_skills":[
		{"name":"Go","proficiency_level":3.5},
		{"name":"SQL","proficiency_level":"4"},
		{"name":"Docker","proficiency_level":" 2.4 "},
		{"name":"Rust","proficiency_level":"expert"},
		{"name":"K8s","proficiency_level":null},
		{"name":"Bash"}
	]}`

	out, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]int{"Go": 4, "SQL": 4, "Docker": 2, "Rust": 0, "K8s": 0, "Bash": 0}
	if len(out.IdentifiedSkills) != len(want) {
		t.Fatalf("expected %d skills, got %+v", len(want), out.IdentifiedSkills)
	}
	for _, s := range out.IdentifiedSkills {
		if s.ProficiencyLevel != want[s.Name] {
			t.Fatalf("%s: level = %d, want %d", s.Name, s.ProficiencyLevel, want[s.Name])
		}
	}
}

func TestBuildCVPrompt_AsksForIntegerLevels(t *testing.T) {
	p := BuildCVPrompt("cv", nil)
	if !strings.Contains(p, `"proficiency_level": integer 1-5`) {
		t.Fatalf("prompt does not constrain levels to integers:\n%s", p)
	}
}
