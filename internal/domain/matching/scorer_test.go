package matching

import (
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func TestScore_PartialCreditAndMissing(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()

	reqs := SanitizeRequirements([]SkillRequirement{
		{SkillID: s1, SkillName: "Go", RequiredLevel: intPtr(5)},
		{SkillID: s2, SkillName: "SQL", RequiredLevel: intPtr(3)},
	})

	res := Score(CandidateSkills{s1: 3}, reqs)
	if res.MatchScore != 38 {
		t.Fatalf("expected 38, got %d", res.MatchScore)
	}
	if len(res.MissingSkills) != 1 || res.MissingSkills[0].SkillID != s2 {
		t.Fatalf("expected only skill 2 missing, got %+v", res.MissingSkills)
	}
}

func TestScore_NoRequirements(t *testing.T) {
	res := Score(CandidateSkills{uuid.New(): 5}, nil)
	if res.MatchScore != 0 {
		t.Fatalf("expected 0, got %d", res.MatchScore)
	}
	if res.MissingSkills == nil || len(res.MissingSkills) != 0 {
		t.Fatalf("expected empty non-nil missing skills")
	}
}

func TestScore_EmptyCandidate(t *testing.T) {
	reqs := SanitizeRequirements([]SkillRequirement{
		{SkillID: uuid.New(), SkillName: "Go", RequiredLevel: intPtr(4)},
		{SkillID: uuid.New(), SkillName: "Docker"},
		{SkillID: uuid.New(), SkillName: "Redis", RequiredLevel: intPtr(1)},
	})

	res := Score(CandidateSkills{}, reqs)
	if res.MatchScore != 0 {
		t.Fatalf("expected 0, got %d", res.MatchScore)
	}
	if !reflect.DeepEqual(res.MissingSkills, reqs) {
		t.Fatalf("expected all requirements missing, got %+v", res.MissingSkills)
	}
}

func TestScore_AllMetIsHundred(t *testing.T) {
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()
	reqs := SanitizeRequirements([]SkillRequirement{
		{SkillID: s1, RequiredLevel: intPtr(2)},
		{SkillID: s2, RequiredLevel: intPtr(5)},
		{SkillID: s3},
	})

	res := Score(CandidateSkills{s1: 5, s2: 5, s3: 3}, reqs)
	if res.MatchScore != 100 {
		t.Fatalf("expected 100, got %d", res.MatchScore)
	}
	if len(res.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %d", len(res.MissingSkills))
	}
}

func TestScore_ExceedingLevelEarnsNoExtraCredit(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	reqs := SanitizeRequirements([]SkillRequirement{
		{SkillID: s1, RequiredLevel: intPtr(1)},
		{SkillID: s2, RequiredLevel: intPtr(4)},
	})

	// 20 of a possible 100 points.
	res := Score(CandidateSkills{s1: 5}, reqs)
	if res.MatchScore != 20 {
		t.Fatalf("expected 20, got %d", res.MatchScore)
	}
}

func TestScore_ZeroLevelEntryIsHeldButEarnsNothing(t *testing.T) {
	s1 := uuid.New()
	reqs := SanitizeRequirements([]SkillRequirement{{SkillID: s1, RequiredLevel: intPtr(3)}})

	res := Score(CandidateSkills{s1: 0}, reqs)
	if res.MatchScore != 0 {
		t.Fatalf("expected 0, got %d", res.MatchScore)
	}
	if len(res.MissingSkills) != 0 {
		t.Fatalf("expected entry with level 0 not to be listed as missing")
	}
}

func TestScore_UnsetLevelDefaultsToThree(t *testing.T) {
	s1 := uuid.New()
	reqs := SanitizeRequirements([]SkillRequirement{{SkillID: s1}})
	if reqs[0].RequiredLevel != DefaultRequiredLevel {
		t.Fatalf("expected default level %d, got %d", DefaultRequiredLevel, reqs[0].RequiredLevel)
	}

	// 2 of 3 levels: 40/60.
	res := Score(CandidateSkills{s1: 2}, reqs)
	if res.MatchScore != 67 {
		t.Fatalf("expected 67, got %d", res.MatchScore)
	}
}

func TestScore_ZeroLevelDefaultsToThree(t *testing.T) {
	s1 := uuid.New()
	reqs := SanitizeRequirements([]SkillRequirement{{SkillID: s1, RequiredLevel: intPtr(0)}})
	if reqs[0].RequiredLevel != DefaultRequiredLevel {
		t.Fatalf("expected default level %d, got %d", DefaultRequiredLevel, reqs[0].RequiredLevel)
	}

	res := Score(CandidateSkills{s1: 2}, reqs)
	if res.MatchScore != 67 {
		t.Fatalf("expected 67, got %d", res.MatchScore)
	}
}

func TestScore_DuplicateRequirementsScoredIndependently(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	reqs := SanitizeRequirements([]SkillRequirement{
		{SkillID: s1, RequiredLevel: intPtr(2)},
		{SkillID: s1, RequiredLevel: intPtr(4)},
		{SkillID: s2, RequiredLevel: intPtr(4)},
	})

	// max = 40+80+80 = 200, total = 40+80 = 120
	res := Score(CandidateSkills{s1: 5}, reqs)
	if res.MatchScore != 60 {
		t.Fatalf("expected 60, got %d", res.MatchScore)
	}

	// max = 80+80 = 160, total = 80
	deduped := Score(CandidateSkills{s1: 5}, DedupeRequirements(reqs))
	if deduped.MatchScore != 50 {
		t.Fatalf("expected 50 after dedupe, got %d", deduped.MatchScore)
	}
}

func TestScore_BoundedAndIdempotent(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	for reqLvl := 0; reqLvl <= 6; reqLvl++ {
		for candLvl := -1; candLvl <= 7; candLvl++ {
			reqs := SanitizeRequirements([]SkillRequirement{
				{SkillID: ids[0], RequiredLevel: intPtr(reqLvl)},
				{SkillID: ids[1], RequiredLevel: intPtr(5)},
				{SkillID: ids[2]},
			})
			cand := CandidateSkills{ids[0]: candLvl, ids[2]: candLvl, ids[3]: 5}

			a := Score(cand, reqs)
			b := Score(cand, reqs)
			if a.MatchScore < 0 || a.MatchScore > 100 {
				t.Fatalf("score out of range: req=%d cand=%d score=%d", reqLvl, candLvl, a.MatchScore)
			}
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("expected identical results for identical inputs")
			}
		}
	}
}

func TestScore_ConcurrentCallers(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	reqs := SanitizeRequirements([]SkillRequirement{
		{SkillID: s1, RequiredLevel: intPtr(5)},
		{SkillID: s2, RequiredLevel: intPtr(3)},
	})
	cand := CandidateSkills{s1: 3}

	var wg sync.WaitGroup
	errs := make(chan int, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Score(cand, reqs).MatchScore; got != 38 {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("expected 38 from every caller, got %d", got)
	}
}

func TestResolveRequiredLevel(t *testing.T) {
	cases := []struct {
		in   *int
		want int
	}{
		{nil, 3},
		{intPtr(0), 3},
		{intPtr(-2), 1},
		{intPtr(1), 1},
		{intPtr(4), 4},
		{intPtr(9), 5},
	}
	for _, tc := range cases {
		if got := ResolveRequiredLevel(tc.in); got != tc.want {
			t.Fatalf("ResolveRequiredLevel(%v): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestDedupeRequirements_KeepsFirstPositionHighestLevel(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	in := []Requirement{
		{SkillID: a, SkillName: "Go", RequiredLevel: 2},
		{SkillID: b, SkillName: "SQL", RequiredLevel: 3},
		{SkillID: a, SkillName: "Go", RequiredLevel: 5},
	}
	out := DedupeRequirements(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(out))
	}
	if out[0].SkillID != a || out[0].RequiredLevel != 5 {
		t.Fatalf("expected Go first with level 5, got %+v", out[0])
	}
	if in[0].RequiredLevel != 2 {
		t.Fatalf("input must not be modified")
	}
}
