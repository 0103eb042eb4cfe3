package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillsync/internal/domain/event"
	"skillsync/internal/domain/job"
	"skillsync/internal/domain/skill"

	"github.com/google/uuid"
)

func TestJobUsecase_CreateJob(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	company := job.Company{ID: uuid.New(), UserID: owner, CompanyName: "Acme"}
	jobs := &mockJobRepo{}
	cache := newMemCache()
	pub := &recordingPublisher{}
	uc := NewJobUsecase(jobs, &mockJobSkillRepo{}, newMockCompanies(company), cache, pub, nil)

	goID := uuid.New()
	sqlID := uuid.New()
	got, err := uc.CreateJob(ctx, owner, company.ID, CreateJobInput{
		Title: " Backend Engineer ",
		Skills: []JobSkillInput{
			{SkillID: goID, RequiredLevel: intPtr(4)},
			{SkillID: sqlID, Preferred: true},
		},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Job.Title != "Backend Engineer" {
		t.Fatalf("expected trimmed title, got %q", got.Job.Title)
	}
	if len(jobs.created) != 2 || jobs.created[1].RequiredLevel != nil {
		t.Fatalf("expected omitted level to stay nil, got %+v", jobs.created)
	}
	if len(cache.patterns) != 1 || cache.patterns[0] != JobMatchesAllPattern() {
		t.Fatalf("expected global match invalidation, got %v", cache.patterns)
	}
	if types := pub.types(); len(types) != 1 || types[0] != event.TypeJobCreated {
		t.Fatalf("unexpected events: %v", types)
	}
}

func TestJobUsecase_CreateJobRejects(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	company := job.Company{ID: uuid.New(), UserID: owner}
	uc := NewJobUsecase(&mockJobRepo{}, &mockJobSkillRepo{}, newMockCompanies(company), nil, nil, nil)

	cases := []struct {
		name   string
		userID uuid.UUID
		in     CreateJobInput
		want   error
	}{
		{"missing title", owner, CreateJobInput{}, ErrInvalidInput},
		{"level too high", owner, CreateJobInput{Title: "x", Skills: []JobSkillInput{{SkillID: uuid.New(), RequiredLevel: intPtr(6)}}}, ErrInvalidRequiredLevel},
		{"level zero", owner, CreateJobInput{Title: "x", Skills: []JobSkillInput{{SkillID: uuid.New(), RequiredLevel: intPtr(0)}}}, ErrInvalidRequiredLevel},
		{"not the owner", uuid.New(), CreateJobInput{Title: "x"}, ErrForbidden},
	}
	for _, tc := range cases {
		if _, err := uc.CreateJob(ctx, tc.userID, company.ID, tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if _, err := uc.CreateJob(ctx, owner, uuid.New(), CreateJobInput{Title: "x"}); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestJobUsecase_GetJobWithRequirements(t *testing.T) {
	j := job.Job{ID: uuid.New(), Title: "Data Engineer"}
	reqs := []skill.JobSkill{{JobID: j.ID, SkillID: uuid.New(), SkillName: "SQL"}}
	uc := NewJobUsecase(&mockJobRepo{jobs: []job.Job{j}}, &mockJobSkillRepo{byJob: map[uuid.UUID][]skill.JobSkill{j.ID: reqs}}, newMockCompanies(), nil, nil, nil)

	got, err := uc.GetJob(context.Background(), j.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.Requirements) != 1 || got.Requirements[0].RequiredLevel != nil {
		t.Fatalf("unexpected requirements: %+v", got.Requirements)
	}

	if _, err := uc.GetJob(context.Background(), uuid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobUsecase_SearchRanksTitleHitsFirst(t *testing.T) {
	now := time.Now()
	titleHit := job.Job{ID: uuid.New(), Title: "Golang Engineer", CreatedAt: now.Add(-48 * time.Hour)}
	bodyHit := job.Job{ID: uuid.New(), Title: "Platform Engineer", Description: "we use golang", CreatedAt: now.Add(-48 * time.Hour)}
	repo := &mockJobRepo{byTerm: map[string][]job.Job{"golang": {bodyHit, titleHit}}}
	uc := NewJobUsecase(repo, &mockJobSkillRepo{}, newMockCompanies(), nil, nil, nil)

	got, err := uc.SearchJobs(context.Background(), "Golang!", 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Job.ID != titleHit.ID {
		t.Fatalf("expected title hit first, got %q", got[0].Job.Title)
	}
}

func TestJobUsecase_SearchFallsBackToFirstWord(t *testing.T) {
	hit := job.Job{ID: uuid.New(), Title: "Backend Developer"}
	repo := &mockJobRepo{byTerm: map[string][]job.Job{"backend": {hit}}}
	uc := NewJobUsecase(repo, &mockJobSkillRepo{}, newMockCompanies(), nil, nil, nil)

	got, err := uc.SearchJobs(context.Background(), "backend wizard", 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Job.ID != hit.ID {
		t.Fatalf("expected fallback hit, got %+v", got)
	}
	if len(repo.searches) != 2 {
		t.Fatalf("expected a fallback query, got %v", repo.searches)
	}
}

func TestMergeJobs_DedupesKeepingOrder(t *testing.T) {
	a := job.Job{ID: uuid.New()}
	b := job.Job{ID: uuid.New()}
	got := mergeJobs([]job.Job{a, b}, []job.Job{b, a})
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Fatalf("unexpected merge: %+v", got)
	}
}
