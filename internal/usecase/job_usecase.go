package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"skillsync/internal/domain/event"
	"skillsync/internal/domain/job"
	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/skill"
	"skillsync/internal/repository"
	"skillsync/internal/search"

	"github.com/google/uuid"
)

const (
	searchCandidateLimit = 200
	searchFallbackMin    = 5
)

type JobSkillInput struct {
	SkillID       uuid.UUID
	RequiredLevel *int
	Preferred     bool
}

type CreateJobInput struct {
	Title       string
	Description string
	Location    string
	Salary      string
	IsRemote    bool
	Skills      []JobSkillInput
}

// JobDetail is a job with its stored requirement rows. RequiredLevel stays
// nil on rows that never had one.
type JobDetail struct {
	Job          job.Job
	Requirements []skill.JobSkill
}

type JobUsecase interface {
	GetCompany(ctx context.Context, companyID uuid.UUID) (job.Company, error)
	ListCompanyJobs(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]JobDetail, error)
	CreateJob(ctx context.Context, userID, companyID uuid.UUID, in CreateJobInput) (JobDetail, error)
	ListJobs(ctx context.Context, limit, offset int) ([]JobDetail, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (JobDetail, error)
	SearchJobs(ctx context.Context, query string, limit int) ([]JobDetail, error)
}

type Job struct {
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
	companies repository.CompanyRepository
	cache     Cache
	events    EventPublisher
	logger    *log.Logger
	now       func() time.Time
}

func NewJobUsecase(
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	companies repository.CompanyRepository,
	cache Cache,
	events EventPublisher,
	logger *log.Logger,
) *Job {
	return &Job{
		jobs:      jobs,
		jobSkills: jobSkills,
		companies: companies,
		cache:     cache,
		events:    publisherOrNoop(events),
		logger:    logger,
		now:       time.Now,
	}
}

func (u *Job) GetCompany(ctx context.Context, companyID uuid.UUID) (job.Company, error) {
	c, err := u.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return job.Company{}, ErrCompanyNotFound
		}
		return job.Company{}, ErrInternal
	}
	return c, nil
}

func (u *Job) ListCompanyJobs(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]JobDetail, error) {
	if _, err := u.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}
	jobs, err := u.jobs.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return u.withRequirements(ctx, jobs)
}

func (u *Job) CreateJob(ctx context.Context, userID, companyID uuid.UUID, in CreateJobInput) (JobDetail, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return JobDetail{}, ErrInvalidInput
	}

	reqs := make([]repository.JobRequirementInput, 0, len(in.Skills))
	seen := make(map[uuid.UUID]struct{}, len(in.Skills))
	for _, s := range in.Skills {
		if s.SkillID == uuid.Nil {
			return JobDetail{}, ErrInvalidInput
		}
		if s.RequiredLevel != nil && (*s.RequiredLevel < matching.MinLevel || *s.RequiredLevel > matching.MaxLevel) {
			return JobDetail{}, ErrInvalidRequiredLevel
		}
		if _, dup := seen[s.SkillID]; dup {
			return JobDetail{}, ErrInvalidInput
		}
		seen[s.SkillID] = struct{}{}
		reqs = append(reqs, repository.JobRequirementInput{
			SkillID:       s.SkillID,
			RequiredLevel: s.RequiredLevel,
			Preferred:     s.Preferred,
		})
	}

	company, err := u.GetCompany(ctx, companyID)
	if err != nil {
		return JobDetail{}, err
	}
	if company.UserID != userID {
		return JobDetail{}, ErrForbidden
	}

	created, err := u.jobs.Create(ctx, job.Job{
		CompanyID:   companyID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Salary:      strings.TrimSpace(in.Salary),
		IsRemote:    in.IsRemote,
	}, reqs)
	if err != nil {
		if isForeignKeyViolation(err) {
			return JobDetail{}, ErrSkillNotFound
		}
		return JobDetail{}, ErrInternal
	}

	u.invalidateAllMatches(ctx)
	u.events.Publish(ctx, event.New(event.TypeJobCreated, &userID, created.ID, u.now()))

	return u.detail(ctx, created)
}

func (u *Job) ListJobs(ctx context.Context, limit, offset int) ([]JobDetail, error) {
	jobs, err := u.jobs.ListJobs(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return u.withRequirements(ctx, jobs)
}

func (u *Job) GetJob(ctx context.Context, jobID uuid.UUID) (JobDetail, error) {
	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobDetail{}, ErrJobNotFound
		}
		return JobDetail{}, ErrInternal
	}
	return u.detail(ctx, j)
}

// SearchJobs expands the query with synonyms, falls back to the first word
// when the expansion finds too little, then ranks by relevance and freshness.
func (u *Job) SearchJobs(ctx context.Context, query string, limit int) ([]JobDetail, error) {
	qc := search.ProcessQuery(query)
	if qc.Normalized == "" {
		return u.ListJobs(ctx, limit, 0)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	found, err := u.jobs.SearchByTerms(ctx, qc.Variants, searchCandidateLimit)
	if err != nil {
		return nil, ErrInternal
	}

	if len(found) < searchFallbackMin {
		if first := search.FallbackFirstWord(qc.Normalized); first != "" && first != qc.Normalized {
			more, err := u.jobs.SearchByTerms(ctx, []string{first}, searchCandidateLimit)
			if err != nil {
				return nil, ErrInternal
			}
			found = mergeJobs(found, more)
		}
	}

	byID := make(map[uuid.UUID]job.Job, len(found))
	candidates := make([]search.Job, 0, len(found))
	for i, j := range found {
		byID[j.ID] = j
		candidates = append(candidates, search.Job{
			OriginalIndex: i,
			ID:            j.ID,
			Title:         j.Title,
			CompanyName:   j.CompanyName,
			Location:      j.Location,
			Description:   j.Description,
			CreatedAt:     j.CreatedAt,
		})
	}

	ranked := search.RankJobs(candidates, qc.Variants, u.now())
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]job.Job, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, byID[r.ID])
	}
	return u.withRequirements(ctx, out)
}

func (u *Job) detail(ctx context.Context, j job.Job) (JobDetail, error) {
	reqs, err := u.jobSkills.FindByJobID(ctx, j.ID)
	if err != nil {
		return JobDetail{}, ErrInternal
	}
	return JobDetail{Job: j, Requirements: reqs}, nil
}

func (u *Job) withRequirements(ctx context.Context, jobs []job.Job) ([]JobDetail, error) {
	out := make([]JobDetail, 0, len(jobs))
	if len(jobs) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	reqsByJob, err := u.jobSkills.FindByJobIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	for _, j := range jobs {
		reqs := reqsByJob[j.ID]
		if reqs == nil {
			reqs = []skill.JobSkill{}
		}
		out = append(out, JobDetail{Job: j, Requirements: reqs})
	}
	return out, nil
}

func (u *Job) invalidateAllMatches(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, JobMatchesAllPattern()); err != nil && u.logger != nil {
		u.logger.Printf("cache=jobmatches action=invalidate_all err=%v", err)
	}
}

func mergeJobs(a, b []job.Job) []job.Job {
	seen := make(map[uuid.UUID]struct{}, len(a)+len(b))
	out := make([]job.Job, 0, len(a)+len(b))
	for _, list := range [][]job.Job{a, b} {
		for _, j := range list {
			if _, ok := seen[j.ID]; ok {
				continue
			}
			seen[j.ID] = struct{}{}
			out = append(out, j)
		}
	}
	return out
}
