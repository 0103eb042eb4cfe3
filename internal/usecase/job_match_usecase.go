package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"time"

	"skillsync/internal/domain/job"
	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/skill"
	"skillsync/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMatchLimit   = 20
	maxMatchLimit       = 100
	matchCandidateLimit = 200
)

type JobMatchParams struct {
	Limit    int
	Offset   int
	MinScore int
}

func (p JobMatchParams) Normalized() JobMatchParams {
	if p.Limit <= 0 {
		p.Limit = defaultMatchLimit
	}
	if p.Limit > maxMatchLimit {
		p.Limit = maxMatchLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.MinScore < 0 {
		p.MinScore = 0
	}
	if p.MinScore > 100 {
		p.MinScore = 100
	}
	return p
}

// JobMatch is the scored view of one job for one candidate. It is cached as
// JSON, hence the tags.
type JobMatch struct {
	JobID         uuid.UUID              `json:"job_id"`
	Title         string                 `json:"title"`
	CompanyID     uuid.UUID              `json:"company_id"`
	CompanyName   string                 `json:"company_name"`
	Location      string                 `json:"location"`
	IsRemote      bool                   `json:"is_remote"`
	CreatedAt     time.Time              `json:"created_at"`
	MatchScore    int                    `json:"match_score"`
	Requirements  []matching.Requirement `json:"requirements"`
	MissingSkills []matching.Requirement `json:"missing_skills"`
}

type JobMatchPage struct {
	Items []JobMatch `json:"items"`
	Total int        `json:"total"`
}

// MatchReportWriter renders a match list into a downloadable document.
type MatchReportWriter interface {
	WriteJobMatches(w io.Writer, matches []JobMatch) error
}

type JobMatchUsecase interface {
	ListJobMatches(ctx context.Context, userID uuid.UUID, params JobMatchParams) (JobMatchPage, error)
	GetJobMatch(ctx context.Context, userID, jobID uuid.UUID) (JobMatch, error)
	ExportJobMatches(ctx context.Context, userID uuid.UUID, w io.Writer) error
}

type JobMatchService struct {
	userSkills repository.UserSkillRepository
	jobs       repository.JobRepository
	jobSkills  repository.JobSkillRepository
	cache      Cache
	report     MatchReportWriter
	cacheTTL   time.Duration
	logger     *log.Logger
	dedupe     bool
}

func NewJobMatchUsecase(
	userSkills repository.UserSkillRepository,
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	cache Cache,
	report MatchReportWriter,
	cacheTTL time.Duration,
	logger *log.Logger,
) *JobMatchService {
	return &JobMatchService{
		userSkills: userSkills,
		jobs:       jobs,
		jobSkills:  jobSkills,
		cache:      cache,
		report:     report,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// WithRequirementDedupe makes a skill listed twice on a job count once, at
// the highest level listed. Off by default: every listed row is scored.
func (u *JobMatchService) WithRequirementDedupe(on bool) *JobMatchService {
	u.dedupe = on
	return u
}

func (u *JobMatchService) ListJobMatches(ctx context.Context, userID uuid.UUID, params JobMatchParams) (JobMatchPage, error) {
	if userID == uuid.Nil {
		return JobMatchPage{}, ErrUnauthorized
	}
	params = params.Normalized()

	key := JobMatchesCacheKey(userID, params)
	if u.cache != nil {
		var cached JobMatchPage
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	all, err := u.scoreAll(ctx, userID, params.MinScore)
	if err != nil {
		return JobMatchPage{}, err
	}

	page := JobMatchPage{Items: paginate(all, params.Offset, params.Limit), Total: len(all)}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, page, u.cacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("cache=jobmatches action=set user_id=%s err=%v", userID, err)
		}
	}
	return page, nil
}

func (u *JobMatchService) GetJobMatch(ctx context.Context, userID, jobID uuid.UUID) (JobMatch, error) {
	if userID == uuid.Nil {
		return JobMatch{}, ErrUnauthorized
	}

	var (
		candidate matching.CandidateSkills
		j         job.Job
		reqs      []skill.JobSkill
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidate, err = u.candidate(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		j, err = u.jobs.FindByID(gctx, jobID)
		if err != nil {
			if errors.Is(err, repository.ErrJobNotFound) {
				return ErrJobNotFound
			}
			return ErrInternal
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reqs, err = u.jobSkills.FindByJobID(gctx, jobID)
		if err != nil {
			return ErrInternal
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return JobMatch{}, err
	}

	return u.scoreJob(candidate, j, reqs), nil
}

func (u *JobMatchService) ExportJobMatches(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if u.report == nil {
		return ErrInternal
	}
	all, err := u.scoreAll(ctx, userID, 0)
	if err != nil {
		return err
	}
	if err := u.report.WriteJobMatches(w, all); err != nil {
		if u.logger != nil {
			u.logger.Printf("export=jobmatches status=error user_id=%s err=%v", userID, err)
		}
		return ErrInternal
	}
	return nil
}

// MatchScoreFor scores one job for one candidate. Applications use it to
// freeze the score at apply time.
func (u *JobMatchService) MatchScoreFor(ctx context.Context, userID, jobID uuid.UUID) (int, error) {
	m, err := u.GetJobMatch(ctx, userID, jobID)
	if err != nil {
		return 0, err
	}
	return m.MatchScore, nil
}

func (u *JobMatchService) scoreAll(ctx context.Context, userID uuid.UUID, minScore int) ([]JobMatch, error) {
	var (
		candidate matching.CandidateSkills
		jobs      []job.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidate, err = u.candidate(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = u.jobs.ListJobs(gctx, matchCandidateLimit, 0)
		if err != nil {
			return ErrInternal
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]JobMatch, 0, len(jobs))
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
		m := u.scoreJob(candidate, j, reqsByJob[j.ID])
		if m.MatchScore < minScore {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].MatchScore > out[k].MatchScore
	})
	return out, nil
}

// candidate loads the user's skills. An empty profile is valid and scores
// every job at 0.
func (u *JobMatchService) candidate(ctx context.Context, userID uuid.UUID) (matching.CandidateSkills, error) {
	items, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make(matching.CandidateSkills, len(items))
	for _, it := range items {
		out[it.SkillID] = it.ProficiencyLevel
	}
	return out, nil
}

func (u *JobMatchService) scoreJob(candidate matching.CandidateSkills, j job.Job, rows []skill.JobSkill) JobMatch {
	reqs := matching.SanitizeRequirements(toSkillRequirements(rows))
	if u.dedupe {
		reqs = matching.DedupeRequirements(reqs)
	}
	res := matching.Score(candidate, reqs)
	return JobMatch{
		JobID:         j.ID,
		Title:         j.Title,
		CompanyID:     j.CompanyID,
		CompanyName:   j.CompanyName,
		Location:      j.Location,
		IsRemote:      j.IsRemote,
		CreatedAt:     j.CreatedAt,
		MatchScore:    res.MatchScore,
		Requirements:  reqs,
		MissingSkills: res.MissingSkills,
	}
}

func toSkillRequirements(rows []skill.JobSkill) []matching.SkillRequirement {
	out := make([]matching.SkillRequirement, 0, len(rows))
	for _, r := range rows {
		out = append(out, matching.SkillRequirement{
			SkillID:       r.SkillID,
			SkillName:     r.SkillName,
			RequiredLevel: r.RequiredLevel,
			Preferred:     r.Preferred,
		})
	}
	return out
}

func paginate(items []JobMatch, offset, limit int) []JobMatch {
	if offset >= len(items) {
		return []JobMatch{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
