package usecase

import (
	"context"
	"errors"
	"log"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"skillsync/internal/domain/cvanalysis"
	"skillsync/internal/domain/event"
	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/skill"
	"skillsync/internal/pkg/extract"
	"skillsync/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxCVTextRunes caps the CV text sent to the oracle. The stored record
// keeps the full text.
const maxCVTextRunes = 30000

// CVAnalyzer is the language-model oracle. catalog lists the skill names the
// answer should prefer.
type CVAnalyzer interface {
	AnalyzeCV(ctx context.Context, cvText string, catalog []string) (cvanalysis.Analysis, error)
}

// ObjectStore keeps the original uploaded file.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

type CVUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CVAnalysisUsecase interface {
	AnalyzeText(ctx context.Context, userID uuid.UUID, cvText string) (cvanalysis.Record, error)
	AnalyzeUpload(ctx context.Context, userID uuid.UUID, in CVUpload) (cvanalysis.Record, error)
	ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]cvanalysis.Record, error)
	Get(ctx context.Context, userID, analysisID uuid.UUID) (cvanalysis.Record, error)
}

type CVAnalysis struct {
	records   repository.CVAnalysisRepository
	skills    repository.SkillRepository
	jobSkills repository.JobSkillRepository
	analyzer  CVAnalyzer
	store     ObjectStore
	events    EventPublisher
	maxBytes  int
	logger    *log.Logger
	now       func() time.Time
}

func NewCVAnalysisUsecase(
	records repository.CVAnalysisRepository,
	skills repository.SkillRepository,
	jobSkills repository.JobSkillRepository,
	analyzer CVAnalyzer,
	store ObjectStore,
	events EventPublisher,
	maxBytes int,
	logger *log.Logger,
) *CVAnalysis {
	return &CVAnalysis{
		records:   records,
		skills:    skills,
		jobSkills: jobSkills,
		analyzer:  analyzer,
		store:     store,
		events:    publisherOrNoop(events),
		maxBytes:  maxBytes,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *CVAnalysis) AnalyzeText(ctx context.Context, userID uuid.UUID, cvText string) (cvanalysis.Record, error) {
	return u.analyze(ctx, userID, cvText, nil)
}

func (u *CVAnalysis) AnalyzeUpload(ctx context.Context, userID uuid.UUID, in CVUpload) (cvanalysis.Record, error) {
	if len(in.Data) == 0 {
		return cvanalysis.Record{}, ErrEmptyCV
	}
	if u.maxBytes > 0 && len(in.Data) > u.maxBytes {
		return cvanalysis.Record{}, ErrFileTooLarge
	}

	text, err := extract.Text(in.Filename, in.ContentType, in.Data)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			return cvanalysis.Record{}, ErrUnsupportedFile
		}
		u.logf("cv=extract status=error user_id=%s file=%q err=%v", userID, in.Filename, err)
		return cvanalysis.Record{}, ErrInvalidInput
	}

	var objectKey *string
	if u.store != nil {
		key := "cv/" + userID.String() + "/" + uuid.NewString() + strings.ToLower(path.Ext(in.Filename))
		if err := u.store.Put(ctx, key, in.ContentType, in.Data); err != nil {
			u.logf("cv=upload status=degraded user_id=%s err=%v", userID, err)
		} else {
			objectKey = &key
		}
	}

	return u.analyze(ctx, userID, text, objectKey)
}

func (u *CVAnalysis) analyze(ctx context.Context, userID uuid.UUID, cvText string, objectKey *string) (cvanalysis.Record, error) {
	cvText = strings.TrimSpace(cvText)
	if cvText == "" {
		return cvanalysis.Record{}, ErrEmptyCV
	}
	if u.analyzer == nil {
		return cvanalysis.Record{}, ErrAnalysisFailed
	}

	var (
		catalog []skill.Skill
		demand  []skill.Demand
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = u.skills.GetAllSkills(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		demand, err = u.jobSkills.AggregateDemand(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.logf("cv=load_inputs status=error user_id=%s err=%v", userID, err)
		return cvanalysis.Record{}, ErrInternal
	}

	names := make([]string, 0, len(catalog))
	for _, s := range catalog {
		names = append(names, s.Name)
	}

	promptText, truncated := truncateRunes(cvText, maxCVTextRunes)
	if truncated {
		u.logf("cv=analyze status=truncated user_id=%s max_runes=%d", userID, maxCVTextRunes)
	}

	start := time.Now()
	analysis, err := u.analyzer.AnalyzeCV(ctx, promptText, names)
	if err != nil {
		u.logf("cv=analyze status=error user_id=%s duration_ms=%d err=%v", userID, time.Since(start).Milliseconds(), err)
		return cvanalysis.Record{}, ErrAnalysisFailed
	}
	analysis = sanitizeAnalysis(analysis)

	gap := BuildGapReport(analysis, demand)

	saved, err := u.records.Create(ctx, cvanalysis.Record{
		ID:        uuid.New(),
		UserID:    userID,
		CVText:    cvText,
		ObjectKey: objectKey,
		Analysis:  analysis,
		SkillGap:  gap,
	})
	if err != nil {
		return cvanalysis.Record{}, ErrInternal
	}

	u.logf("cv=analyze status=ok user_id=%s analysis_id=%s skills=%d gap=%d duration_ms=%d",
		userID, saved.ID, len(analysis.IdentifiedSkills), gap.Len(), time.Since(start).Milliseconds())
	u.events.Publish(ctx, event.New(event.TypeCVAnalysisCreated, &userID, saved.ID, u.now()))
	return saved, nil
}

func (u *CVAnalysis) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]cvanalysis.Record, error) {
	items, err := u.records.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *CVAnalysis) Get(ctx context.Context, userID, analysisID uuid.UUID) (cvanalysis.Record, error) {
	rec, err := u.records.FindByID(ctx, analysisID)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return cvanalysis.Record{}, ErrAnalysisNotFound
		}
		return cvanalysis.Record{}, ErrInternal
	}
	if rec.UserID != userID {
		return cvanalysis.Record{}, ErrForbidden
	}
	return rec, nil
}

// BuildGapReport compares the identified skills with aggregate job demand.
// The oracle's own opinion on gaps is never consulted.
func BuildGapReport(a cvanalysis.Analysis, demand []skill.Demand) matching.GapReport {
	records := make([]matching.DemandRecord, 0, len(demand))
	for _, d := range demand {
		records = append(records, matching.DemandRecord{SkillName: d.SkillName, RequiredLevel: d.RequiredLevel})
	}
	return matching.AnalyzeGap(matching.IndexByName(a.NamedLevels()), matching.SanitizeDemand(records))
}

func truncateRunes(s string, n int) (string, bool) {
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	return string([]rune(s)[:n]), true
}

func sanitizeAnalysis(a cvanalysis.Analysis) cvanalysis.Analysis {
	skills := make([]cvanalysis.IdentifiedSkill, 0, len(a.IdentifiedSkills))
	for _, s := range a.IdentifiedSkills {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			continue
		}
		if s.ProficiencyLevel < 0 {
			s.ProficiencyLevel = 0
		}
		if s.ProficiencyLevel > matching.MaxLevel {
			s.ProficiencyLevel = matching.MaxLevel
		}
		skills = append(skills, s)
	}
	a.IdentifiedSkills = skills
	a.EducationSummary = strings.TrimSpace(a.EducationSummary)
	a.ExperienceSummary = strings.TrimSpace(a.ExperienceSummary)
	a.Strengths = nonNilStrings(a.Strengths)
	a.Weaknesses = nonNilStrings(a.Weaknesses)
	a.CareerRecommendations = nonNilStrings(a.CareerRecommendations)
	return a
}

func nonNilStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (u *CVAnalysis) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
