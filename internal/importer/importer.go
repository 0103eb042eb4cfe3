package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"skillsync/internal/domain/event"
	"skillsync/internal/domain/job"
	"skillsync/internal/domain/skill"
	"skillsync/internal/repository"
	"skillsync/internal/usecase"
)

const lockTTL = 10 * time.Minute

type JobUpserter interface {
	UpsertByExternalURL(ctx context.Context, j job.Job, reqs []repository.JobRequirementInput) (job.Job, bool, error)
}

type SkillCatalog interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
}

// Locker guards a target against concurrent imports.
type Locker interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

var ErrImportLocked = errors.New("import already running for company")

type Summary struct {
	Targets  int
	Found    int
	Inserted int
	Updated  int
	Failed   int
}

type Importer struct {
	jobs    JobUpserter
	skills  SkillCatalog
	locks   Locker
	events  usecase.EventPublisher
	fetcher Fetcher
	workers int
	rps     int
	logger  *log.Logger
	now     func() time.Time
}

func New(jobs JobUpserter, skills SkillCatalog, locks Locker, events usecase.EventPublisher, fetcher Fetcher, workers int, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.Default()
	}
	if workers <= 0 {
		workers = 4
	}
	return &Importer{
		jobs:    jobs,
		skills:  skills,
		locks:   locks,
		events:  events,
		fetcher: fetcher,
		workers: workers,
		rps:     3,
		logger:  logger,
		now:     time.Now,
	}
}

func lockKey(t Target) string {
	return "import:lock:" + t.CompanyID.String()
}

// Run imports every target in order. A failing target is logged and
// skipped; the returned error joins all target failures.
func (im *Importer) Run(ctx context.Context, targets []Target) (Summary, error) {
	var sum Summary

	catalog, err := im.skills.GetAllSkills(ctx)
	if err != nil {
		return sum, fmt.Errorf("load skill catalog: %w", err)
	}

	var errs []error
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		sum.Targets++
		if err := im.runTarget(ctx, t, catalog, &sum); err != nil {
			im.logger.Printf("pipeline=careers_import status=error company_id=%s list_url=%s err=%v", t.CompanyID, t.ListURL, err)
			errs = append(errs, err)
		}
	}

	if sum.Inserted+sum.Updated > 0 {
		if err := im.locks.DeleteByPattern(ctx, usecase.JobMatchesAllPattern()); err != nil {
			im.logger.Printf("pipeline=careers_import status=cache_invalidate_failed err=%v", err)
		}
	}
	return sum, errors.Join(errs...)
}

func (im *Importer) runTarget(ctx context.Context, t Target, catalog []skill.Skill, sum *Summary) error {
	key := lockKey(t)
	ok, err := im.locks.SetIfNotExists(ctx, key, im.now().UTC().Format(time.RFC3339), lockTTL)
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrImportLocked, t.CompanyID)
	}
	defer func() { _ = im.locks.Delete(context.Background(), key) }()

	listings, err := im.fetcher.Listings(ctx, t)
	if err != nil {
		return fmt.Errorf("list %s: %w", t.ListURL, err)
	}
	sum.Found += len(listings)

	var mu sync.Mutex
	p := newPool(im.workers, im.rps)
	results := p.start(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range results {
			if r.Err != nil {
				mu.Lock()
				sum.Failed++
				mu.Unlock()
				im.logger.Printf("pipeline=careers_import status=error url=%s err=%v", r.Key, r.Err)
			}
		}
	}()

	for _, it := range listings {
		it := it
		if !p.submit(ctx, it.URL, func(ctx context.Context) error {
			inserted, err := im.importOne(ctx, t, it, catalog)
			if err != nil {
				return err
			}
			mu.Lock()
			if inserted {
				sum.Inserted++
			} else {
				sum.Updated++
			}
			mu.Unlock()
			return nil
		}) {
			break
		}
	}
	p.close()
	<-done

	return ctx.Err()
}

func (im *Importer) importOne(ctx context.Context, t Target, it Listing, catalog []skill.Skill) (bool, error) {
	start := im.now()

	post, err := im.fetcher.Posting(ctx, t, it.URL)
	if err != nil {
		return false, err
	}

	title := firstNonEmpty(post.Title, it.Title)
	if title == "" {
		return false, fmt.Errorf("no title at %s", it.URL)
	}
	location := firstNonEmpty(post.Location, it.Location)
	external := it.URL

	reqs := ExtractRequirements(title, post.Description, catalog)
	saved, inserted, err := im.jobs.UpsertByExternalURL(ctx, job.Job{
		CompanyID:   t.CompanyID,
		Title:       title,
		Description: post.Description,
		Location:    location,
		IsRemote:    strings.Contains(strings.ToLower(location), "remote"),
		ExternalURL: &external,
	}, reqs)
	if err != nil {
		return false, err
	}

	if im.events != nil {
		im.events.Publish(ctx, event.New(event.TypeJobsImported, nil, saved.ID, im.now()))
	}
	im.logger.Printf("pipeline=careers_import status=ok job_id=%s skills=%d inserted=%t duration=%s",
		saved.ID, len(reqs), inserted, im.now().Sub(start))
	return inserted, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
