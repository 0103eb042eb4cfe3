package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillsync/internal/domain/application"
	"skillsync/internal/domain/event"
	"skillsync/internal/domain/user"
	"skillsync/internal/repository"

	"github.com/google/uuid"
)

const maxCoverLetterLen = 5000

// MatchScorer scores one job for one candidate.
type MatchScorer interface {
	MatchScoreFor(ctx context.Context, userID, jobID uuid.UUID) (int, error)
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID, jobID uuid.UUID, coverLetter string) (application.Application, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	ListApplicants(ctx context.Context, userID, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, userID, applicationID uuid.UUID, status application.Status) (application.Application, error)
}

type Application struct {
	apps      repository.ApplicationRepository
	jobs      repository.JobRepository
	companies repository.CompanyRepository
	users     user.Repository
	scorer    MatchScorer
	events    EventPublisher
	now       func() time.Time
}

func NewApplicationUsecase(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	companies repository.CompanyRepository,
	users user.Repository,
	scorer MatchScorer,
	events EventPublisher,
) *Application {
	return &Application{
		apps:      apps,
		jobs:      jobs,
		companies: companies,
		users:     users,
		scorer:    scorer,
		events:    publisherOrNoop(events),
		now:       time.Now,
	}
}

func (u *Application) Apply(ctx context.Context, userID, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	coverLetter = strings.TrimSpace(coverLetter)
	if len(coverLetter) > maxCoverLetterLen {
		return application.Application{}, ErrInvalidInput
	}

	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return application.Application{}, ErrUserNotFound
		}
		return application.Application{}, ErrInternal
	}
	if !usr.UserType.CanApply() {
		return application.Application{}, ErrForbidden
	}

	score, err := u.scorer.MatchScoreFor(ctx, userID, jobID)
	if err != nil {
		return application.Application{}, err
	}

	created, err := u.apps.Create(ctx, application.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		UserID:      userID,
		CoverLetter: coverLetter,
		MatchScore:  score,
		Status:      application.StatusPending,
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return application.Application{}, ErrAlreadyApplied
		case isForeignKeyViolation(err):
			return application.Application{}, ErrJobNotFound
		default:
			return application.Application{}, ErrInternal
		}
	}

	u.events.Publish(ctx, event.New(event.TypeApplicationCreated, &userID, created.ID, u.now()))
	return created, nil
}

func (u *Application) ListMine(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	items, err := u.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Application) ListApplicants(ctx context.Context, userID, jobID uuid.UUID) ([]application.Application, error) {
	if err := u.ensureJobOwner(ctx, userID, jobID); err != nil {
		return nil, err
	}
	items, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Application) UpdateStatus(ctx context.Context, userID, applicationID uuid.UUID, status application.Status) (application.Application, error) {
	if !status.Valid() {
		return application.Application{}, ErrInvalidStatus
	}

	existing, err := u.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}
	if err := u.ensureJobOwner(ctx, userID, existing.JobID); err != nil {
		return application.Application{}, err
	}

	updated, err := u.apps.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	applicant := updated.UserID
	u.events.Publish(ctx, event.New(event.TypeApplicationUpdated, &applicant, updated.ID, u.now()))
	return updated, nil
}

func (u *Application) ensureJobOwner(ctx context.Context, userID, jobID uuid.UUID) error {
	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	c, err := u.companies.FindByID(ctx, j.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return ErrCompanyNotFound
		}
		return ErrInternal
	}
	if c.UserID != userID {
		return ErrForbidden
	}
	return nil
}
