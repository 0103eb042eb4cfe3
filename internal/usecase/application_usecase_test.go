package usecase

import (
	"context"
	"errors"
	"testing"

	"skillsync/internal/domain/application"
	"skillsync/internal/domain/event"
	"skillsync/internal/domain/job"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

type fixedScorer struct {
	score int
	err   error
}

func (s fixedScorer) MatchScoreFor(context.Context, uuid.UUID, uuid.UUID) (int, error) {
	return s.score, s.err
}

type appFixture struct {
	student  user.User
	employer user.User
	company  job.Company
	job      job.Job
	pub      *recordingPublisher
	uc       *Application
}

func newAppFixture(scorer MatchScorer) appFixture {
	f := appFixture{
		student:  user.User{ID: uuid.New(), UserType: user.TypeStudent},
		employer: user.User{ID: uuid.New(), UserType: user.TypeEmployer},
		pub:      &recordingPublisher{},
	}
	f.company = job.Company{ID: uuid.New(), UserID: f.employer.ID}
	f.job = job.Job{ID: uuid.New(), CompanyID: f.company.ID}
	f.uc = NewApplicationUsecase(
		newMockApps(),
		&mockJobRepo{jobs: []job.Job{f.job}},
		newMockCompanies(f.company),
		newMockUsers(f.student, f.employer),
		scorer,
		f.pub,
	)
	return f
}

func TestApplicationUsecase_Apply(t *testing.T) {
	f := newAppFixture(fixedScorer{score: 72})
	ctx := context.Background()

	a, err := f.uc.Apply(ctx, f.student.ID, f.job.ID, " hello ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.MatchScore != 72 || a.Status != application.StatusPending || a.CoverLetter != "hello" {
		t.Fatalf("unexpected application: %+v", a)
	}
	if _, err := f.uc.Apply(ctx, f.student.ID, f.job.ID, ""); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if _, err := f.uc.Apply(ctx, f.employer.ID, f.job.ID, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employer, got %v", err)
	}
	if types := f.pub.types(); len(types) != 1 || types[0] != event.TypeApplicationCreated {
		t.Fatalf("unexpected events: %v", types)
	}
}

func TestApplicationUsecase_ApplyUnknownJob(t *testing.T) {
	f := newAppFixture(fixedScorer{err: ErrJobNotFound})
	if _, err := f.uc.Apply(context.Background(), f.student.ID, uuid.New(), ""); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApplicationUsecase_EmployerFlow(t *testing.T) {
	f := newAppFixture(fixedScorer{score: 50})
	ctx := context.Background()

	a, err := f.uc.Apply(ctx, f.student.ID, f.job.ID, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := f.uc.ListApplicants(ctx, f.student.ID, f.job.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	list, err := f.uc.ListApplicants(ctx, f.employer.ID, f.job.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected applicants: %+v err=%v", list, err)
	}

	if _, err := f.uc.UpdateStatus(ctx, f.employer.ID, a.ID, "hired"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := f.uc.UpdateStatus(ctx, f.student.ID, a.ID, application.StatusAccepted); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	updated, err := f.uc.UpdateStatus(ctx, f.employer.ID, a.ID, application.StatusAccepted)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusAccepted {
		t.Fatalf("unexpected status: %s", updated.Status)
	}

	types := f.pub.types()
	if len(types) != 2 || types[1] != event.TypeApplicationUpdated {
		t.Fatalf("unexpected events: %v", types)
	}
	if ev := f.pub.events[1]; ev.UserID == nil || *ev.UserID != f.student.ID {
		t.Fatalf("update event should target the applicant")
	}

	if _, err := f.uc.UpdateStatus(ctx, f.employer.ID, uuid.New(), application.StatusRejected); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}
