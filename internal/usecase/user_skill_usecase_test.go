package usecase

import (
	"context"
	"errors"
	"testing"

	"skillsync/internal/domain/skill"
	"skillsync/internal/repository"

	"github.com/google/uuid"
)

func TestUserSkillUsecase_AddInvalidatesMatches(t *testing.T) {
	cache := newMemCache()
	userID := uuid.New()
	key := JobMatchesCacheKey(userID, JobMatchParams{Limit: 20})
	_ = cache.SetJSON(context.Background(), key, JobMatchPage{}, 0)

	uc := NewUserSkillUsecase(&mockUserSkillRepo{}, &mockSkillRepo{exists: true}, cache, nil)
	got, err := uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{SkillID: uuid.New(), ProficiencyLevel: 4})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ProficiencyLevel != 4 {
		t.Fatalf("unexpected level: %d", got.ProficiencyLevel)
	}
	if ok, _ := cache.Exists(context.Background(), key); ok {
		t.Fatalf("expected cached matches to be invalidated")
	}
	if len(cache.patterns) != 1 || cache.patterns[0] != JobMatchesUserPattern(userID) {
		t.Fatalf("unexpected patterns: %v", cache.patterns)
	}
}

func TestUserSkillUsecase_AddValidation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	uc := NewUserSkillUsecase(&mockUserSkillRepo{}, &mockSkillRepo{exists: true}, nil, nil)
	if _, err := uc.AddUserSkill(ctx, userID, AddUserSkillInput{SkillID: uuid.New(), ProficiencyLevel: 6}); !errors.Is(err, ErrInvalidProficiencyLevel) {
		t.Fatalf("expected ErrInvalidProficiencyLevel, got %v", err)
	}
	if _, err := uc.AddUserSkill(ctx, userID, AddUserSkillInput{ProficiencyLevel: 3}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	uc = NewUserSkillUsecase(&mockUserSkillRepo{}, &mockSkillRepo{exists: false}, nil, nil)
	if _, err := uc.AddUserSkill(ctx, userID, AddUserSkillInput{SkillID: uuid.New(), ProficiencyLevel: 3}); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}

	uc = NewUserSkillUsecase(&mockUserSkillRepo{opErr: errUnique}, &mockSkillRepo{exists: true}, nil, nil)
	if _, err := uc.AddUserSkill(ctx, userID, AddUserSkillInput{SkillID: uuid.New(), ProficiencyLevel: 3}); !errors.Is(err, ErrSkillAlreadyExists) {
		t.Fatalf("expected ErrSkillAlreadyExists, got %v", err)
	}
}

func TestUserSkillUsecase_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	id := uuid.New()
	repo := &mockUserSkillRepo{items: []skill.UserSkill{{ID: id, UserID: userID, SkillID: uuid.New(), SkillName: "Go", ProficiencyLevel: 2}}}
	cache := newMemCache()
	uc := NewUserSkillUsecase(repo, &mockSkillRepo{exists: true}, cache, nil)

	got, err := uc.UpdateUserSkill(ctx, userID, id, UpdateUserSkillInput{ProficiencyLevel: 5})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ProficiencyLevel != 5 {
		t.Fatalf("unexpected level: %d", got.ProficiencyLevel)
	}

	if err := uc.DeleteUserSkill(ctx, userID, id); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.DeleteUserSkill(ctx, userID, id); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
	if len(cache.patterns) != 2 {
		t.Fatalf("expected two invalidations, got %v", cache.patterns)
	}

	uc = NewUserSkillUsecase(&mockUserSkillRepo{opErr: repository.ErrUserSkillForbidden}, &mockSkillRepo{}, nil, nil)
	if err := uc.DeleteUserSkill(ctx, userID, id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
