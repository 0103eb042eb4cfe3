package usecase

import (
	"context"
	"errors"
	"log"

	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/skill"
	"skillsync/internal/repository"

	"github.com/google/uuid"
)

type AddUserSkillInput struct {
	SkillID          uuid.UUID
	ProficiencyLevel int
}

type UpdateUserSkillInput struct {
	ProficiencyLevel int
}

type UserSkillItem struct {
	ID               uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	ProficiencyLevel int
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error)
	AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (UserSkillItem, error)
	UpdateUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID, in UpdateUserSkillInput) (UserSkillItem, error)
	DeleteUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID) error
}

type UserSkill struct {
	repo   repository.UserSkillRepository
	skills repository.SkillRepository
	cache  Cache
	logger *log.Logger
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, skills repository.SkillRepository, cache Cache, logger *log.Logger) *UserSkill {
	return &UserSkill{repo: repo, skills: skills, cache: cache, logger: logger}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]UserSkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, toUserSkillItem(it))
	}
	return out, nil
}

func (u *UserSkill) AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (UserSkillItem, error) {
	if in.SkillID == uuid.Nil {
		return UserSkillItem{}, ErrInvalidInput
	}
	if !isValidProficiency(in.ProficiencyLevel) {
		return UserSkillItem{}, ErrInvalidProficiencyLevel
	}

	exists, err := u.skills.SkillExistsByID(ctx, in.SkillID)
	if err != nil {
		return UserSkillItem{}, ErrInternal
	}
	if !exists {
		return UserSkillItem{}, ErrSkillNotFound
	}

	created, err := u.repo.Create(ctx, skill.UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillID:          in.SkillID,
		ProficiencyLevel: in.ProficiencyLevel,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return UserSkillItem{}, ErrSkillAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return UserSkillItem{}, ErrSkillNotFound
		}
		return UserSkillItem{}, ErrInternal
	}

	u.invalidateMatches(ctx, userID)
	return toUserSkillItem(created), nil
}

func (u *UserSkill) UpdateUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID, in UpdateUserSkillInput) (UserSkillItem, error) {
	if userSkillID == uuid.Nil {
		return UserSkillItem{}, ErrInvalidInput
	}
	if !isValidProficiency(in.ProficiencyLevel) {
		return UserSkillItem{}, ErrInvalidProficiencyLevel
	}

	updated, err := u.repo.Update(ctx, skill.UserSkill{
		ID:               userSkillID,
		UserID:           userID,
		ProficiencyLevel: in.ProficiencyLevel,
	})
	if err != nil {
		return UserSkillItem{}, mapUserSkillRepoError(err)
	}

	u.invalidateMatches(ctx, userID)
	return toUserSkillItem(updated), nil
}

func (u *UserSkill) DeleteUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID) error {
	if userSkillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, userSkillID, userID); err != nil {
		return mapUserSkillRepoError(err)
	}
	u.invalidateMatches(ctx, userID)
	return nil
}

func (u *UserSkill) invalidateMatches(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, JobMatchesUserPattern(userID)); err != nil && u.logger != nil {
		u.logger.Printf("cache=jobmatches action=invalidate user_id=%s err=%v", userID, err)
	}
}

func mapUserSkillRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrUserSkillNotFound):
		return ErrSkillNotFound
	case errors.Is(err, repository.ErrUserSkillForbidden):
		return ErrForbidden
	default:
		return ErrInternal
	}
}

func toUserSkillItem(us skill.UserSkill) UserSkillItem {
	return UserSkillItem{
		ID:               us.ID,
		SkillID:          us.SkillID,
		SkillName:        us.SkillName,
		ProficiencyLevel: us.ProficiencyLevel,
	}
}

func isValidProficiency(v int) bool {
	return v >= matching.MinLevel && v <= matching.MaxLevel
}
