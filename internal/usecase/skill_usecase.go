package usecase

import (
	"context"
	"strings"

	"skillsync/internal/repository"

	"github.com/google/uuid"
)

type SkillItem struct {
	ID       uuid.UUID
	Name     string
	Category string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	AddSkill(ctx context.Context, name, category string) (SkillItem, error)
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{ID: it.ID, Name: it.Name, Category: it.Category})
	}
	return out, nil
}

func (u *Skill) AddSkill(ctx context.Context, name, category string) (SkillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return SkillItem{}, ErrInvalidInput
	}

	created, err := u.repo.CreateSkill(ctx, name, strings.TrimSpace(category))
	if err != nil {
		if isUniqueViolation(err) {
			return SkillItem{}, ErrSkillAlreadyExists
		}
		return SkillItem{}, ErrInternal
	}
	return SkillItem{ID: created.ID, Name: created.Name, Category: created.Category}, nil
}
