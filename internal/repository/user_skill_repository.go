package repository

import (
	"context"

	"skillsync/internal/database"
	"skillsync/internal/domain/skill"

	"github.com/google/uuid"
)

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	Create(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error)
	Update(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillSelect = `SELECT us.id, us.user_id, us.skill_id, s.name, us.proficiency_level, us.created_at, us.updated_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id`

func scanUserSkill(row database.Row) (skill.UserSkill, error) {
	var us skill.UserSkill
	err := row.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.ProficiencyLevel, &us.CreatedAt, &us.UpdatedAt)
	return us, err
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	rows, err := r.db.Query(ctx, userSkillSelect+`
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkill, 0)
	for rows.Next() {
		us, err := scanUserSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, proficiency_level)
		 VALUES ($1, $2, $3, $4)`,
		us.ID, us.UserID, us.SkillID, us.ProficiencyLevel,
	)
	if err != nil {
		return skill.UserSkill{}, err
	}

	created, err := scanUserSkill(r.db.QueryRow(ctx, userSkillSelect+` WHERE us.id = $1 AND us.user_id = $2`, us.ID, us.UserID))
	if err != nil {
		return skill.UserSkill{}, err
	}
	return created, nil
}

func (r *PostgresUserSkillRepository) Update(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	if err := r.checkOwner(ctx, us.ID, us.UserID); err != nil {
		return skill.UserSkill{}, err
	}

	_, err := r.db.Exec(ctx,
		`UPDATE user_skills
		 SET proficiency_level = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3`,
		us.ProficiencyLevel, us.ID, us.UserID,
	)
	if err != nil {
		return skill.UserSkill{}, err
	}

	updated, err := scanUserSkill(r.db.QueryRow(ctx, userSkillSelect+` WHERE us.id = $1 AND us.user_id = $2`, us.ID, us.UserID))
	if err != nil {
		if isNoRows(err) {
			return skill.UserSkill{}, ErrUserSkillNotFound
		}
		return skill.UserSkill{}, err
	}
	return updated, nil
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if err := r.checkOwner(ctx, id, userID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *PostgresUserSkillRepository) checkOwner(ctx context.Context, id, userID uuid.UUID) error {
	var owner uuid.UUID
	if err := r.db.QueryRow(ctx, `SELECT user_id FROM user_skills WHERE id = $1`, id).Scan(&owner); err != nil {
		if isNoRows(err) {
			return ErrUserSkillNotFound
		}
		return err
	}
	if owner != userID {
		return ErrUserSkillForbidden
	}
	return nil
}
