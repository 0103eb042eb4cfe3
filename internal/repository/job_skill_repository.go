package repository

import (
	"context"

	"skillsync/internal/database"
	"skillsync/internal/domain/skill"

	"github.com/google/uuid"
)

type JobSkillRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]skill.JobSkill, error)
	FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]skill.JobSkill, error)
	AggregateDemand(ctx context.Context) ([]skill.Demand, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

const jobSkillSelect = `SELECT js.id, js.job_id, js.skill_id, s.name, js.required_level, js.preferred
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id`

func (r *PostgresJobSkillRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]skill.JobSkill, error) {
	byJob, err := r.query(ctx, jobSkillSelect+`
		 WHERE js.job_id = $1
		 ORDER BY s.name ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	if reqs, ok := byJob[jobID]; ok {
		return reqs, nil
	}
	return []skill.JobSkill{}, nil
}

// FindByJobIDs loads requirements for many jobs in one round trip. Jobs
// without requirements are absent from the map.
func (r *PostgresJobSkillRepository) FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]skill.JobSkill, error) {
	if len(jobIDs) == 0 {
		return map[uuid.UUID][]skill.JobSkill{}, nil
	}
	return r.query(ctx, jobSkillSelect+`
		 WHERE js.job_id = ANY($1::uuid[])
		 ORDER BY js.job_id ASC, s.name ASC`,
		uuidStrings(jobIDs),
	)
}

func (r *PostgresJobSkillRepository) query(ctx context.Context, query string, args ...any) (map[uuid.UUID][]skill.JobSkill, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uuid.UUID][]skill.JobSkill{}
	for rows.Next() {
		var it skill.JobSkill
		if err := rows.Scan(&it.ID, &it.JobID, &it.SkillID, &it.SkillName, &it.RequiredLevel, &it.Preferred); err != nil {
			return nil, err
		}
		out[it.JobID] = append(out[it.JobID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AggregateDemand returns one record per skill referenced by any job. The
// level is the highest stated level and stays nil when no job stated one.
func (r *PostgresJobSkillRepository) AggregateDemand(ctx context.Context) ([]skill.Demand, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, MAX(js.required_level)::int, COUNT(DISTINCT js.job_id)
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 GROUP BY s.id, s.name
		 ORDER BY COUNT(DISTINCT js.job_id) DESC, s.name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Demand, 0)
	for rows.Next() {
		var d skill.Demand
		if err := rows.Scan(&d.SkillID, &d.SkillName, &d.RequiredLevel, &d.JobCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
