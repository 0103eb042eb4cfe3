package repository

import (
	"context"
	"strings"

	"skillsync/internal/database"
	"skillsync/internal/domain/job"

	"github.com/google/uuid"
)

// JobRequirementInput is one requirement row to write. A nil RequiredLevel is
// stored as NULL.
type JobRequirementInput struct {
	SkillID       uuid.UUID
	RequiredLevel *int
	Preferred     bool
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job, reqs []JobRequirementInput) (job.Job, error)
	UpsertByExternalURL(ctx context.Context, j job.Job, reqs []JobRequirementInput) (job.Job, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ListJobs(ctx context.Context, limit, offset int) ([]job.Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]job.Job, error)
	SearchByTerms(ctx context.Context, terms []string, limit int) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobSelect = `SELECT j.id, j.company_id, c.company_name, j.title, COALESCE(j.description, ''),
		 COALESCE(j.location, ''), COALESCE(j.salary, ''), j.is_remote, j.external_url, j.created_at, j.updated_at
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id`

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(&j.ID, &j.CompanyID, &j.CompanyName, &j.Title, &j.Description,
		&j.Location, &j.Salary, &j.IsRemote, &j.ExternalURL, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job, reqs []JobRequirementInput) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return job.Job{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, description, location, salary, is_remote, external_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Location, j.Salary, j.IsRemote, j.ExternalURL,
	)
	if err != nil {
		return job.Job{}, err
	}

	if err := insertRequirements(ctx, tx, j.ID, reqs); err != nil {
		return job.Job{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return job.Job{}, err
	}
	return r.FindByID(ctx, j.ID)
}

// UpsertByExternalURL inserts or refreshes an imported posting keyed by
// (company_id, external_url) and replaces its requirement rows. The bool is
// true when a new row was created.
func (r *PostgresJobRepository) UpsertByExternalURL(ctx context.Context, j job.Job, reqs []JobRequirementInput) (job.Job, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return job.Job{}, false, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	var id uuid.UUID
	var inserted bool
	err = tx.QueryRow(ctx,
		`INSERT INTO jobs (id, company_id, title, description, location, salary, is_remote, external_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (company_id, external_url) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			location = EXCLUDED.location,
			updated_at = now()
		 RETURNING id, (xmax = 0)`,
		uuid.New(), j.CompanyID, j.Title, j.Description, j.Location, j.Salary, j.IsRemote, j.ExternalURL,
	).Scan(&id, &inserted)
	if err != nil {
		return job.Job{}, false, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, id); err != nil {
		return job.Job{}, false, err
	}
	if err := insertRequirements(ctx, tx, id, reqs); err != nil {
		return job.Job{}, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return job.Job{}, false, err
	}

	saved, err := r.FindByID(ctx, id)
	if err != nil {
		return job.Job{}, false, err
	}
	return saved, inserted, nil
}

func insertRequirements(ctx context.Context, tx database.Tx, jobID uuid.UUID, reqs []JobRequirementInput) error {
	for _, it := range reqs {
		if it.SkillID == uuid.Nil {
			continue
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO job_skills (id, job_id, skill_id, required_level, preferred)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (job_id, skill_id) DO UPDATE SET
				required_level = EXCLUDED.required_level,
				preferred = EXCLUDED.preferred`,
			uuid.New(), jobID, it.SkillID, it.RequiredLevel, it.Preferred,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context, limit, offset int) ([]job.Job, error) {
	limit, offset = clampPage(limit, offset, 20, 200)
	return r.list(ctx, jobSelect+`
		 ORDER BY j.created_at DESC, j.id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
}

func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]job.Job, error) {
	limit, offset = clampPage(limit, offset, 20, 200)
	return r.list(ctx, jobSelect+`
		 WHERE j.company_id = $1
		 ORDER BY j.created_at DESC, j.id ASC
		 LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
}

// SearchByTerms returns jobs whose title, description or company name
// contains any of the terms. Ranking happens in the caller.
func (r *PostgresJobRepository) SearchByTerms(ctx context.Context, terms []string, limit int) ([]job.Job, error) {
	patterns := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		t = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(t)
		patterns = append(patterns, "%"+t+"%")
	}
	if len(patterns) == 0 {
		return []job.Job{}, nil
	}
	limit, _ = clampPage(limit, 0, 200, 1000)

	return r.list(ctx, jobSelect+`
		 WHERE j.title ILIKE ANY($1::text[])
		    OR j.description ILIKE ANY($1::text[])
		    OR c.company_name ILIKE ANY($1::text[])
		 ORDER BY j.created_at DESC, j.id ASC
		 LIMIT $2`,
		patterns, limit,
	)
}

func (r *PostgresJobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
