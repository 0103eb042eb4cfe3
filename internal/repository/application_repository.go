package repository

import (
	"context"

	"skillsync/internal/database"
	"skillsync/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationSelect = `SELECT a.id, a.job_id, j.title, a.user_id, u.username, COALESCE(a.cover_letter, ''),
		 a.match_score, a.status, a.created_at, a.updated_at
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = a.user_id`

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	err := row.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.UserID, &a.Username, &a.CoverLetter,
		&a.MatchScore, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_applications (id, job_id, user_id, cover_letter, match_score, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobID, a.UserID, a.CoverLetter, a.MatchScore, string(a.Status),
	)
	if err != nil {
		return application.Application{}, err
	}
	return r.FindByID(ctx, a.ID)
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+`
		 WHERE a.user_id = $1
		 ORDER BY a.created_at DESC`,
		userID,
	)
}

// ListByJob orders applicants by the score they had when applying.
func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+`
		 WHERE a.job_id = $1
		 ORDER BY a.match_score DESC, a.created_at ASC`,
		jobID,
	)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE job_applications SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return application.Application{}, err
	}
	if affected == 0 {
		return application.Application{}, ErrApplicationNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
