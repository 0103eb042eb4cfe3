package repository

import (
	"context"

	"skillsync/internal/database"
	"skillsync/internal/domain/job"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	Create(ctx context.Context, c job.Company) (job.Company, error)
	Update(ctx context.Context, c job.Company) (job.Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (job.Company, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (job.Company, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companySelect = `SELECT id, user_id, company_name, industry, size, website, location, description, created_at, updated_at
		 FROM companies`

func scanCompany(row database.Row) (job.Company, error) {
	var c job.Company
	err := row.Scan(&c.ID, &c.UserID, &c.CompanyName, &c.Industry, &c.Size, &c.Website, &c.Location, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return job.Company{}, ErrCompanyNotFound
		}
		return job.Company{}, err
	}
	return c, nil
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c job.Company) (job.Company, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return scanCompany(r.db.QueryRow(ctx,
		`INSERT INTO companies (id, user_id, company_name, industry, size, website, location, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, user_id, company_name, industry, size, website, location, description, created_at, updated_at`,
		c.ID, c.UserID, c.CompanyName, c.Industry, c.Size, c.Website, c.Location, c.Description,
	))
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c job.Company) (job.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`UPDATE companies
		 SET company_name = $1, industry = $2, size = $3, website = $4, location = $5, description = $6, updated_at = now()
		 WHERE user_id = $7
		 RETURNING id, user_id, company_name, industry, size, website, location, description, created_at, updated_at`,
		c.CompanyName, c.Industry, c.Size, c.Website, c.Location, c.Description, c.UserID,
	))
}

func (r *PostgresCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, companySelect+` WHERE id = $1`, id))
}

func (r *PostgresCompanyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (job.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, companySelect+` WHERE user_id = $1`, userID))
}
