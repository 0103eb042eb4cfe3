package seeder

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"skillsync/internal/database"
)

// DemoJobsSeeder creates one employer, its company and a handful of postings
// so job matching has data in a fresh environment. The employer password
// hash is not a bcrypt value, so the account cannot log in.
type DemoJobsSeeder struct {
	Demo CatalogDemo
}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (s DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "company_id", "title", "description", "location", "salary", "is_remote", "external_url"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "job_skills", "job_id", "skill_id", "required_level", "preferred"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	email := strings.ToLower(strings.TrimSpace(s.Demo.Employer.Email))
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO users (id, username, email, password_hash, user_type)
		 VALUES ($1, $2, $3, '!', 'employer')
		 ON CONFLICT DO NOTHING`,
		uuid.New(),
		s.Demo.Employer.Username,
		email,
	); err != nil {
		return err
	}

	var userID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&userID); err != nil {
		return fmt.Errorf("demo employer: %w", err)
	}

	co := s.Demo.Company
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO companies (id, user_id, company_name, industry, size, website, location, description)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, co.CompanyName, co.Industry, co.Size, co.Website, co.Location, co.Description,
	); err != nil {
		return err
	}

	var companyID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM companies WHERE user_id = $1`, userID).Scan(&companyID); err != nil {
		return fmt.Errorf("demo company: %w", err)
	}

	for _, j := range s.Demo.Jobs {
		var jobID uuid.UUID
		err := tx.QueryRow(
			ctx,
			`INSERT INTO jobs (id, company_id, title, description, location, salary, is_remote, external_url)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (company_id, external_url) DO UPDATE SET updated_at = jobs.updated_at
			 RETURNING id`,
			companyID, j.Title, j.Description, j.Location, j.Salary, j.IsRemote, seedURL(j.Title),
		).Scan(&jobID)
		if err != nil {
			return err
		}

		for _, req := range j.Skills {
			var level any
			if req.RequiredLevel != nil {
				level = *req.RequiredLevel
			}
			_, err := tx.Exec(
				ctx,
				`INSERT INTO job_skills (id, job_id, skill_id, required_level, preferred)
				 SELECT gen_random_uuid(), $1, s.id, $3, $4 FROM skills s WHERE lower(s.name) = lower($2)
				 ON CONFLICT (job_id, skill_id) DO NOTHING`,
				jobID, strings.TrimSpace(req.Name), level, req.Preferred,
			)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func seedURL(title string) string {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(title), "-"), "-")
	return "seed://" + slug
}
