package seeder

import (
	"context"
	"fmt"
	"strings"

	"skillsync/internal/database"
)

type CoursesSeeder struct {
	Courses []CatalogCourse
}

func (CoursesSeeder) Name() string { return "courses" }

func (s CoursesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "courses", "id", "title", "provider", "url", "duration_hours", "level", "description"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "course_skills", "course_id", "skill_id", "level_taught"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, c := range s.Courses {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO courses (id, title, provider, url, duration_hours, level, description)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
			 ON CONFLICT (title) DO NOTHING`,
			strings.TrimSpace(c.Title),
			c.Provider,
			c.URL,
			c.DurationHours,
			c.Level,
			c.Description,
		)
		if err != nil {
			return err
		}

		for _, ref := range c.Skills {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO course_skills (course_id, skill_id, level_taught)
				 SELECT c.id, s.id, $3
				 FROM courses c, skills s
				 WHERE c.title = $1 AND lower(s.name) = lower($2)
				 ON CONFLICT (course_id, skill_id) DO NOTHING`,
				strings.TrimSpace(c.Title),
				strings.TrimSpace(ref.Name),
				ref.Level,
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
