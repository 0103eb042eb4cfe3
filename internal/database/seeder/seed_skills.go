package seeder

import (
	"context"
	"fmt"
	"strings"

	"skillsync/internal/database"
)

type SkillsSeeder struct {
	Skills []CatalogSkill
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range s.Skills {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, NULLIF($2, '')) ON CONFLICT DO NOTHING`,
			strings.TrimSpace(it.Name),
			strings.TrimSpace(it.Category),
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
