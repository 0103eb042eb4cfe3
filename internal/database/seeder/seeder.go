package seeder

import (
	"context"

	"skillsync/internal/database"
)

// Seeder must be idempotent: every run after the first is a no-op.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
