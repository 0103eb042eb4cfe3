package repository

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSkillNotFound       = errors.New("skill not found")
	ErrUserSkillNotFound   = errors.New("user skill not found")
	ErrUserSkillForbidden  = errors.New("forbidden")
	ErrJobNotFound         = errors.New("job not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrAnalysisNotFound    = errors.New("cv analysis not found")
	ErrApplicationNotFound = errors.New("application not found")
)

func isNoRows(err error) bool {
	return err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func clampPage(limit, offset, def, max int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
