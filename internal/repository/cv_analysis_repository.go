package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"skillsync/internal/database"
	"skillsync/internal/domain/cvanalysis"

	"github.com/google/uuid"
)

type CVAnalysisRepository interface {
	Create(ctx context.Context, rec cvanalysis.Record) (cvanalysis.Record, error)
	FindByID(ctx context.Context, id uuid.UUID) (cvanalysis.Record, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]cvanalysis.Record, error)
	LatestByUser(ctx context.Context, userID uuid.UUID) (cvanalysis.Record, error)
}

type PostgresCVAnalysisRepository struct {
	db database.DB
}

func NewPostgresCVAnalysisRepository(db database.DB) *PostgresCVAnalysisRepository {
	return &PostgresCVAnalysisRepository{db: db}
}

const cvAnalysisSelect = `SELECT id, user_id, cv_text, object_key, analysis, skill_gap, created_at FROM cv_analyses`

func scanCVAnalysis(row database.Row) (cvanalysis.Record, error) {
	var rec cvanalysis.Record
	var analysisRaw, gapRaw []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.CVText, &rec.ObjectKey, &analysisRaw, &gapRaw, &rec.CreatedAt); err != nil {
		if isNoRows(err) {
			return cvanalysis.Record{}, ErrAnalysisNotFound
		}
		return cvanalysis.Record{}, err
	}
	if err := json.Unmarshal(analysisRaw, &rec.Analysis); err != nil {
		return cvanalysis.Record{}, fmt.Errorf("decode analysis %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(gapRaw, &rec.SkillGap); err != nil {
		return cvanalysis.Record{}, fmt.Errorf("decode skill gap %s: %w", rec.ID, err)
	}
	return rec, nil
}

func (r *PostgresCVAnalysisRepository) Create(ctx context.Context, rec cvanalysis.Record) (cvanalysis.Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	analysisRaw, err := json.Marshal(rec.Analysis)
	if err != nil {
		return cvanalysis.Record{}, err
	}
	gapRaw, err := json.Marshal(rec.SkillGap)
	if err != nil {
		return cvanalysis.Record{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO cv_analyses (id, user_id, cv_text, object_key, analysis, skill_gap)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb)
		 RETURNING created_at`,
		rec.ID, rec.UserID, rec.CVText, rec.ObjectKey, string(analysisRaw), string(gapRaw),
	)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return cvanalysis.Record{}, err
	}
	return rec, nil
}

func (r *PostgresCVAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (cvanalysis.Record, error) {
	return scanCVAnalysis(r.db.QueryRow(ctx, cvAnalysisSelect+` WHERE id = $1`, id))
}

func (r *PostgresCVAnalysisRepository) LatestByUser(ctx context.Context, userID uuid.UUID) (cvanalysis.Record, error) {
	return scanCVAnalysis(r.db.QueryRow(ctx, cvAnalysisSelect+` WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID))
}

func (r *PostgresCVAnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]cvanalysis.Record, error) {
	limit, offset = clampPage(limit, offset, 20, 100)
	rows, err := r.db.Query(ctx, cvAnalysisSelect+`
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cvanalysis.Record, 0)
	for rows.Next() {
		rec, err := scanCVAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
