package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const (
	jobMatchesPrefix  = "jobmatches:"
	revokedAuthPrefix = "auth:revoked:"
)

type jobMatchesCacheKeyInput struct {
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
	MinScore int `json:"min_score"`
}

// JobMatchesCacheKey is jobmatches:<user_id>:<sha256 of the normalized params>.
func JobMatchesCacheKey(userID uuid.UUID, params JobMatchParams) string {
	b, _ := json.Marshal(jobMatchesCacheKeyInput{
		Limit:    params.Limit,
		Offset:   params.Offset,
		MinScore: params.MinScore,
	})
	sum := sha256.Sum256(b)
	return jobMatchesPrefix + userID.String() + ":" + hex.EncodeToString(sum[:])
}

func JobMatchesUserPattern(userID uuid.UUID) string {
	return jobMatchesPrefix + userID.String() + ":*"
}

func JobMatchesAllPattern() string {
	return jobMatchesPrefix + "*"
}

func RevokedTokenKey(tokenID string) string {
	return revokedAuthPrefix + tokenID
}
