package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillsync/internal/domain/user"
	"skillsync/internal/pkg/jwt"
	ucauth "skillsync/internal/usecase/auth"

	"github.com/google/uuid"
)

func newTestAuth(cache Cache) (*Auth, *mockUsers, *jwt.HMACService) {
	users := newMockUsers()
	svc := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	return NewAuthUsecase(users, svc, cache, nil), users, svc
}

func TestAuthUsecase_RegisterIssuesTokens(t *testing.T) {
	uc, _, svc := newTestAuth(newMemCache())

	usr, access, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Username: "ana",
		Email:    "Ana@Example.com",
		Password: "password123",
		UserType: user.TypeStudent,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if usr.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != usr.ID || claims.UserType != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	rc, err := svc.ValidateToken(refresh)
	if err != nil || !svc.IsRefreshToken(rc) {
		t.Fatalf("expected refresh token, err=%v", err)
	}
}

func TestAuthUsecase_Refresh(t *testing.T) {
	uc, _, _ := newTestAuth(newMemCache())
	ctx := context.Background()

	_, access, refresh, err := uc.Register(ctx, ucauth.RegisterInput{
		Username: "budi",
		Email:    "budi@example.com",
		Password: "password123",
		UserType: user.TypeEmployer,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, _, err := uc.Refresh(ctx, access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for access token, got %v", err)
	}
	if _, _, err := uc.Refresh(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	newAccess, newRefresh, err := uc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatalf("expected new token pair")
	}
}

func TestAuthUsecase_RefreshUnknownUser(t *testing.T) {
	uc, _, svc := newTestAuth(newMemCache())
	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, _, err := uc.Refresh(context.Background(), tok); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthUsecase_LogoutRevokesToken(t *testing.T) {
	cache := newMemCache()
	uc, _, svc := newTestAuth(cache)
	ctx := context.Background()

	_, access, _, err := uc.Register(ctx, ucauth.RegisterInput{
		Username: "citra",
		Email:    "citra@example.com",
		Password: "password123",
		UserType: user.TypeEmployee,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	revoked, _ := uc.IsRevoked(ctx, claims.ID)
	if revoked {
		t.Fatalf("fresh token reported revoked")
	}
	if err := uc.Logout(ctx, claims); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	revoked, err = uc.IsRevoked(ctx, claims.ID)
	if err != nil || !revoked {
		t.Fatalf("expected token revoked, got %v err=%v", revoked, err)
	}
}

func TestAuthUsecase_LogoutIsBestEffort(t *testing.T) {
	cache := newMemCache()
	cache.setErr = errors.New("redis down")
	uc, _, svc := newTestAuth(cache)

	tok, _ := svc.GenerateAccessToken(uuid.New(), "x@example.com", "student")
	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("expected logout to succeed without redis, got %v", err)
	}
	if err := uc.Logout(context.Background(), jwt.Claims{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty claims, got %v", err)
	}
}
