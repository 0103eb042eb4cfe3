package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"skillsync/internal/domain/user"
	"skillsync/internal/pkg/jwt"
	ucauth "skillsync/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, claims jwt.Claims) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	cache   Cache
	logger  *log.Logger
	now     func() time.Time
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, cache Cache, logger *log.Logger) *Auth {
	return &Auth{
		authSvc: ucauth.NewService(users),
		users:   users,
		jwt:     jwtSvc,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, "", "", err
	}

	access, refresh, err := u.issue(usr)
	if err != nil {
		return user.User{}, "", "", err
	}
	return usr, access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, "", "", err
	}

	access, refresh, err := u.issue(usr)
	if err != nil {
		return user.User{}, "", "", err
	}
	return usr, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	revoked, err := u.IsRevoked(ctx, claims.ID)
	if err == nil && revoked {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	return u.issue(usr)
}

// Logout denylists the token id until the token would have expired anyway.
// Without Redis the call succeeds and the token stays valid until expiry.
func (u *Auth) Logout(ctx context.Context, claims jwt.Claims) error {
	if claims.UserID == uuid.Nil || claims.ID == "" {
		return ErrUnauthorized
	}
	ttl := claims.ExpiredAt.Sub(u.now())
	if ttl <= 0 {
		return nil
	}
	if u.cache == nil {
		return nil
	}
	if err := u.cache.Set(ctx, RevokedTokenKey(claims.ID), claims.UserID.String(), ttl); err != nil {
		if u.logger != nil {
			u.logger.Printf("auth=logout status=degraded user_id=%s err=%v", claims.UserID, err)
		}
	}
	return nil
}

func (u *Auth) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" || u.cache == nil {
		return false, nil
	}
	return u.cache.Exists(ctx, RevokedTokenKey(tokenID))
}

func (u *Auth) issue(usr user.User) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, string(usr.UserType))
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}
