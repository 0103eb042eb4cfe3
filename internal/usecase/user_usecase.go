package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"skillsync/internal/domain/user"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	GetPublic(ctx context.Context, userID uuid.UUID) (user.User, error)
}

type User struct {
	users user.Repository
}

func NewUserUsecase(users user.Repository) *User {
	return &User{users: users}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	if userID == uuid.Nil {
		return user.User{}, ErrUnauthorized
	}
	return u.get(ctx, userID)
}

// GetPublic drops the email as well as the password hash.
func (u *User) GetPublic(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	usr.Email = ""
	return usr, nil
}

func (u *User) get(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	usr.PasswordHash = ""
	return usr, nil
}
