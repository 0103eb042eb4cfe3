package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skillsync/internal/domain/user"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]user.User
	fail error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]user.User{}}
}

func (m *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.fail != nil {
		return false, m.fail
	}
	_, err := m.GetUserByEmail(context.Background(), email)
	return err == nil, nil
}

func (m *memUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	if m.fail != nil {
		return false, m.fail
	}
	_, err := m.GetUserByUsername(context.Background(), username)
	return err == nil, nil
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func newTestService(repo user.Repository) *Service {
	s := NewService(repo)
	s.cost = bcrypt.MinCost
	return s
}

func TestRegister_NormalizesAndHashes(t *testing.T) {
	repo := newMemUsers()
	s := newTestService(repo)

	u, err := s.Register(context.Background(), RegisterInput{
		Username: "  ana  ",
		Email:    "  Ana@Example.COM ",
		Password: "correct horse",
		UserType: user.TypeStudent,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "ana@example.com" || u.Username != "ana" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}

	stored, _ := repo.GetUserByID(context.Background(), u.ID)
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")) != nil {
		t.Fatalf("stored hash does not verify")
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newTestService(newMemUsers())
	cases := []RegisterInput{
		{Username: "ana", Email: "not-an-email", Password: "longenough", UserType: user.TypeStudent},
		{Username: "an", Email: "a@b.co", Password: "longenough", UserType: user.TypeStudent},
		{Username: "ana", Email: "a@b.co", Password: "short", UserType: user.TypeStudent},
		{Username: "ana", Email: "a@b.co", Password: "longenough", UserType: "admin"},
		{Username: "has space", Email: "a@b.co", Password: "longenough", UserType: user.TypeStudent},
	}
	for i, in := range cases {
		if _, err := s.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestRegister_Conflicts(t *testing.T) {
	s := newTestService(newMemUsers())
	ctx := context.Background()
	base := RegisterInput{Username: "ana", Email: "ana@example.com", Password: "longenough", UserType: user.TypeEmployee}
	if _, err := s.Register(ctx, base); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	dupEmail := base
	dupEmail.Username = "other"
	if _, err := s.Register(ctx, dupEmail); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	dupName := base
	dupName.Email = "other@example.com"
	dupName.Username = "ANA"
	if _, err := s.Register(ctx, dupName); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin_ByEmailOrUsername(t *testing.T) {
	s := newTestService(newMemUsers())
	ctx := context.Background()
	created, err := s.Register(ctx, RegisterInput{Username: "budi", Email: "budi@example.com", Password: "longenough", UserType: user.TypeEmployer})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	u, err := s.Login(ctx, LoginInput{Email: "BUDI@example.com", Password: "longenough"})
	if err != nil || u.ID != created.ID {
		t.Fatalf("email login failed: %v", err)
	}
	u, err = s.Login(ctx, LoginInput{Username: "budi", Password: "longenough"})
	if err != nil || u.ID != created.ID {
		t.Fatalf("username login failed: %v", err)
	}
	if _, err := s.Login(ctx, LoginInput{Username: "budi", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, LoginInput{Username: "nobody", Password: "longenough"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_RepositoryFailureIsInternal(t *testing.T) {
	repo := newMemUsers()
	repo.fail = errors.New("db down")
	s := newTestService(repo)
	_, err := s.Register(context.Background(), RegisterInput{Username: "ana", Email: "ana@example.com", Password: "longenough", UserType: user.TypeStudent})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
