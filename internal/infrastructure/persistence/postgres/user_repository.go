package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"skillsync/internal/database"
	"skillsync/internal/domain/user"
)

const userColumns = `id, username, email, password_hash, user_type, created_at, updated_at`

// UserRepository keeps prepared statements for the hot auth lookups.
type UserRepository struct {
	db *sql.DB

	stmtCreate         *sql.Stmt
	stmtGetByID        *sql.Stmt
	stmtGetByEmail     *sql.Stmt
	stmtGetByUsername  *sql.Stmt
	stmtExistsEmail    *sql.Stmt
	stmtExistsUsername *sql.Stmt
}

func NewUserRepository(ctx context.Context, db database.DB) (*UserRepository, error) {
	if db == nil || db.SQLDB() == nil {
		return nil, fmt.Errorf("nil db")
	}
	r := &UserRepository{db: db.SQLDB()}

	prepare := func(dst **sql.Stmt, query string) error {
		s, err := r.db.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}

	steps := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.stmtCreate, `INSERT INTO users (id, username, email, password_hash, user_type) VALUES ($1, $2, $3, $4, $5)`},
		{&r.stmtGetByID, `SELECT ` + userColumns + ` FROM users WHERE id = $1`},
		{&r.stmtGetByEmail, `SELECT ` + userColumns + ` FROM users WHERE email = $1`},
		{&r.stmtGetByUsername, `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`},
		{&r.stmtExistsEmail, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`},
		{&r.stmtExistsUsername, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(username) = lower($1))`},
	}
	for _, s := range steps {
		if err := prepare(s.dst, s.query); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtGetByUsername)
	closeStmt(r.stmtExistsEmail)
	closeStmt(r.stmtExistsUsername)

	return firstErr
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := r.stmtExistsEmail.QueryRowContext(ctx, email).Scan(&ok)
	return ok, err
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var ok bool
	err := r.stmtExistsUsername.QueryRowContext(ctx, username).Scan(&ok)
	return ok, err
}

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Username, u.Email, u.PasswordHash, string(u.UserType))
	return err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.stmtGetByEmail.QueryRowContext(ctx, email))
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return scanUser(r.stmtGetByUsername.QueryRowContext(ctx, username))
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	var typ string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &typ, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.UserType = user.Type(typ)
	return u, nil
}
