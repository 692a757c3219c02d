package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"campaign_forum/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const userColumns = `id, username, email, first_name, last_name, role, image, password_hash, created_at`

const (
	insertUserSQL = `INSERT INTO users (username, email, first_name, last_name, role, image, password_hash, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	selectUserByIDSQL       = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	selectUserByEmailSQL    = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	updateUserProfileSQL    = `UPDATE users SET first_name = ?, last_name = ?, role = ?, image = ? WHERE id = ?`
	updateUserPasswordSQL   = `UPDATE users SET password_hash = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username, u.Email, u.FirstName, u.LastName, u.Role, u.Image, u.PasswordHash, createdAt.UTC())
	if err != nil {
		if col, ok := uniqueViolation(err, "users"); ok {
			return 0, fmt.Errorf("insert user %q: %w", u.Username, &DuplicateError{Column: col, Err: err})
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByID fetches a user by primary key. Returns ErrNotFound if absent.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.selectOne(ctx, selectUserByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := r.selectOne(ctx, selectUserByUsernameSQL, username)
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.selectOne(ctx, selectUserByEmailSQL, email)
	if err != nil {
		return nil, fmt.Errorf("select user by email %q: %w", email, err)
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int, p ProfileUpdate) error {
	res, err := r.db.ExecContext(ctx, updateUserProfileSQL, p.FirstName, p.LastName, p.Role, p.Image, id)
	if err != nil {
		return fmt.Errorf("update profile of user %d: %w", id, err)
	}
	return expectAffected(res, fmt.Sprintf("user %d", id))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, updateUserPasswordSQL, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password of user %d: %w", id, err)
	}
	return expectAffected(res, fmt.Sprintf("user %d", id))
}

// selectOne runs a single-row user query; a missing row yields (nil, nil).
func (r *UserRepository) selectOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Image, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// DuplicateError reports a UNIQUE constraint violation on Column.
type DuplicateError struct {
	Column string
	Err    error
}

func (e *DuplicateError) Error() string { return "duplicate " + e.Column + ": " + e.Err.Error() }
func (e *DuplicateError) Unwrap() error { return e.Err }

// uniqueViolation extracts the column from SQLite's "UNIQUE constraint failed: table.column" message.
func uniqueViolation(err error, table string) (string, bool) {
	const marker = "UNIQUE constraint failed: "
	msg := err.Error()
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	rest := strings.TrimPrefix(msg[i+len(marker):], table+".")
	col, _, _ := strings.Cut(rest, " ")
	col = strings.TrimRight(col, ",)")
	return col, col != ""
}

// expectAffected turns a zero-row write into ErrNotFound.
func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
