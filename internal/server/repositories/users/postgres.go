// Package users provides a PostgreSQL-backed repository for account rows.
// It is the only place where driver error shapes for the users table are
// inspected; callers see the sentinel errors from internal/common.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wholesaleos/backend/internal/common"
	"github.com/wholesaleos/backend/internal/dbx"
	"github.com/wholesaleos/backend/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user row. A violation of the unique email index maps
// to common.ErrDuplicateEmail.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, password_hash, name, created_at, updated_at)
		 VALUES ($1, $2, $3, NOW(), NOW())
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: create user: %v", common.ErrStorage, err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, name, created_at, updated_at FROM users
		 WHERE email = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, name, created_at, updated_at FROM users
		 WHERE id = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get user: %v", common.ErrStorage, err)
	}

	return user, nil
}

// UpdateName overwrites the user's name and refreshes updated_at.
func (r *PostgresRepository) UpdateName(ctx context.Context, id int64, name string) error {
	query :=
		`UPDATE users SET name = $1, updated_at = NOW()
		 WHERE id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, name, id); err != nil {
		return fmt.Errorf("%w: update name: %v", common.ErrStorage, err)
	}
	return nil
}

// UpdatePasswordHash overwrites the stored hash and refreshes updated_at.
func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	query :=
		`UPDATE users SET password_hash = $1, updated_at = NOW()
		 WHERE id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, passwordHash, id); err != nil {
		return fmt.Errorf("%w: update password: %v", common.ErrStorage, err)
	}
	return nil
}

// Delete removes the user row; dependent rows go with it via ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM users
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: delete user: %v", common.ErrStorage, err)
	}
	return nil
}
