// Package services contains server-side business logic. This file implements
// AccountService, the single owner of user identity, credential hashing and
// verification, and preference persistence.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/wholesaleos/backend/internal/common"
	"github.com/wholesaleos/backend/internal/dbx"
	"github.com/wholesaleos/backend/internal/logging"
	"github.com/wholesaleos/backend/internal/server/models"
	"github.com/wholesaleos/backend/internal/server/repositories/repomanager"
)

// dummyHash is a bcrypt hash compared against when the email is unknown, so
// that VerifyPassword costs one bcrypt verification on both failure paths.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AccountService provides account-related operations:
//   - CreateUser: create a user together with its default preference row
//   - VerifyPassword: check credentials during login
//   - name/password/preference updates and account deletion
//
// The service holds no mutable state; concurrency safety is delegated to the
// database (unique email index, FK cascade).
type AccountService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	logger     logging.Logger
	bcryptCost int
}

// NewAccountService constructs an AccountService using the shared connection,
// repository manager, and the configured bcrypt cost.
func NewAccountService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger, bcryptCost int) *AccountService {
	return &AccountService{
		db:         db,
		repos:      repos,
		logger:     logger.With("module", "accounts"),
		bcryptCost: bcryptCost,
	}
}

// CreateUser hashes the password and inserts the user row together with its
// default preference row in one transaction, so an account can never exist
// without preferences. Email format and password length are validated by the
// caller; uniqueness is enforced here (by the database index) and surfaces as
// common.ErrDuplicateEmail.
func (s *AccountService) CreateUser(ctx context.Context, email, password string, name *string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repos.Users(tx).Create(ctx, &models.User{
			Email:        email,
			PasswordHash: string(hash),
			Name:         name,
		})
		if err != nil {
			return err
		}
		if err := s.repos.Preferences(tx).CreateDefaults(ctx, u.ID); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// GetUserByEmail returns the user with the given email, or common.ErrNotFound.
func (s *AccountService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repos.Users(s.db).GetByEmail(ctx, email)
}

// GetUserByID returns the user with the given id, or common.ErrNotFound.
func (s *AccountService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repos.Users(s.db).GetByID(ctx, id)
}

// VerifyPassword checks the password against the stored hash and returns the
// user on match. Unknown emails and wrong passwords both come back as
// common.ErrInvalidCredentials; the unknown-email path still burns a bcrypt
// compare so the two are indistinguishable to the caller.
func (s *AccountService) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// UpdateUserName overwrites the user's name. Idempotent.
func (s *AccountService) UpdateUserName(ctx context.Context, id int64, name string) error {
	return s.repos.Users(s.db).UpdateName(ctx, id, name)
}

// UpdateUserPassword re-hashes and stores the new password. Checking the old
// password, if desired, is the caller's responsibility.
func (s *AccountService) UpdateUserPassword(ctx context.Context, id int64, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repos.Users(s.db).UpdatePasswordHash(ctx, id, string(hash)); err != nil {
		return err
	}
	s.logger.Info(ctx, "password updated", "user_id", id)
	return nil
}

// GetUserPreferences returns the user's preference row, or common.ErrNotFound.
func (s *AccountService) GetUserPreferences(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	return s.repos.Preferences(s.db).GetByUserID(ctx, userID)
}

// UpdateUserPreferences applies the provided fields only. An empty update is
// a no-op and performs no storage round trip.
func (s *AccountService) UpdateUserPreferences(ctx context.Context, userID int64, upd models.PreferencesUpdate) error {
	if upd.IsZero() {
		return nil
	}
	return s.repos.Preferences(s.db).Update(ctx, userID, upd)
}

// DeleteUser permanently removes the account. The preference row (and any
// other owned rows) are removed by the database cascade.
func (s *AccountService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repos.Users(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}
