// Package preferences provides a PostgreSQL-backed repository for the 1:1
// user preference rows. Partial updates keep the per-field SQL fragments
// static and assemble only the placeholder positions dynamically, so values
// always travel through parameter binding.
package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

// CreateDefaults inserts the default preference row for a freshly created
// user (alert threshold 80, email alerts on, no quiet hours).
func (r *PostgresRepository) CreateDefaults(ctx context.Context, userID int64) error {
	query :=
		`INSERT INTO user_preferences (user_id, alert_threshold, email_alerts, created_at)
		 VALUES ($1, $2, $3, NOW())
		 `

	_, err := r.db.ExecContext(ctx, query,
		userID, models.DefaultAlertThreshold, models.DefaultEmailAlerts)
	if err != nil {
		return fmt.Errorf("%w: create preferences: %v", common.ErrStorage, err)
	}
	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	query :=
		`SELECT id, user_id, alert_threshold, email_alerts, quiet_hours_start, quiet_hours_end, created_at
		 FROM user_preferences
		 WHERE user_id = $1
		 `

	prefs := &models.UserPreferences{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.ID, &prefs.UserID, &prefs.AlertThreshold, &prefs.EmailAlerts,
		&prefs.QuietHoursStart, &prefs.QuietHoursEnd, &prefs.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get preferences: %v", common.ErrStorage, err)
	}

	return prefs, nil
}

// Update applies the provided fields only; absent fields are left untouched.
// An update carrying no fields returns immediately without touching storage.
func (r *PostgresRepository) Update(ctx context.Context, userID int64, upd models.PreferencesUpdate) error {
	assignments := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if upd.AlertThreshold != nil {
		args = append(args, *upd.AlertThreshold)
		assignments = append(assignments, fmt.Sprintf("alert_threshold = $%d", len(args)))
	}
	if upd.EmailAlerts != nil {
		args = append(args, *upd.EmailAlerts)
		assignments = append(assignments, fmt.Sprintf("email_alerts = $%d", len(args)))
	}
	if upd.QuietHoursStart.Set {
		args = append(args, upd.QuietHoursStart.Value)
		assignments = append(assignments, fmt.Sprintf("quiet_hours_start = $%d", len(args)))
	}
	if upd.QuietHoursEnd.Set {
		args = append(args, upd.QuietHoursEnd.Value)
		assignments = append(assignments, fmt.Sprintf("quiet_hours_end = $%d", len(args)))
	}

	if len(assignments) == 0 {
		return nil
	}

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE user_preferences SET %s WHERE user_id = $%d`,
		strings.Join(assignments, ", "), len(args))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: update preferences: %v", common.ErrStorage, err)
	}
	return nil
}
