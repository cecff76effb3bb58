package preferences

import (
	"context"

	"github.com/wholesaleos/backend/internal/server/models"
)

type Repository interface {
	CreateDefaults(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*models.UserPreferences, error)
	Update(ctx context.Context, userID int64, upd models.PreferencesUpdate) error
}
