package repomanager

import (
	"context"
	"database/sql"

	"github.com/wholesaleos/backend/internal/dbx"
	"github.com/wholesaleos/backend/internal/server/repositories/preferences"
	"github.com/wholesaleos/backend/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX (either the shared
// *sql.DB or an open transaction) and exposes schema migration.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Preferences(db dbx.DBTX) preferences.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
