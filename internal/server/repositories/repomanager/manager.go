// Package repomanager wires repository constructors and database migrations
// behind a single manager interface so services stay storage-agnostic.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/parksujin/lifeshare/internal/dbx"
	"github.com/parksujin/lifeshare/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and runs migrations.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
