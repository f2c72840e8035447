// Package db wires the per-collection repositories to a backing store.
// The postgres manager is used when the primary store answers the startup
// probe; otherwise the service runs on the fallback manager for the rest of
// the process lifetime.
package db

import (
	"context"
	"database/sql"

	"github.com/msavelyev/notedesk/internal/server/repositories/calchistory"
	"github.com/msavelyev/notedesk/internal/server/repositories/notes"
	"github.com/msavelyev/notedesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Notes() notes.Repository
	CalcHistory() calchistory.Repository
}
