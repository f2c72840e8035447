package db

import (
	"context"
	"database/sql"

	"github.com/msavelyev/notedesk/internal/common"
	"github.com/msavelyev/notedesk/internal/server/models"
	"github.com/msavelyev/notedesk/internal/server/repositories/calchistory"
	"github.com/msavelyev/notedesk/internal/server/repositories/notes"
	"github.com/msavelyev/notedesk/internal/server/repositories/users"
)

// Fallback credential pair used when the primary store never came up.
// Development-only values, insecure on purpose.
const (
	FallbackUsername = "admin"
	FallbackPassword = "admin"
)

// FallbackRepositoryManager is the degraded mode entered when the startup
// probe fails: every load returns an empty sequence and every write is
// silently dropped. There is no recovery attempt for the rest of the
// process lifetime.
type FallbackRepositoryManager struct{}

func NewFallbackRepositoryManager() RepositoryManager {
	return FallbackRepositoryManager{}
}

func (m FallbackRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m FallbackRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m FallbackRepositoryManager) Users() users.Repository {
	return fallbackUsers{}
}

func (m FallbackRepositoryManager) Notes() notes.Repository {
	return fallbackNotes{}
}

func (m FallbackRepositoryManager) CalcHistory() calchistory.Repository {
	return fallbackCalcHistory{}
}

type fallbackNotes struct{}

func (fallbackNotes) Add(ctx context.Context, note *models.Note) (*models.Note, error) {
	// Write dropped, not queued. See DESIGN.md on the silent-drop behavior.
	return note, nil
}

func (fallbackNotes) List(ctx context.Context) ([]models.Note, error) {
	return nil, nil
}

type fallbackCalcHistory struct{}

func (fallbackCalcHistory) Add(ctx context.Context, entry *models.CalcEntry) (*models.CalcEntry, error) {
	return entry, nil
}

func (fallbackCalcHistory) List(ctx context.Context) ([]models.CalcEntry, error) {
	return nil, nil
}

type fallbackUsers struct{}

func (fallbackUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return user, nil
}

func (fallbackUsers) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if login == FallbackUsername {
		return &models.User{ID: "fallback", UserName: FallbackUsername, Password: FallbackPassword}, nil
	}
	return nil, common.ErrorNotFound
}
