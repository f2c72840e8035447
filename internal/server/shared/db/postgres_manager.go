package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msavelyev/notedesk/internal/server/migrations"
	"github.com/msavelyev/notedesk/internal/server/repositories/calchistory"
	"github.com/msavelyev/notedesk/internal/server/repositories/notes"
	"github.com/msavelyev/notedesk/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// probeTimeout bounds the single reachability check performed at startup.
// There is no reconnect or retry logic after this point.
const probeTimeout = 5 * time.Second

type PostgresRepositoryManager struct {
	db          *sql.DB
	users       users.Repository
	notes       notes.Repository
	calcHistory calchistory.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Notes() notes.Repository {
	return m.notes
}

func (m *PostgresRepositoryManager) CalcHistory() calchistory.Repository {
	return m.calcHistory
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := db.PingContext(probeCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db probe error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:          db,
		users:       users.NewPostgresRepository(db),
		notes:       notes.NewPostgresRepository(db),
		calcHistory: calchistory.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
