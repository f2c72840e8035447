package calchistory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msavelyev/notedesk/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, entry *models.CalcEntry) (*models.CalcEntry, error) {

	query :=
		`INSERT INTO calc_history (expression, result, ts)
         VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.Expression, entry.Result, entry.Timestamp).Scan(&entry.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.CalcEntry, error) {
	// Store-native order, no explicit sort.
	query :=
		`SELECT id, expression, result, ts FROM calc_history
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.CalcEntry
	for rows.Next() {
		var e models.CalcEntry
		if err := rows.Scan(&e.ID, &e.Expression, &e.Result, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
