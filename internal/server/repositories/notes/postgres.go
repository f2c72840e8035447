package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/msavelyev/notedesk/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, note *models.Note) (*models.Note, error) {

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return nil, fmt.Errorf("tags encode error: %w", err)
	}

	query :=
		`INSERT INTO notes (note, tags, created_at)
         VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		note.Text, tags, note.CreatedAt).Scan(&note.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Note, error) {
	// Store-native order, no explicit sort.
	query :=
		`SELECT id, note, tags, created_at FROM notes
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		var n models.Note
		var tags []byte
		if err := rows.Scan(&n.ID, &n.Text, &tags, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(tags, &n.Tags); err != nil {
			return nil, fmt.Errorf("tags decode error: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
