package notes

import (
	"context"

	"github.com/msavelyev/notedesk/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, note *models.Note) (*models.Note, error)
	List(ctx context.Context) ([]models.Note, error)
}
