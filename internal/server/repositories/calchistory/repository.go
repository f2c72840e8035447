package calchistory

import (
	"context"

	"github.com/msavelyev/notedesk/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, entry *models.CalcEntry) (*models.CalcEntry, error)
	List(ctx context.Context) ([]models.CalcEntry, error)
}
