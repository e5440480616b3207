package notes

import (
	"context"

	"github.com/dmitrijs2005/notebook/internal/server/models"
)

// Repository persists notes. Update and Delete only touch rows owned by
// the given user and report common.ErrorNotFound otherwise.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id, userID string) (*models.Note, error)
}
