package deal

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, deal *model.Deal) error
	// FindByID also returns soft-deleted deals.
	FindByID(ctx context.Context, id string) (*model.Deal, error)
	FindAll(ctx context.Context) ([]model.Deal, error)
	Update(ctx context.Context, deal *model.Deal) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
