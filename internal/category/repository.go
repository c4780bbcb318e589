package category

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error

	// CountProducts counts the non-deleted products filed under the category.
	CountProducts(ctx context.Context, id string) (int, error)
}
