package product

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	// FindByID also returns soft-deleted products.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	SoftDelete(ctx context.Context, id string, at time.Time) error

	// RemoveFromDeals drops the product from every deal bundle.
	RemoveFromDeals(ctx context.Context, id string) (int64, error)
	CategoryExists(ctx context.Context, categoryID string) (bool, error)
}
