package product

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, id string, input *dto.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
