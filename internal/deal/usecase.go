package deal

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/deal/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type UseCase interface {
	CreateDeal(ctx context.Context, input *dto.DealInput) (*model.Deal, error)
	GetDeal(ctx context.Context, id string) (*model.Deal, error)
	ListDeals(ctx context.Context) ([]model.Deal, error)
	UpdateDeal(ctx context.Context, id string, input *dto.DealInput) (*model.Deal, error)
	DeleteDeal(ctx context.Context, id string) error
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
