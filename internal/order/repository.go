package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) error
	// FindByCode returns nil, nil when no order has the code.
	FindByCode(ctx context.Context, code string) (*model.Order, error)
	// FindByCodeForUpdate is FindByCode holding the order row until the transaction ends.
	FindByCodeForUpdate(ctx context.Context, code string) (*model.Order, error)
	FindByDateRange(ctx context.Context, from, to time.Time, activeOnly bool) ([]model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, code string, status model.OrderStatus, updatedAt time.Time) error
	// DeleteByCode returns a NotFound apperror when no order has the code.
	DeleteByCode(ctx context.Context, code string) error
	// NextCodeNumber draws the next order number; numbers are never handed out twice.
	NextCodeNumber(ctx context.Context) (int64, error)
}
