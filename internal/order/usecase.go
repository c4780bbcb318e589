package order

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.OrderInput) (*model.Order, error)
	UpdateOrder(ctx context.Context, code string, input *dto.OrderInput) (*model.Order, error)
	CancelOrder(ctx context.Context, code string) error
	Invoice(ctx context.Context, code string) (*model.Order, error)
	GetOrder(ctx context.Context, code string) (*model.Order, error)
	ListOrders(ctx context.Context, filter *dto.ListOrdersFilter) ([]model.Order, error)
}

// Transactor runs fn as one atomic unit of work; repositories pick the transaction up from ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProductReader and DealReader return a NotFound apperror for unknown ids.
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

type DealReader interface {
	GetDeal(ctx context.Context, id string) (*model.Deal, error)
}

// StockLedger is the slice of the inventory ledger the order engine writes through.
type StockLedger interface {
	// LockItem reads a record and holds it for the rest of the transaction. Nil when absent.
	LockItem(ctx context.Context, tier model.Tier, ingredientID string) (*model.InventoryItem, error)
	// Consume subtracts quantity, failing with InsufficientStock rather than going negative.
	Consume(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, reference string) error
	// Replenish adds quantity back to an existing record and reports whether one existed.
	Replenish(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, reference string) (bool, error)
}

type TableRegistry interface {
	Reserve(ctx context.Context, number int) error
	Release(ctx context.Context, number int) error
}
