package inventory

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type UseCase interface {
	AddItems(ctx context.Context, input *dto.AddItemsInput) ([]model.InventoryItem, error)
	TransferToKitchen(ctx context.Context, input *dto.TransferInput) ([]model.InventoryItem, error)
	TransferToMain(ctx context.Context, input *dto.TransferInput) ([]model.InventoryItem, error)
	SetQuantity(ctx context.Context, input *dto.SetQuantityInput) (*model.InventoryItem, error)
	ListItems(ctx context.Context, tier model.Tier) ([]model.InventoryItem, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)

	// Ledger used by the order engine inside its own transaction.
	LockItem(ctx context.Context, tier model.Tier, ingredientID string) (*model.InventoryItem, error)
	Consume(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, reference string) error
	Replenish(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, reference string) (bool, error)
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker is satisfied by *cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
