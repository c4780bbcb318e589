package inventory

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

// Repository methods returning a record return nil, nil when the record does not exist
// (or, for Decrement, when it holds too little).
type Repository interface {
	Get(ctx context.Context, tier model.Tier, ingredientID string) (*model.InventoryItem, error)
	GetForUpdate(ctx context.Context, tier model.Tier, ingredientID string) (*model.InventoryItem, error)
	List(ctx context.Context, tier model.Tier) ([]model.InventoryItem, error)

	// Core stock operations
	Upsert(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, at time.Time) (*model.InventoryItem, error)
	Increment(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, at time.Time) (*model.InventoryItem, error)
	Decrement(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, at time.Time) (*model.InventoryItem, error)
	SetQuantity(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, at time.Time) (*model.InventoryItem, error)

	// Movements / Audit
	LogMovement(ctx context.Context, movement *model.InventoryMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
