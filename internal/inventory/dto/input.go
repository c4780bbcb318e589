package dto

import (
	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type StockEntry struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

type AddItemsInput struct {
	Tier  model.Tier
	Items []StockEntry
	// Reference ends up on every movement, e.g. a delivery note number.
	Reference string
}

type TransferInput struct {
	Items     []StockEntry
	Reference string
}

type SetQuantityInput struct {
	IngredientID string
	Quantity     float64
}

type MovementFilters struct {
	Tier         model.Tier
	IngredientID string
	MovementType model.MovementType
	Page         int
	PageSize     int
}

// ValidateEntries rejects a batch before any of it is applied.
func ValidateEntries(items []StockEntry) error {
	if len(items) == 0 {
		return apperror.Validation("at least one item is required")
	}
	for _, it := range items {
		if it.IngredientID == "" {
			return apperror.Validation("ingredient id is required")
		}
		if it.Quantity <= 0 {
			return apperror.Validation("quantity of ingredient %s must be positive", it.IngredientID)
		}
	}
	return nil
}
