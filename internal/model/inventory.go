package model

import "time"

// Tier is one of the two stock locations.
type Tier string

const (
	TierMain    Tier = "main"
	TierKitchen Tier = "kitchen"
)

func (t Tier) Valid() bool {
	return t == TierMain || t == TierKitchen
}

type InventoryItem struct {
	Tier           Tier      `db:"tier" json:"tier"`
	IngredientID   string    `db:"ingredient_id" json:"ingredient_id"`
	IngredientName string    `db:"ingredient_name" json:"ingredient_name,omitempty"`
	Unit           Unit      `db:"unit" json:"unit,omitempty"`
	Quantity       float64   `db:"quantity" json:"quantity"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type MovementType string

const (
	MovementReceipt     MovementType = "receipt"
	MovementTransferIn  MovementType = "transfer_in"
	MovementTransferOut MovementType = "transfer_out"
	MovementSale        MovementType = "sale"
	MovementRestore     MovementType = "restore"
	MovementAdjustment  MovementType = "adjustment"
)

type InventoryMovement struct {
	ID             string       `db:"id" json:"id"`
	Tier           Tier         `db:"tier" json:"tier"`
	IngredientID   string       `db:"ingredient_id" json:"ingredient_id"`
	MovementType   MovementType `db:"movement_type" json:"movement_type"`
	QuantityChange float64      `db:"quantity_change" json:"quantity_change"`
	QuantityBefore float64      `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  float64      `db:"quantity_after" json:"quantity_after"`
	Reference      *string      `db:"reference" json:"reference,omitempty"`
	CreatedBy      *string      `db:"created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}
