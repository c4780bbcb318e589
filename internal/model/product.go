package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name        string              `db:"name" json:"name"`
	CategoryID  string              `db:"category_id" json:"category_id"`
	Cost        decimal.Decimal     `db:"cost" json:"cost"`
	Price       decimal.Decimal     `db:"price" json:"price"`
	ImageURL    string              `db:"image_url" json:"image_url"`
	Deleted     bool                `db:"deleted" json:"deleted"`
	Ingredients []ProductIngredient `db:"-" json:"ingredients"`
}

// ProductIngredient is one recipe line: how much of an ingredient a single unit of the product uses.
type ProductIngredient struct {
	ProductID    string  `db:"product_id" json:"-"`
	IngredientID string  `db:"ingredient_id" json:"ingredient_id"`
	Name         string  `db:"name" json:"name,omitempty"`
	Quantity     float64 `db:"quantity" json:"quantity"`
}
