package model

import "github.com/shopspring/decimal"

type Deal struct {
	BaseModel
	Name     string          `db:"name" json:"name"`
	Price    decimal.Decimal `db:"price" json:"price"`
	ImageURL string          `db:"image_url" json:"image_url"`
	Deleted  bool            `db:"deleted" json:"deleted"`
	Products []DealProduct   `db:"-" json:"products"`
}

type DealProduct struct {
	DealID    string `db:"deal_id" json:"-"`
	ProductID string `db:"product_id" json:"product_id"`
	Quantity  int    `db:"quantity" json:"quantity"`
}
