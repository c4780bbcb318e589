package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductSale is one direct product line of an order, priced with the current catalog values.
type ProductSale struct {
	OrderID   string          `db:"order_id"`
	CreatedAt time.Time       `db:"created_at"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
	Cost      decimal.Decimal `db:"cost"`
}

// DealSale is one deal line of an order. BundleCost is the cost of a single bundle.
type DealSale struct {
	OrderID    string          `db:"order_id"`
	DealID     string          `db:"deal_id"`
	CreatedAt  time.Time       `db:"created_at"`
	Quantity   int             `db:"quantity"`
	Price      decimal.Decimal `db:"price"`
	BundleCost decimal.Decimal `db:"bundle_cost"`
}

type Day struct {
	Date   string          `json:"date"`
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
}

type Summary struct {
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	TotalOrders int             `json:"total_orders"`
	Days        []Day           `json:"days"`
}

type Repository interface {
	ProductSales(ctx context.Context, from, to time.Time) ([]ProductSale, error)
	DealSales(ctx context.Context, from, to time.Time) ([]DealSale, error)
	CountOrders(ctx context.Context, from, to time.Time) (int, error)
}

type UseCase interface {
	DailyReport(ctx context.Context, days int) (*Summary, error)
}
