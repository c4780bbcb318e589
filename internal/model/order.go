package model

import "github.com/shopspring/decimal"

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeTakeAway OrderType = "take_away"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeDelivery, OrderTypeTakeAway:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	BaseModel
	Code         string          `db:"order_code" json:"order_code"`
	Type         OrderType       `db:"type" json:"type"`
	TableNumber  *int            `db:"table_number" json:"table_number,omitempty"`
	CustomerName *string         `db:"customer_name" json:"customer_name,omitempty"`
	PhoneNumber  *string         `db:"phone_number" json:"phone_number,omitempty"`
	Address      *string         `db:"address" json:"address,omitempty"`
	Status       OrderStatus     `db:"status" json:"status"`
	Total        decimal.Decimal `db:"total" json:"total"`
	Products     []OrderProduct  `db:"-" json:"products"`
	Deals        []OrderDeal     `db:"-" json:"deals"`
}

type OrderProduct struct {
	OrderID   string `db:"order_id" json:"-"`
	ProductID string `db:"product_id" json:"product_id"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

type OrderDeal struct {
	OrderID  string `db:"order_id" json:"-"`
	DealID   string `db:"deal_id" json:"deal_id"`
	Quantity int    `db:"quantity" json:"quantity"`
}
