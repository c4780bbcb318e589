package dto

import (
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/shopspring/decimal"
)

// OrderInput is the client-supplied part of an order, shared by create and update.
type OrderInput struct {
	Type         model.OrderType
	TableNumber  *int
	CustomerName *string
	PhoneNumber  *string
	Address      *string
	Products     []model.OrderProduct
	Deals        []model.OrderDeal
	Total        decimal.Decimal
}

type ListOrdersFilter struct {
	// Days is the lookback window; zero or less falls back to the configured default.
	Days       int
	ActiveOnly bool
}

func (in *OrderInput) Validate() error {
	if !in.Type.Valid() {
		return apperror.Validation("invalid order type %q, choose between dine_in, delivery or take_away", in.Type)
	}

	if in.Type == model.OrderTypeDineIn {
		if in.TableNumber == nil || *in.TableNumber <= 0 {
			return apperror.Validation("table number is required for dine-in orders")
		}
	} else {
		if blank(in.CustomerName) {
			return apperror.Validation("customer name is required for %s orders", in.Type)
		}
		if blank(in.PhoneNumber) {
			return apperror.Validation("phone number is required for %s orders", in.Type)
		}
	}

	if in.Type == model.OrderTypeDelivery && blank(in.Address) {
		return apperror.Validation("address is required for delivery orders")
	}

	if len(in.Products) == 0 && len(in.Deals) == 0 {
		return apperror.Validation("an order needs at least one product or deal")
	}
	for _, p := range in.Products {
		if p.ProductID == "" {
			return apperror.Validation("product id is required")
		}
		if p.Quantity <= 0 {
			return apperror.Validation("quantity of product %s must be positive", p.ProductID)
		}
	}
	for _, d := range in.Deals {
		if d.DealID == "" {
			return apperror.Validation("deal id is required")
		}
		if d.Quantity <= 0 {
			return apperror.Validation("quantity of deal %s must be positive", d.DealID)
		}
	}

	if in.Total.IsNegative() {
		return apperror.Validation("total cannot be negative")
	}
	return nil
}

// ApplyTo copies the input onto o, summing repeated product or deal lines.
func (in *OrderInput) ApplyTo(o *model.Order) {
	o.Type = in.Type
	o.TableNumber = nil
	if in.Type == model.OrderTypeDineIn {
		n := *in.TableNumber
		o.TableNumber = &n
	}
	o.CustomerName = in.CustomerName
	o.PhoneNumber = in.PhoneNumber
	o.Address = in.Address
	o.Total = in.Total
	o.Products = mergeProducts(o.ID, in.Products)
	o.Deals = mergeDeals(o.ID, in.Deals)
}

func mergeProducts(orderID string, lines []model.OrderProduct) []model.OrderProduct {
	out := make([]model.OrderProduct, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, model.OrderProduct{OrderID: orderID, ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}

func mergeDeals(orderID string, lines []model.OrderDeal) []model.OrderDeal {
	out := make([]model.OrderDeal, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if i, ok := index[l.DealID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.DealID] = len(out)
		out = append(out, model.OrderDeal{OrderID: orderID, DealID: l.DealID, Quantity: l.Quantity})
	}
	return out
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
