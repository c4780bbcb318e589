package dto

import (
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/shopspring/decimal"
)

type DealInput struct {
	Name     string
	Price    decimal.Decimal
	ImageURL string
	Products []model.DealProduct
}

func (in *DealInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.Validation("deal name is required")
	}
	if in.Price.IsNegative() {
		return apperror.Validation("price cannot be negative")
	}
	if len(in.Products) == 0 {
		return apperror.Validation("a deal needs at least one product")
	}

	seen := make(map[string]bool, len(in.Products))
	for _, p := range in.Products {
		if p.ProductID == "" {
			return apperror.Validation("product id is required")
		}
		if p.Quantity <= 0 {
			return apperror.Validation("quantity of product %s must be positive", p.ProductID)
		}
		if seen[p.ProductID] {
			return apperror.Validation("product %s is listed twice", p.ProductID)
		}
		seen[p.ProductID] = true
	}
	return nil
}
