package dto

import (
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/shopspring/decimal"
)

type ProductInput struct {
	Name        string
	CategoryID  string
	Cost        decimal.Decimal
	Price       decimal.Decimal
	ImageURL    string
	Ingredients []model.ProductIngredient
}

type ProductFilters struct {
	CategoryID  string `json:"category_id,omitempty"`
	SearchQuery string `json:"search,omitempty"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

func (in *ProductInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.Validation("product name is required")
	}
	if in.CategoryID == "" {
		return apperror.Validation("category is required")
	}
	if in.Cost.IsNegative() || in.Price.IsNegative() {
		return apperror.Validation("cost and price cannot be negative")
	}
	if len(in.Ingredients) == 0 {
		return apperror.Validation("a product needs at least one ingredient")
	}

	seen := make(map[string]bool, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		if ing.IngredientID == "" {
			return apperror.Validation("ingredient id is required")
		}
		if ing.Quantity <= 0 {
			return apperror.Validation("quantity of ingredient %s must be positive", ing.IngredientID)
		}
		if seen[ing.IngredientID] {
			return apperror.Validation("ingredient %s is listed twice", ing.IngredientID)
		}
		seen[ing.IngredientID] = true
	}
	return nil
}
