package dto

import (
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type IngredientInput struct {
	Name string
	Unit model.Unit
}

func (in *IngredientInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.Validation("ingredient name is required")
	}
	if !in.Unit.Valid() {
		return apperror.Validation("invalid unit %q, choose between g, ltr or pcs", in.Unit)
	}
	return nil
}
