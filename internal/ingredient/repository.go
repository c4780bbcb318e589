package ingredient

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, ingredient *model.Ingredient) error
	FindByID(ctx context.Context, id string) (*model.Ingredient, error)
	FindAll(ctx context.Context) ([]model.Ingredient, error)
	Update(ctx context.Context, ingredient *model.Ingredient) error
	Delete(ctx context.Context, id string) error

	// RemoveFromRecipes drops the ingredient from every product recipe.
	RemoveFromRecipes(ctx context.Context, id string) (int64, error)
	// DeleteStock removes the ingredient's records in both inventory tiers.
	DeleteStock(ctx context.Context, id string) (int64, error)
}
