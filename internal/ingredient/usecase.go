package ingredient

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/ingredient/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type UseCase interface {
	CreateIngredient(ctx context.Context, input *dto.IngredientInput) (*model.Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*model.Ingredient, error)
	ListIngredients(ctx context.Context) ([]model.Ingredient, error)
	UpdateIngredient(ctx context.Context, id string, input *dto.IngredientInput) (*model.Ingredient, error)
	DeleteIngredient(ctx context.Context, id string) error
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
