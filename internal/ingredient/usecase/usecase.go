package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/ingredient"
	"github.com/fekuna/omnipos-pos-service/internal/ingredient/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ingredientUseCase struct {
	repo   ingredient.Repository
	tx     ingredient.Transactor
	logger logger.ZapLogger
}

func NewIngredientUseCase(repo ingredient.Repository, tx ingredient.Transactor, log logger.ZapLogger) ingredient.UseCase {
	return &ingredientUseCase{
		repo:   repo,
		tx:     tx,
		logger: log,
	}
}

func (uc *ingredientUseCase) CreateIngredient(ctx context.Context, input *dto.IngredientInput) (*model.Ingredient, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	i := &model.Ingredient{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		Unit:      input.Unit,
	}
	if err := uc.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (uc *ingredientUseCase) GetIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	i, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, apperror.NotFound("ingredient %s was not found", id)
	}
	return i, nil
}

func (uc *ingredientUseCase) ListIngredients(ctx context.Context) ([]model.Ingredient, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *ingredientUseCase) UpdateIngredient(ctx context.Context, id string, input *dto.IngredientInput) (*model.Ingredient, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	i, err := uc.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	i.Name = input.Name
	i.Unit = input.Unit
	i.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

// DeleteIngredient pulls the ingredient out of every recipe and both stock tiers before removing it.
func (uc *ingredientUseCase) DeleteIngredient(ctx context.Context, id string) error {
	var recipes, records int64
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.GetIngredient(ctx, id); err != nil {
			return err
		}

		var err error
		if recipes, err = uc.repo.RemoveFromRecipes(ctx, id); err != nil {
			return err
		}
		if records, err = uc.repo.DeleteStock(ctx, id); err != nil {
			return err
		}
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.logger.Info("ingredient deleted",
		zap.String("ingredient_id", id),
		zap.Int64("recipes", recipes),
		zap.Int64("stock_records", records),
	)
	return nil
}
