package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/category"
	"github.com/fekuna/omnipos-pos-service/internal/category/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     input.Name,
		ImageURL: input.ImageURL,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("category %s was not found", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	cat, err := uc.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	cat.Name = input.Name
	if input.ImageURL != "" {
		cat.ImageURL = input.ImageURL
	}
	cat.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory refuses while live products are filed under the category.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.GetCategory(ctx, id); err != nil {
		return err
	}

	n, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.Conflict("category %s still has %d products", id, n)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}
