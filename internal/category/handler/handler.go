package handler

import (
	"context"
	"time"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/internal/category"
	"github.com/fekuna/omnipos-pos-service/internal/category/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CategoryHandler serves the category part of pos.v1.CatalogService.
type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) CreateCategory(ctx context.Context, req *posv1.CreateCategoryRequest) (*posv1.CategoryResponse, error) {
	if req.Category == nil {
		return nil, status.Error(codes.InvalidArgument, "category is required")
	}

	cat, err := h.uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		Name:     req.Category.Name,
		ImageURL: req.Category.ImageURL,
	})
	if err != nil {
		h.logger.Warn("failed to create category", zap.Error(err))
		return nil, err
	}

	return &posv1.CategoryResponse{
		Category: mapModelToProto(cat),
	}, nil
}

func (h *CategoryHandler) GetCategory(ctx context.Context, req *posv1.IDRequest) (*posv1.CategoryResponse, error) {
	cat, err := h.uc.GetCategory(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &posv1.CategoryResponse{Category: mapModelToProto(cat)}, nil
}

func (h *CategoryHandler) ListCategories(ctx context.Context, _ *posv1.Empty) (*posv1.ListCategoriesResponse, error) {
	cats, err := h.uc.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	protoCats := make([]*posv1.Category, len(cats))
	for i := range cats {
		protoCats[i] = mapModelToProto(&cats[i])
	}
	return &posv1.ListCategoriesResponse{Categories: protoCats}, nil
}

func (h *CategoryHandler) UpdateCategory(ctx context.Context, req *posv1.UpdateCategoryRequest) (*posv1.CategoryResponse, error) {
	if req.Category == nil {
		return nil, status.Error(codes.InvalidArgument, "category is required")
	}

	cat, err := h.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID:       req.ID,
		Name:     req.Category.Name,
		ImageURL: req.Category.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return &posv1.CategoryResponse{Category: mapModelToProto(cat)}, nil
}

func (h *CategoryHandler) DeleteCategory(ctx context.Context, req *posv1.IDRequest) (*posv1.Empty, error) {
	if err := h.uc.DeleteCategory(ctx, req.ID); err != nil {
		return nil, err
	}
	return &posv1.Empty{}, nil
}

func mapModelToProto(m *model.Category) *posv1.Category {
	if m == nil {
		return nil
	}
	return &posv1.Category{
		ID:        m.ID,
		Name:      m.Name,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
}
