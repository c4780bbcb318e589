package handler

import (
	"context"
	"time"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/internal/ingredient"
	"github.com/fekuna/omnipos-pos-service/internal/ingredient/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type IngredientHandler struct {
	uc     ingredient.UseCase
	logger logger.ZapLogger
}

func NewIngredientHandler(uc ingredient.UseCase, log logger.ZapLogger) *IngredientHandler {
	return &IngredientHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *IngredientHandler) CreateIngredient(ctx context.Context, req *posv1.CreateIngredientRequest) (*posv1.IngredientResponse, error) {
	if req.Ingredient == nil {
		return nil, status.Error(codes.InvalidArgument, "ingredient is required")
	}
	i, err := h.uc.CreateIngredient(ctx, mapInput(req.Ingredient))
	if err != nil {
		return nil, err
	}
	return &posv1.IngredientResponse{Ingredient: mapIngredientToProto(i)}, nil
}

func (h *IngredientHandler) GetIngredient(ctx context.Context, req *posv1.IDRequest) (*posv1.IngredientResponse, error) {
	i, err := h.uc.GetIngredient(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &posv1.IngredientResponse{Ingredient: mapIngredientToProto(i)}, nil
}

func (h *IngredientHandler) ListIngredients(ctx context.Context, _ *posv1.Empty) (*posv1.ListIngredientsResponse, error) {
	items, err := h.uc.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*posv1.Ingredient, len(items))
	for i := range items {
		out[i] = mapIngredientToProto(&items[i])
	}
	return &posv1.ListIngredientsResponse{Ingredients: out}, nil
}

func (h *IngredientHandler) UpdateIngredient(ctx context.Context, req *posv1.UpdateIngredientRequest) (*posv1.IngredientResponse, error) {
	if req.Ingredient == nil {
		return nil, status.Error(codes.InvalidArgument, "ingredient is required")
	}
	i, err := h.uc.UpdateIngredient(ctx, req.ID, mapInput(req.Ingredient))
	if err != nil {
		return nil, err
	}
	return &posv1.IngredientResponse{Ingredient: mapIngredientToProto(i)}, nil
}

func (h *IngredientHandler) DeleteIngredient(ctx context.Context, req *posv1.IDRequest) (*posv1.Empty, error) {
	if err := h.uc.DeleteIngredient(ctx, req.ID); err != nil {
		return nil, err
	}
	return &posv1.Empty{}, nil
}

func mapInput(in *posv1.IngredientInput) *dto.IngredientInput {
	return &dto.IngredientInput{Name: in.Name, Unit: model.Unit(in.Unit)}
}

func mapIngredientToProto(i *model.Ingredient) *posv1.Ingredient {
	return &posv1.Ingredient{
		ID:        i.ID,
		Name:      i.Name,
		Unit:      string(i.Unit),
		CreatedAt: i.CreatedAt.Format(time.RFC3339),
		UpdatedAt: i.UpdatedAt.Format(time.RFC3339),
	}
}
