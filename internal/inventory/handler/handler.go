package handler

import (
	"context"
	"time"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"go.uber.org/zap"
)

var _ posv1.InventoryServiceServer = (*InventoryHandler)(nil)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) AddItems(ctx context.Context, req *posv1.AddItemsRequest) (*posv1.InventoryItemsResponse, error) {
	items, err := h.uc.AddItems(ctx, &dto.AddItemsInput{
		Tier:  model.Tier(req.Tier),
		Items: mapEntries(req.Items),
	})
	if err != nil {
		return nil, err
	}
	return &posv1.InventoryItemsResponse{Items: mapItemsToProto(items)}, nil
}

func (h *InventoryHandler) TransferToKitchen(ctx context.Context, req *posv1.TransferRequest) (*posv1.InventoryItemsResponse, error) {
	items, err := h.uc.TransferToKitchen(ctx, &dto.TransferInput{Items: mapEntries(req.Items)})
	if err != nil {
		return nil, err
	}
	return &posv1.InventoryItemsResponse{Items: mapItemsToProto(items)}, nil
}

func (h *InventoryHandler) TransferToMain(ctx context.Context, req *posv1.TransferRequest) (*posv1.InventoryItemsResponse, error) {
	items, err := h.uc.TransferToMain(ctx, &dto.TransferInput{Items: mapEntries(req.Items)})
	if err != nil {
		return nil, err
	}
	return &posv1.InventoryItemsResponse{Items: mapItemsToProto(items)}, nil
}

func (h *InventoryHandler) SetMainQuantity(ctx context.Context, req *posv1.SetQuantityRequest) (*posv1.InventoryItemResponse, error) {
	item, err := h.uc.SetQuantity(ctx, &dto.SetQuantityInput{IngredientID: req.IngredientID, Quantity: req.Quantity})
	if err != nil {
		return nil, err
	}
	h.logger.Info("main stock overwritten", zap.String("ingredient_id", req.IngredientID), zap.Float64("quantity", req.Quantity))
	return &posv1.InventoryItemResponse{Item: mapItemToProto(item)}, nil
}

func (h *InventoryHandler) ListItems(ctx context.Context, req *posv1.ListItemsRequest) (*posv1.InventoryItemsResponse, error) {
	items, err := h.uc.ListItems(ctx, model.Tier(req.Tier))
	if err != nil {
		return nil, err
	}
	return &posv1.InventoryItemsResponse{Items: mapItemsToProto(items)}, nil
}

func (h *InventoryHandler) ListMovements(ctx context.Context, req *posv1.ListMovementsRequest) (*posv1.ListMovementsResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	movements, total, err := h.uc.ListMovements(ctx, &dto.MovementFilters{
		Tier:         model.Tier(req.Tier),
		IngredientID: req.IngredientID,
		Page:         req.Page,
		PageSize:     pageSize,
	})
	if err != nil {
		return nil, err
	}

	out := make([]*posv1.Movement, len(movements))
	for i, m := range movements {
		out[i] = &posv1.Movement{
			ID:             m.ID,
			Tier:           string(m.Tier),
			IngredientID:   m.IngredientID,
			MovementType:   string(m.MovementType),
			QuantityChange: m.QuantityChange,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			CreatedAt:      m.CreatedAt.Format(time.RFC3339),
		}
		if m.Reference != nil {
			out[i].Reference = *m.Reference
		}
		if m.CreatedBy != nil {
			out[i].CreatedBy = *m.CreatedBy
		}
	}
	return &posv1.ListMovementsResponse{Movements: out, Total: total}, nil
}

func mapEntries(in []posv1.StockEntry) []dto.StockEntry {
	out := make([]dto.StockEntry, len(in))
	for i, e := range in {
		out[i] = dto.StockEntry{IngredientID: e.IngredientID, Quantity: e.Quantity}
	}
	return out
}

func mapItemsToProto(items []model.InventoryItem) []*posv1.InventoryItem {
	out := make([]*posv1.InventoryItem, len(items))
	for i := range items {
		out[i] = mapItemToProto(&items[i])
	}
	return out
}

func mapItemToProto(item *model.InventoryItem) *posv1.InventoryItem {
	return &posv1.InventoryItem{
		Tier:           string(item.Tier),
		IngredientID:   item.IngredientID,
		IngredientName: item.IngredientName,
		Unit:           string(item.Unit),
		Quantity:       item.Quantity,
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
}
