package handler

import (
	"context"
	"testing"
	"time"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
)

type fakeUseCase struct {
	added    *dto.AddItemsInput
	filters  *dto.MovementFilters
	movement model.InventoryMovement
}

func (f *fakeUseCase) AddItems(_ context.Context, in *dto.AddItemsInput) ([]model.InventoryItem, error) {
	f.added = in
	out := make([]model.InventoryItem, len(in.Items))
	for i, e := range in.Items {
		out[i] = model.InventoryItem{
			Tier:         in.Tier,
			IngredientID: e.IngredientID,
			Quantity:     e.Quantity,
			UpdatedAt:    time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		}
	}
	return out, nil
}

func (f *fakeUseCase) TransferToKitchen(context.Context, *dto.TransferInput) ([]model.InventoryItem, error) {
	return nil, nil
}

func (f *fakeUseCase) TransferToMain(context.Context, *dto.TransferInput) ([]model.InventoryItem, error) {
	return nil, nil
}

func (f *fakeUseCase) SetQuantity(context.Context, *dto.SetQuantityInput) (*model.InventoryItem, error) {
	return nil, nil
}

func (f *fakeUseCase) ListItems(context.Context, model.Tier) ([]model.InventoryItem, error) {
	return nil, nil
}

func (f *fakeUseCase) ListMovements(_ context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	f.filters = filters
	return []model.InventoryMovement{f.movement}, 11, nil
}

func (f *fakeUseCase) LockItem(context.Context, model.Tier, string) (*model.InventoryItem, error) {
	return nil, nil
}

func (f *fakeUseCase) Consume(context.Context, model.Tier, string, float64, string) error { return nil }

func (f *fakeUseCase) Replenish(context.Context, model.Tier, string, float64, string) (bool, error) {
	return false, nil
}

func TestAddItemsMapsTierAndEntries(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewInventoryHandler(uc, logger.NewNop())

	resp, err := h.AddItems(context.Background(), &posv1.AddItemsRequest{
		Tier:  "kitchen",
		Items: []posv1.StockEntry{{IngredientID: "flour", Quantity: 250}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if uc.added.Tier != model.TierKitchen || uc.added.Items[0].Quantity != 250 {
		t.Errorf("input = %+v", uc.added)
	}
	if len(resp.Items) != 1 || resp.Items[0].Tier != "kitchen" || resp.Items[0].UpdatedAt != "2024-05-01T08:00:00Z" {
		t.Errorf("response = %+v", resp.Items)
	}
}

func TestListMovementsDefaultsPageSize(t *testing.T) {
	ref := "dn-7"
	uc := &fakeUseCase{movement: model.InventoryMovement{
		ID:           "m1",
		Tier:         model.TierMain,
		IngredientID: "flour",
		MovementType: model.MovementReceipt,
		Reference:    &ref,
	}}
	h := NewInventoryHandler(uc, logger.NewNop())

	resp, err := h.ListMovements(context.Background(), &posv1.ListMovementsRequest{Tier: "main", Page: 2})
	if err != nil {
		t.Fatal(err)
	}

	if uc.filters.PageSize != 50 || uc.filters.Page != 2 || uc.filters.Tier != model.TierMain {
		t.Errorf("filters = %+v", uc.filters)
	}
	if resp.Total != 11 || resp.Movements[0].Reference != "dn-7" || resp.Movements[0].CreatedBy != "" {
		t.Errorf("response = %+v", resp)
	}
}
