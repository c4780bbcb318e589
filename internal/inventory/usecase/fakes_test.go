package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type key struct {
	tier model.Tier
	id   string
}

// memRepo keeps records in a map; its WithinTransaction rolls the map back on error.
type memRepo struct {
	mu          sync.Mutex
	ingredients map[string]string
	stock       map[key]float64
	movements   []model.InventoryMovement
}

func newMemRepo() *memRepo {
	return &memRepo{
		ingredients: map[string]string{"flour": "Flour", "sugar": "Sugar", "milk": "Milk"},
		stock:       map[key]float64{},
	}
}

func (r *memRepo) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	stock := make(map[key]float64, len(r.stock))
	for k, v := range r.stock {
		stock[k] = v
	}
	movements := len(r.movements)
	r.mu.Unlock()

	if err := fn(ctx); err != nil {
		r.mu.Lock()
		r.stock = stock
		r.movements = r.movements[:movements]
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *memRepo) item(k key) *model.InventoryItem {
	q, ok := r.stock[k]
	if !ok {
		return nil
	}
	return &model.InventoryItem{Tier: k.tier, IngredientID: k.id, IngredientName: r.ingredients[k.id], Quantity: q}
}

func (r *memRepo) Get(_ context.Context, tier model.Tier, id string) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.item(key{tier, id}), nil
}

func (r *memRepo) GetForUpdate(ctx context.Context, tier model.Tier, id string) (*model.InventoryItem, error) {
	return r.Get(ctx, tier, id)
}

func (r *memRepo) List(_ context.Context, tier model.Tier) ([]model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.InventoryItem{}
	for k := range r.stock {
		if k.tier == tier {
			out = append(out, *r.item(k))
		}
	}
	return out, nil
}

func (r *memRepo) Upsert(_ context.Context, tier model.Tier, id string, q float64, _ time.Time) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ingredients[id]; !ok {
		return nil, apperror.NotFound("ingredient %s was not found", id)
	}
	r.stock[key{tier, id}] += q
	return r.item(key{tier, id}), nil
}

func (r *memRepo) Increment(_ context.Context, tier model.Tier, id string, q float64, _ time.Time) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{tier, id}
	if _, ok := r.stock[k]; !ok {
		return nil, nil
	}
	r.stock[k] += q
	return r.item(k), nil
}

func (r *memRepo) Decrement(_ context.Context, tier model.Tier, id string, q float64, _ time.Time) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{tier, id}
	if cur, ok := r.stock[k]; !ok || cur < q {
		return nil, nil
	}
	r.stock[k] -= q
	return r.item(k), nil
}

func (r *memRepo) SetQuantity(_ context.Context, tier model.Tier, id string, q float64, _ time.Time) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{tier, id}
	if _, ok := r.stock[k]; !ok {
		return nil, nil
	}
	r.stock[k] = q
	return r.item(k), nil
}

func (r *memRepo) LogMovement(_ context.Context, m *model.InventoryMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memRepo) ListMovements(_ context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.InventoryMovement
	for _, m := range r.movements {
		if f.Tier != "" && m.Tier != f.Tier {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}
