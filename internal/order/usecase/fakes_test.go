package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

// store is an in-memory stand-in for the database. WithinTransaction snapshots it and
// restores the snapshot when the unit of work fails.
type store struct {
	mu       sync.Mutex
	orders   map[string]*model.Order
	kitchen  map[string]float64
	tables   map[int]bool
	products map[string]*model.Product
	deals    map[string]*model.Deal
	consumed []string
	txCalls  int
}

func newStore() *store {
	return &store{
		orders:   map[string]*model.Order{},
		kitchen:  map[string]float64{},
		tables:   map[int]bool{},
		products: map[string]*model.Product{},
		deals:    map[string]*model.Deal{},
	}
}

type snapshot struct {
	orders  map[string]*model.Order
	kitchen map[string]float64
	tables  map[int]bool
}

func (s *store) snapshot() snapshot {
	snap := snapshot{
		orders:  make(map[string]*model.Order, len(s.orders)),
		kitchen: make(map[string]float64, len(s.kitchen)),
		tables:  make(map[int]bool, len(s.tables)),
	}
	for k, v := range s.orders {
		snap.orders[k] = cloneOrder(v)
	}
	for k, v := range s.kitchen {
		snap.kitchen[k] = v
	}
	for k, v := range s.tables {
		snap.tables[k] = v
	}
	return snap
}

func (s *store) restore(snap snapshot) {
	s.orders = snap.orders
	s.kitchen = snap.kitchen
	s.tables = snap.tables
}

func cloneOrder(o *model.Order) *model.Order {
	c := *o
	c.Products = append([]model.OrderProduct(nil), o.Products...)
	c.Deals = append([]model.OrderDeal(nil), o.Deals...)
	return &c
}

// WithinTransaction

func (s *store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	s.txCalls++
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

// order.Repository

type orderRepo struct {
	s        *store
	seq      int64
	locks    int
	lastFrom time.Time
	lastTo   time.Time
}

func (r *orderRepo) Create(_ context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.Code]; ok {
		return apperror.Conflict("order %s already exists", o.Code)
	}
	r.s.orders[o.Code] = cloneOrder(o)
	return nil
}

func (r *orderRepo) FindByCode(_ context.Context, code string) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[code]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) FindByCodeForUpdate(ctx context.Context, code string) (*model.Order, error) {
	r.s.mu.Lock()
	r.locks++
	r.s.mu.Unlock()
	return r.FindByCode(ctx, code)
}

func (r *orderRepo) FindByDateRange(_ context.Context, from, to time.Time, activeOnly bool) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.lastFrom, r.lastTo = from, to
	var out []model.Order
	for _, o := range r.s.orders {
		if o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
			continue
		}
		if activeOnly && o.Status != model.OrderStatusProcessing {
			continue
		}
		out = append(out, *cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *orderRepo) Update(_ context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.Code] = cloneOrder(o)
	return nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, code string, status model.OrderStatus, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[code]
	if !ok {
		return apperror.NotFound("order %s was not found", code)
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (r *orderRepo) DeleteByCode(_ context.Context, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[code]; !ok {
		return apperror.NotFound("order %s was not found", code)
	}
	delete(r.s.orders, code)
	return nil
}

// NextCodeNumber behaves like a sequence: numbers drawn inside a rolled back transaction stay used.
func (r *orderRepo) NextCodeNumber(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.seq++
	return r.seq, nil
}

// catalog

type catalog struct{ s *store }

func (c catalog) GetProduct(_ context.Context, id string) (*model.Product, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	p, ok := c.s.products[id]
	if !ok {
		return nil, apperror.NotFound("product %s was not found", id)
	}
	return p, nil
}

func (c catalog) GetDeal(_ context.Context, id string) (*model.Deal, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	d, ok := c.s.deals[id]
	if !ok {
		return nil, apperror.NotFound("deal %s was not found", id)
	}
	return d, nil
}

// order.StockLedger, kitchen tier only

type ledger struct{ s *store }

func (l ledger) LockItem(_ context.Context, tier model.Tier, ingredientID string) (*model.InventoryItem, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	q, ok := l.s.kitchen[ingredientID]
	if !ok || tier != model.TierKitchen {
		return nil, nil
	}
	return &model.InventoryItem{Tier: tier, IngredientID: ingredientID, Quantity: q}, nil
}

func (l ledger) Consume(_ context.Context, tier model.Tier, ingredientID string, quantity float64, reference string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	q, ok := l.s.kitchen[ingredientID]
	if !ok {
		return apperror.NotFound("no %s record for %s", tier, ingredientID)
	}
	if q < quantity {
		return apperror.InsufficientStock("not enough %s", ingredientID)
	}
	l.s.kitchen[ingredientID] = q - quantity
	l.s.consumed = append(l.s.consumed, reference)
	return nil
}

func (l ledger) Replenish(_ context.Context, _ model.Tier, ingredientID string, quantity float64, _ string) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	q, ok := l.s.kitchen[ingredientID]
	if !ok {
		return false, nil
	}
	l.s.kitchen[ingredientID] = q + quantity
	return true, nil
}

// order.TableRegistry

type tables struct{ s *store }

func (t tables) Reserve(_ context.Context, number int) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	reserved, ok := t.s.tables[number]
	if !ok {
		return apperror.NotFound("table %d was not found", number)
	}
	if reserved {
		return apperror.Conflict("table %d is already reserved", number)
	}
	t.s.tables[number] = true
	return nil
}

func (t tables) Release(_ context.Context, number int) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.tables[number]; !ok {
		return apperror.NotFound("table %d was not found", number)
	}
	t.s.tables[number] = false
	return nil
}

// broker.Publisher

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	fail bool
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
