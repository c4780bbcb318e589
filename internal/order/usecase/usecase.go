package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/order"
	"github.com/fekuna/omnipos-pos-service/internal/order/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/broker"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/fekuna/omnipos-pos-service/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const defaultListDays = 7

type Dependencies struct {
	Repo      order.Repository
	Tx        order.Transactor
	Products  order.ProductReader
	Deals     order.DealReader
	Stock     order.StockLedger
	Tables    order.TableRegistry
	Publisher broker.Publisher
	Metrics   *metrics.Metrics
	Logger    logger.ZapLogger

	// DefaultDays is the ListOrders window used when the caller passes none.
	DefaultDays int
	Now         func() time.Time
}

type orderUseCase struct {
	repo        order.Repository
	tx          order.Transactor
	products    order.ProductReader
	deals       order.DealReader
	stock       order.StockLedger
	tables      order.TableRegistry
	publisher   broker.Publisher
	metrics     *metrics.Metrics
	logger      logger.ZapLogger
	tracer      trace.Tracer
	defaultDays int
	now         func() time.Time
}

func NewOrderUseCase(deps Dependencies) order.UseCase {
	uc := &orderUseCase{
		repo:        deps.Repo,
		tx:          deps.Tx,
		products:    deps.Products,
		deals:       deps.Deals,
		stock:       deps.Stock,
		tables:      deps.Tables,
		publisher:   deps.Publisher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		tracer:      otel.Tracer("omnipos-pos-service/order"),
		defaultDays: deps.DefaultDays,
		now:         deps.Now,
	}
	if uc.publisher == nil {
		uc.publisher = broker.NewNopPublisher()
	}
	if uc.logger == nil {
		uc.logger = logger.NewNop()
	}
	if uc.defaultDays <= 0 {
		uc.defaultDays = defaultListDays
	}
	if uc.now == nil {
		uc.now = func() time.Time { return time.Now().UTC() }
	}
	return uc
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.OrderInput) (*model.Order, error) {
	ctx, span := uc.tracer.Start(ctx, "OrderUseCase.CreateOrder", trace.WithAttributes(attribute.String("order.type", string(input.Type))))
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, uc.fail(span, "create", err)
	}

	var created *model.Order
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if input.Type == model.OrderTypeDineIn {
			if err := uc.tables.Reserve(ctx, *input.TableNumber); err != nil {
				return err
			}
		}

		n, err := uc.repo.NextCodeNumber(ctx)
		if err != nil {
			return err
		}

		now := uc.now()
		o := &model.Order{
			BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			Code:      fmt.Sprintf("ord-%d", n),
			Status:    model.OrderStatusProcessing,
		}
		input.ApplyTo(o)

		if err := uc.repo.Create(ctx, o); err != nil {
			return err
		}
		if err := uc.deductStock(ctx, o); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, uc.fail(span, "create", err)
	}

	span.SetAttributes(attribute.String("order.code", created.Code))
	uc.metrics.ObserveOrder("create", nil)
	uc.logger.Info("order created", zap.String("order_code", created.Code), zap.String("type", string(created.Type)))
	uc.publish(ctx, order.EventOrderCreated, created)
	return created, nil
}

func (uc *orderUseCase) UpdateOrder(ctx context.Context, code string, input *dto.OrderInput) (*model.Order, error) {
	ctx, span := uc.tracer.Start(ctx, "OrderUseCase.UpdateOrder", trace.WithAttributes(attribute.String("order.code", code)))
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, uc.fail(span, "update", err)
	}

	var updated *model.Order
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := uc.lockOrder(ctx, code)
		if err != nil {
			return err
		}

		if err := uc.restoreStock(ctx, existing); err != nil {
			return err
		}

		// Reservations follow create and invoice only; a table change here is not reserved.
		if moved, from, to := tableChange(existing, input); moved {
			uc.logger.Warn("order moved to another table without reserving it",
				zap.String("order_code", code), zap.Int("from_table", from), zap.Int("to_table", to))
		}

		input.ApplyTo(existing)
		existing.UpdatedAt = uc.now()
		if err := uc.repo.Update(ctx, existing); err != nil {
			return err
		}

		if err := uc.deductStock(ctx, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, uc.fail(span, "update", err)
	}

	uc.metrics.ObserveOrder("update", nil)
	uc.logger.Info("order updated", zap.String("order_code", code))
	uc.publish(ctx, order.EventOrderUpdated, updated)
	return updated, nil
}

func (uc *orderUseCase) CancelOrder(ctx context.Context, code string) error {
	ctx, span := uc.tracer.Start(ctx, "OrderUseCase.CancelOrder", trace.WithAttributes(attribute.String("order.code", code)))
	defer span.End()

	var cancelled *model.Order
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := uc.lockOrder(ctx, code)
		if err != nil {
			return err
		}

		if err := uc.restoreStock(ctx, existing); err != nil {
			return err
		}
		if err := uc.repo.DeleteByCode(ctx, code); err != nil {
			return err
		}

		existing.Status = model.OrderStatusCancelled
		cancelled = existing
		return nil
	})
	if err != nil {
		return uc.fail(span, "cancel", err)
	}

	uc.metrics.ObserveOrder("cancel", nil)
	uc.logger.Info("order cancelled", zap.String("order_code", code))
	uc.publish(ctx, order.EventOrderCancelled, cancelled)
	return nil
}

func (uc *orderUseCase) Invoice(ctx context.Context, code string) (*model.Order, error) {
	ctx, span := uc.tracer.Start(ctx, "OrderUseCase.Invoice", trace.WithAttributes(attribute.String("order.code", code)))
	defer span.End()

	var (
		invoiced  *model.Order
		completed bool
	)
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := uc.lockOrder(ctx, code)
		if err != nil {
			return err
		}

		switch existing.Status {
		case model.OrderStatusProcessing:
		case model.OrderStatusCompleted:
			// The table was released when the order completed and may belong to someone else now.
			invoiced, completed = existing, true
			return nil
		default:
			return apperror.Conflict("order %s is %s and cannot be invoiced", code, existing.Status)
		}

		now := uc.now()
		if err := uc.repo.UpdateStatus(ctx, code, model.OrderStatusCompleted, now); err != nil {
			return err
		}
		existing.Status = model.OrderStatusCompleted
		existing.UpdatedAt = now

		if existing.Type == model.OrderTypeDineIn && existing.TableNumber != nil {
			err := uc.tables.Release(ctx, *existing.TableNumber)
			if apperror.Is(err, apperror.KindNotFound) {
				uc.logger.Warn("invoiced order references a missing table",
					zap.String("order_code", code), zap.Int("table_number", *existing.TableNumber))
			} else if err != nil {
				return err
			}
		}

		invoiced = existing
		return nil
	})
	if err != nil {
		return nil, uc.fail(span, "invoice", err)
	}
	if completed {
		uc.logger.Debug("order already invoiced", zap.String("order_code", code))
		return invoiced, nil
	}

	uc.metrics.ObserveOrder("invoice", nil)
	uc.logger.Info("order invoiced", zap.String("order_code", code))
	uc.publish(ctx, order.EventOrderInvoiced, invoiced)
	return invoiced, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, code string) (*model.Order, error) {
	return uc.findOrder(ctx, code)
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filter *dto.ListOrdersFilter) ([]model.Order, error) {
	days := filter.Days
	if days <= 0 {
		days = uc.defaultDays
	}
	to := uc.now()
	from := to.AddDate(0, 0, -days)
	return uc.repo.FindByDateRange(ctx, from, to, filter.ActiveOnly)
}

func (uc *orderUseCase) findOrder(ctx context.Context, code string) (*model.Order, error) {
	o, err := uc.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("order %s was not found", code)
	}
	return o, nil
}

// lockOrder loads the order for a write. A second writer on the same code waits here and then
// finds the first writer's result, so stock is never restored twice.
func (uc *orderUseCase) lockOrder(ctx context.Context, code string) (*model.Order, error) {
	o, err := uc.repo.FindByCodeForUpdate(ctx, code)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("order %s was not found", code)
	}
	return o, nil
}

func tableChange(o *model.Order, in *dto.OrderInput) (bool, int, int) {
	if o.TableNumber == nil || in.Type != model.OrderTypeDineIn || in.TableNumber == nil {
		return false, 0, 0
	}
	return *o.TableNumber != *in.TableNumber, *o.TableNumber, *in.TableNumber
}

// combine expands the order's deals through the catalog.
func (uc *orderUseCase) combine(ctx context.Context, o *model.Order) ([]model.OrderProduct, error) {
	catalog := make(map[string]*model.Deal, len(o.Deals))
	for _, d := range o.Deals {
		if _, ok := catalog[d.DealID]; ok {
			continue
		}
		deal, err := uc.deals.GetDeal(ctx, d.DealID)
		if err != nil {
			return nil, err
		}
		catalog[d.DealID] = deal
	}
	return order.CombineProducts(o.Products, o.Deals, catalog)
}

// deductStock checks every requirement against the locked kitchen records before touching any of them.
func (uc *orderUseCase) deductStock(ctx context.Context, o *model.Order) error {
	combined, err := uc.combine(ctx, o)
	if err != nil {
		return err
	}

	resolved := make([]*model.Product, len(combined))
	for i, line := range combined {
		p, err := uc.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return err
		}
		resolved[i] = p

		for _, ing := range p.Ingredients {
			item, err := uc.stock.LockItem(ctx, model.TierKitchen, ing.IngredientID)
			if err != nil {
				return err
			}
			if item == nil {
				return apperror.NotFound("no stock of %s was found in the kitchen", ingredientLabel(ing))
			}
			if decimal.NewFromFloat(item.Quantity).LessThan(required(ing, line.Quantity)) {
				return apperror.InsufficientStock("not enough %s in the kitchen for %s", ingredientLabel(ing), p.Name)
			}
		}
	}

	for i, line := range combined {
		for _, ing := range resolved[i].Ingredients {
			amount := required(ing, line.Quantity).InexactFloat64()
			if err := uc.stock.Consume(ctx, model.TierKitchen, ing.IngredientID, amount, o.Code); err != nil {
				return err
			}
		}
	}
	return nil
}

// restoreStock gives back what the order deducted. Products or records that no longer exist are skipped.
func (uc *orderUseCase) restoreStock(ctx context.Context, o *model.Order) error {
	combined, err := uc.combine(ctx, o)
	if err != nil {
		return err
	}

	for _, line := range combined {
		p, err := uc.products.GetProduct(ctx, line.ProductID)
		if apperror.Is(err, apperror.KindNotFound) {
			uc.logger.Warn("skipping restore of unknown product", zap.String("order_code", o.Code), zap.String("product_id", line.ProductID))
			continue
		}
		if err != nil {
			return err
		}

		for _, ing := range p.Ingredients {
			amount := required(ing, line.Quantity).InexactFloat64()
			ok, err := uc.stock.Replenish(ctx, model.TierKitchen, ing.IngredientID, amount, o.Code)
			if err != nil {
				return err
			}
			if !ok {
				uc.logger.Debug("no kitchen record to restore into", zap.String("order_code", o.Code), zap.String("ingredient_id", ing.IngredientID))
			}
		}
	}
	return nil
}

func (uc *orderUseCase) publish(ctx context.Context, eventType string, o *model.Order) {
	body, err := json.Marshal(&order.Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   o,
		Timestamp: uc.now(),
	})
	if err != nil {
		uc.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}
	if err := uc.publisher.Publish(ctx, o.Code, body); err != nil {
		uc.logger.Error("failed to publish order event", zap.String("event_type", eventType), zap.String("order_code", o.Code), zap.Error(err))
	}
}

func (uc *orderUseCase) fail(span trace.Span, operation string, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	uc.metrics.ObserveOrder(operation, err)
	return err
}

// required is the amount of one ingredient needed for units of a product, computed in decimal
// so that 3 x 0.1 is exactly 0.3.
func required(ing model.ProductIngredient, units int) decimal.Decimal {
	return decimal.NewFromFloat(ing.Quantity).Mul(decimal.NewFromInt(int64(units)))
}

func ingredientLabel(ing model.ProductIngredient) string {
	if ing.Name != "" {
		return ing.Name
	}
	return ing.IngredientID
}
