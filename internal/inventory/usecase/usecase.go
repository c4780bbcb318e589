package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
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

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

type inventoryUseCase struct {
	repo    inventory.Repository
	tx      inventory.Transactor
	locker  inventory.Locker
	metrics *metrics.Metrics
	logger  logger.ZapLogger
	tracer  trace.Tracer
	now     func() time.Time
}

// NewInventoryUseCase builds the ledger. locker may be nil, in which case manual writes
// rely on row locks alone.
func NewInventoryUseCase(repo inventory.Repository, tx inventory.Transactor, locker inventory.Locker, m *metrics.Metrics, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:    repo,
		tx:      tx,
		locker:  locker,
		metrics: m,
		logger:  log,
		tracer:  otel.Tracer("omnipos-pos-service/inventory"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// AddItems upserts every entry in its own transaction; a failure leaves earlier entries applied.
func (uc *inventoryUseCase) AddItems(ctx context.Context, input *dto.AddItemsInput) ([]model.InventoryItem, error) {
	ctx, span := uc.tracer.Start(ctx, "InventoryUseCase.AddItems", trace.WithAttributes(
		attribute.String("inventory.tier", string(input.Tier)), attribute.Int("inventory.items", len(input.Items))))
	defer span.End()

	if !input.Tier.Valid() {
		return nil, apperror.Validation("invalid tier %q, choose between main or kitchen", input.Tier)
	}
	if err := dto.ValidateEntries(input.Items); err != nil {
		return nil, err
	}

	out := make([]model.InventoryItem, 0, len(input.Items))
	for _, entry := range input.Items {
		var item *model.InventoryItem
		err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			item, err = uc.add(ctx, input.Tier, entry, model.MovementReceipt, input.Reference)
			return err
		})
		if err != nil {
			uc.logger.Error("failed to add inventory item",
				zap.String("tier", string(input.Tier)), zap.String("ingredient_id", entry.IngredientID), zap.Error(err))
			return nil, recordSpanError(span, err)
		}
		out = append(out, *item)
	}
	return out, nil
}

func (uc *inventoryUseCase) TransferToKitchen(ctx context.Context, input *dto.TransferInput) ([]model.InventoryItem, error) {
	return uc.transfer(ctx, model.TierMain, model.TierKitchen, input)
}

func (uc *inventoryUseCase) TransferToMain(ctx context.Context, input *dto.TransferInput) ([]model.InventoryItem, error) {
	return uc.transfer(ctx, model.TierKitchen, model.TierMain, input)
}

// transfer moves each entry on its own and returns the destination records.
func (uc *inventoryUseCase) transfer(ctx context.Context, from, to model.Tier, input *dto.TransferInput) ([]model.InventoryItem, error) {
	ctx, span := uc.tracer.Start(ctx, "InventoryUseCase.Transfer", trace.WithAttributes(
		attribute.String("inventory.from", string(from)), attribute.String("inventory.to", string(to))))
	defer span.End()

	if err := dto.ValidateEntries(input.Items); err != nil {
		return nil, err
	}

	out := make([]model.InventoryItem, 0, len(input.Items))
	for _, entry := range input.Items {
		var moved *model.InventoryItem
		err := uc.withLock(ctx, from, entry.IngredientID, func() error {
			return uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
				src, err := uc.repo.GetForUpdate(ctx, from, entry.IngredientID)
				if err != nil {
					return err
				}
				if src == nil {
					return apperror.NotFound("ingredient %s has no %s stock", entry.IngredientID, from)
				}
				if entry.Quantity > src.Quantity {
					return apperror.InsufficientStock("not enough %s in %s stock: have %g, want %g",
						itemLabel(src), from, src.Quantity, entry.Quantity)
				}

				if err := uc.take(ctx, from, entry.IngredientID, entry.Quantity, model.MovementTransferOut, input.Reference); err != nil {
					return err
				}
				moved, err = uc.add(ctx, to, entry, model.MovementTransferIn, input.Reference)
				return err
			})
		})
		if err != nil {
			uc.logger.Warn("inventory transfer rejected",
				zap.String("from", string(from)), zap.String("ingredient_id", entry.IngredientID), zap.Error(err))
			return nil, recordSpanError(span, err)
		}
		out = append(out, *moved)
	}

	uc.logger.Info("inventory transferred", zap.String("from", string(from)), zap.String("to", string(to)), zap.Int("items", len(out)))
	return out, nil
}

// SetQuantity overwrites a main-tier record. It never creates one.
func (uc *inventoryUseCase) SetQuantity(ctx context.Context, input *dto.SetQuantityInput) (*model.InventoryItem, error) {
	if input.IngredientID == "" {
		return nil, apperror.Validation("ingredient id is required")
	}
	if input.Quantity < 0 {
		return nil, apperror.Validation("quantity cannot be negative")
	}

	ctx, span := uc.tracer.Start(ctx, "InventoryUseCase.SetQuantity", trace.WithAttributes(
		attribute.String("inventory.ingredient_id", input.IngredientID)))
	defer span.End()

	var updated *model.InventoryItem
	err := uc.withLock(ctx, model.TierMain, input.IngredientID, func() error {
		return uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			current, err := uc.repo.GetForUpdate(ctx, model.TierMain, input.IngredientID)
			if err != nil {
				return err
			}
			if current == nil {
				return apperror.NotFound("ingredient %s has no main stock", input.IngredientID)
			}

			updated, err = uc.repo.SetQuantity(ctx, model.TierMain, input.IngredientID, input.Quantity, uc.now())
			if err != nil {
				return err
			}
			if updated == nil {
				return apperror.NotFound("ingredient %s has no main stock", input.IngredientID)
			}
			updated.IngredientName, updated.Unit = current.IngredientName, current.Unit

			return uc.record(ctx, model.TierMain, input.IngredientID, model.MovementAdjustment,
				current.Quantity, updated.Quantity, "")
		})
	})
	if err != nil {
		return nil, recordSpanError(span, err)
	}
	return updated, nil
}

func (uc *inventoryUseCase) ListItems(ctx context.Context, tier model.Tier) ([]model.InventoryItem, error) {
	if !tier.Valid() {
		return nil, apperror.Validation("invalid tier %q, choose between main or kitchen", tier)
	}
	return uc.repo.List(ctx, tier)
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	if filters.Tier != "" && !filters.Tier.Valid() {
		return nil, 0, apperror.Validation("invalid tier %q", filters.Tier)
	}
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) LockItem(ctx context.Context, tier model.Tier, ingredientID string) (*model.InventoryItem, error) {
	return uc.repo.GetForUpdate(ctx, tier, ingredientID)
}

func (uc *inventoryUseCase) Consume(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, reference string) error {
	return uc.take(ctx, tier, ingredientID, quantity, model.MovementSale, reference)
}

func (uc *inventoryUseCase) Replenish(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, reference string) (bool, error) {
	after, err := uc.repo.Increment(ctx, tier, ingredientID, quantity, uc.now())
	if err != nil {
		return false, err
	}
	if after == nil {
		return false, nil
	}
	return true, uc.record(ctx, tier, ingredientID, model.MovementRestore, subQty(after.Quantity, quantity), after.Quantity, reference)
}

func (uc *inventoryUseCase) add(ctx context.Context, tier model.Tier, entry dto.StockEntry, kind model.MovementType, reference string) (*model.InventoryItem, error) {
	after, err := uc.repo.Upsert(ctx, tier, entry.IngredientID, entry.Quantity, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.record(ctx, tier, entry.IngredientID, kind, subQty(after.Quantity, entry.Quantity), after.Quantity, reference); err != nil {
		return nil, err
	}
	return after, nil
}

// take subtracts quantity with a conditional decrement so a record can never go negative.
func (uc *inventoryUseCase) take(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, kind model.MovementType, reference string) error {
	after, err := uc.repo.Decrement(ctx, tier, ingredientID, quantity, uc.now())
	if err != nil {
		return err
	}
	if after == nil {
		existing, err := uc.repo.Get(ctx, tier, ingredientID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NotFound("ingredient %s has no %s stock", ingredientID, tier)
		}
		return apperror.InsufficientStock("not enough %s in %s stock", itemLabel(existing), tier)
	}
	return uc.record(ctx, tier, ingredientID, kind, addQty(after.Quantity, quantity), after.Quantity, reference)
}

func (uc *inventoryUseCase) record(ctx context.Context, tier model.Tier, ingredientID string, kind model.MovementType, before, after float64, reference string) error {
	m := &model.InventoryMovement{
		ID:             uuid.New().String(),
		Tier:           tier,
		IngredientID:   ingredientID,
		MovementType:   kind,
		QuantityChange: subQty(after, before),
		QuantityBefore: before,
		QuantityAfter:  after,
		CreatedBy:      auth.Actor(ctx),
		CreatedAt:      uc.now(),
	}
	if reference != "" {
		m.Reference = &reference
	}
	if err := uc.repo.LogMovement(ctx, m); err != nil {
		return err
	}
	uc.metrics.ObserveMovement(string(tier), string(kind))
	return nil
}

// withLock serializes manual writes to one record across instances. Redis being unreachable
// degrades to row locks only; a lock held by someone else is reported as a conflict.
func (uc *inventoryUseCase) withLock(ctx context.Context, tier model.Tier, ingredientID string, fn func() error) error {
	if uc.locker == nil {
		return fn()
	}

	key := fmt.Sprintf("lock:inventory:%s:%s", tier, ingredientID)
	value := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			uc.logger.Warn("inventory lock unavailable, continuing without it", zap.String("key", key), zap.Error(err))
			return fn()
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(lockBackoff)
	}
	if !acquired {
		return apperror.Conflict("%s stock of ingredient %s is being changed, please try again", tier, ingredientID)
	}

	defer func() {
		if err := uc.locker.ReleaseLock(context.WithoutCancel(ctx), key, value); err != nil {
			uc.logger.Warn("failed to release inventory lock", zap.String("key", key), zap.Error(err))
		}
	}()
	return fn()
}

// addQty and subQty keep movement quantities free of float noise; the columns are NUMERIC.
func addQty(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).InexactFloat64()
}

func subQty(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

func recordSpanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	return err
}

func itemLabel(item *model.InventoryItem) string {
	if item.IngredientName != "" {
		return item.IngredientName
	}
	return item.IngredientID
}
