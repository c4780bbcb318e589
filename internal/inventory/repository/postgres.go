package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const returning = ` RETURNING tier, ingredient_id, quantity, updated_at`

const selectItem = `
    SELECT i.tier, i.ingredient_id, g.name AS ingredient_name, g.unit, i.quantity, i.updated_at
    FROM inventory i
    JOIN ingredients g ON g.id = i.ingredient_id`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Get(ctx context.Context, tier model.Tier, ingredientID string) (*model.InventoryItem, error) {
	return r.getOne(ctx, selectItem+` WHERE i.tier = $1 AND i.ingredient_id = $2`, tier, ingredientID)
}

// GetForUpdate row-locks the record until the surrounding transaction ends.
func (r *PGRepository) GetForUpdate(ctx context.Context, tier model.Tier, ingredientID string) (*model.InventoryItem, error) {
	return r.getOne(ctx, selectItem+` WHERE i.tier = $1 AND i.ingredient_id = $2 FOR UPDATE OF i`, tier, ingredientID)
}

func (r *PGRepository) List(ctx context.Context, tier model.Tier) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &items, selectItem+` WHERE i.tier = $1 ORDER BY g.name`, tier)
	return items, err
}

// Upsert adds quantity to the record, creating it when absent.
func (r *PGRepository) Upsert(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, at time.Time) (*model.InventoryItem, error) {
	query := `
        INSERT INTO inventory (tier, ingredient_id, quantity, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (tier, ingredient_id)
        DO UPDATE SET
            quantity = inventory.quantity + EXCLUDED.quantity,
            updated_at = EXCLUDED.updated_at` + returning

	item, err := r.getOne(ctx, query, tier, ingredientID, quantity, at)
	if postgres.IsForeignKeyViolation(err) {
		return nil, apperror.NotFound("ingredient %s was not found", ingredientID)
	}
	return item, err
}

func (r *PGRepository) Increment(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, at time.Time) (*model.InventoryItem, error) {
	query := `
        UPDATE inventory
        SET quantity = quantity + $1, updated_at = $2
        WHERE tier = $3 AND ingredient_id = $4` + returning
	return r.getOne(ctx, query, quantity, at, tier, ingredientID)
}

// Decrement is a conditional update: the row only changes while it holds at least quantity.
func (r *PGRepository) Decrement(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, at time.Time) (*model.InventoryItem, error) {
	query := `
        UPDATE inventory
        SET quantity = quantity - $1, updated_at = $2
        WHERE tier = $3 AND ingredient_id = $4 AND quantity >= $1` + returning
	item, err := r.getOne(ctx, query, quantity, at, tier, ingredientID)
	if postgres.IsCheckViolation(err) {
		return nil, nil
	}
	return item, err
}

func (r *PGRepository) SetQuantity(ctx context.Context, tier model.Tier, ingredientID string, quantity float64, at time.Time) (*model.InventoryItem, error) {
	query := `
        UPDATE inventory
        SET quantity = $1, updated_at = $2
        WHERE tier = $3 AND ingredient_id = $4` + returning
	return r.getOne(ctx, query, quantity, at, tier, ingredientID)
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.InventoryMovement) error {
	query := `
        INSERT INTO inventory_movements (
            id, tier, ingredient_id, movement_type, quantity_change,
            quantity_before, quantity_after, reference, created_by, created_at
        )
        VALUES (
            :id, :tier, :ingredient_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reference, :created_by, :created_at
        )
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, m)
	return err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	items := []model.InventoryMovement{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Tier != "" {
		conditions = append(conditions, "tier = :tier")
		args["tier"] = f.Tier
	}
	if f.IngredientID != "" {
		conditions = append(conditions, "ingredient_id = :ingredient_id")
		args["ingredient_id"] = f.IngredientID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM inventory_movements"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, tier, ingredient_id, movement_type, quantity_change, quantity_before, quantity_after,
        reference, created_by, created_at FROM inventory_movements` + whereClause + ` ORDER BY created_at DESC`
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	listQuery, listArgs, err := r.DB.BindNamed(query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.SelectContext(ctx, &items, listQuery, listArgs...); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) getOne(ctx context.Context, query string, args ...interface{}) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := postgres.Conn(ctx, r.DB).GetContext(ctx, &item, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
