package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const ingredientColumns = `id, name, unit, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, i *model.Ingredient) error {
	query := `
        INSERT INTO ingredients (id, name, unit, created_at, updated_at)
        VALUES (:id, :name, :unit, :created_at, :updated_at)
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, i)
	if postgres.IsUniqueViolation(err) {
		return apperror.Conflict("ingredient %q already exists", i.Name)
	}
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	if err := postgres.Conn(ctx, r.DB).GetContext(ctx, &ingredient, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Ingredient, error) {
	ingredients := []model.Ingredient{}
	query := `SELECT ` + ingredientColumns + ` FROM ingredients ORDER BY name`
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &ingredients, query)
	return ingredients, err
}

func (r *PGRepository) Update(ctx context.Context, i *model.Ingredient) error {
	query := `UPDATE ingredients SET name = :name, unit = :unit, updated_at = :updated_at WHERE id = :id`
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, i)
	if postgres.IsUniqueViolation(err) {
		return apperror.Conflict("ingredient %q already exists", i.Name)
	}
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	return err
}

func (r *PGRepository) RemoveFromRecipes(ctx context.Context, id string) (int64, error) {
	return r.exec(ctx, `DELETE FROM product_ingredients WHERE ingredient_id = $1`, id)
}

func (r *PGRepository) DeleteStock(ctx context.Context, id string) (int64, error) {
	return r.exec(ctx, `DELETE FROM inventory WHERE ingredient_id = $1`, id)
}

func (r *PGRepository) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
