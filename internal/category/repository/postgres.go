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

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, image_url, created_at, updated_at)
        VALUES (:id, :name, :image_url, :created_at, :updated_at)
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, c)
	if postgres.IsUniqueViolation(err) {
		return apperror.Conflict("category %q already exists", c.Name)
	}
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT id, name, image_url, created_at, updated_at FROM categories WHERE id = $1 LIMIT 1`
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	query := `SELECT id, name, image_url, created_at, updated_at FROM categories ORDER BY name ASC`
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &categories, query)
	return categories, err
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            image_url = :image_url,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, c)
	if postgres.IsUniqueViolation(err) {
		return apperror.Conflict("category %q already exists", c.Name)
	}
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if postgres.IsForeignKeyViolation(err) {
		return apperror.Conflict("category %s still has products", id)
	}
	return err
}

func (r *PGRepository) CountProducts(ctx context.Context, id string) (int, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE category_id = $1 AND NOT deleted`
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &count, query, id)
	return count, err
}
