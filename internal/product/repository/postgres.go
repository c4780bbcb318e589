package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, name, category_id, cost, price, image_url, deleted, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// Create inserts the product and its recipe. Run it inside a transaction.
func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	q := postgres.Conn(ctx, r.DB)
	query := `
        INSERT INTO products (
            id, name, category_id, cost, price, image_url, deleted, created_at, updated_at
        )
        VALUES (
            :id, :name, :category_id, :cost, :price, :image_url, :deleted, :created_at, :updated_at
        )
    `
	if _, err := q.NamedExecContext(ctx, query, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.Conflict("product %q already exists", p.Name)
		}
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NotFound("category %s was not found", p.CategoryID)
		}
		return err
	}
	return r.insertRecipe(ctx, q, p)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	q := postgres.Conn(ctx, r.DB)

	var product model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`
	if err := q.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	products := []model.Product{product}
	if err := r.loadRecipes(ctx, q, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	q := postgres.Conn(ctx, r.DB)
	products := []model.Product{}
	var count int

	conditions := []string{"NOT deleted"}
	args := map[string]interface{}{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = "%" + f.SearchQuery + "%"
	}
	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery, countArgs, err := q.BindNamed("SELECT count(*) FROM products"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := q.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + productColumns + " FROM products" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	listQuery, listArgs, err := q.BindNamed(query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := q.SelectContext(ctx, &products, listQuery, listArgs...); err != nil {
		return nil, 0, err
	}
	if err := r.loadRecipes(ctx, q, products); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

// Update replaces the product's fields and recipe. Run it inside a transaction.
func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	q := postgres.Conn(ctx, r.DB)
	query := `
        UPDATE products
        SET name = :name,
            category_id = :category_id,
            cost = :cost,
            price = :price,
            image_url = :image_url,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := q.NamedExecContext(ctx, query, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.Conflict("product %q already exists", p.Name)
		}
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NotFound("category %s was not found", p.CategoryID)
		}
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM product_ingredients WHERE product_id = $1`, p.ID); err != nil {
		return err
	}
	return r.insertRecipe(ctx, q, p)
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE products SET deleted = TRUE, updated_at = $1 WHERE id = $2 AND NOT deleted`, at, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("product %s was not found", id)
	}
	return nil
}

func (r *PGRepository) RemoveFromDeals(ctx context.Context, id string) (int64, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM deal_products WHERE product_id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) CategoryExists(ctx context.Context, categoryID string) (bool, error) {
	var exists bool
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, categoryID)
	return exists, err
}

func (r *PGRepository) insertRecipe(ctx context.Context, q postgres.Querier, p *model.Product) error {
	for _, ing := range p.Ingredients {
		_, err := q.ExecContext(ctx,
			`INSERT INTO product_ingredients (product_id, ingredient_id, quantity) VALUES ($1, $2, $3)`,
			p.ID, ing.IngredientID, ing.Quantity)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return apperror.NotFound("ingredient %s was not found", ing.IngredientID)
			}
			return err
		}
	}
	return nil
}

// loadRecipes fills Ingredients, with ingredient names, for every product in one query.
func (r *PGRepository) loadRecipes(ctx context.Context, q postgres.Querier, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
		products[i].Ingredients = []model.ProductIngredient{}
	}

	query, args, err := sqlx.In(`
        SELECT pi.product_id, pi.ingredient_id, g.name, pi.quantity
        FROM product_ingredients pi
        JOIN ingredients g ON g.id = pi.ingredient_id
        WHERE pi.product_id IN (?)
        ORDER BY pi.product_id, g.name`, ids)
	if err != nil {
		return err
	}

	var lines []model.ProductIngredient
	if err := q.SelectContext(ctx, &lines, q.Rebind(query), args...); err != nil {
		return err
	}
	for _, l := range lines {
		i := index[l.ProductID]
		products[i].Ingredients = append(products[i].Ingredients, l)
	}
	return nil
}
