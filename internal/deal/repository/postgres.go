package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const dealColumns = `id, name, price, image_url, deleted, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// Create inserts the deal and its bundle. Run it inside a transaction.
func (r *PGRepository) Create(ctx context.Context, d *model.Deal) error {
	q := postgres.Conn(ctx, r.DB)
	query := `
        INSERT INTO deals (id, name, price, image_url, deleted, created_at, updated_at)
        VALUES (:id, :name, :price, :image_url, :deleted, :created_at, :updated_at)
    `
	if _, err := q.NamedExecContext(ctx, query, d); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.Conflict("deal %q already exists", d.Name)
		}
		return err
	}
	return r.insertBundle(ctx, q, d)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Deal, error) {
	q := postgres.Conn(ctx, r.DB)

	var d model.Deal
	if err := q.GetContext(ctx, &d, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	deals := []model.Deal{d}
	if err := r.loadBundles(ctx, q, deals); err != nil {
		return nil, err
	}
	return &deals[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Deal, error) {
	q := postgres.Conn(ctx, r.DB)

	deals := []model.Deal{}
	if err := q.SelectContext(ctx, &deals, `SELECT `+dealColumns+` FROM deals WHERE NOT deleted ORDER BY name`); err != nil {
		return nil, err
	}
	if err := r.loadBundles(ctx, q, deals); err != nil {
		return nil, err
	}
	return deals, nil
}

// Update replaces the deal's fields and bundle and clears the deleted flag.
func (r *PGRepository) Update(ctx context.Context, d *model.Deal) error {
	q := postgres.Conn(ctx, r.DB)
	query := `
        UPDATE deals
        SET name = :name,
            price = :price,
            image_url = :image_url,
            deleted = :deleted,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := q.NamedExecContext(ctx, query, d); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.Conflict("deal %q already exists", d.Name)
		}
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM deal_products WHERE deal_id = $1`, d.ID); err != nil {
		return err
	}
	return r.insertBundle(ctx, q, d)
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE deals SET deleted = TRUE, updated_at = $1 WHERE id = $2 AND NOT deleted`, at, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("deal %s was not found", id)
	}
	return nil
}

func (r *PGRepository) insertBundle(ctx context.Context, q postgres.Querier, d *model.Deal) error {
	for _, p := range d.Products {
		_, err := q.ExecContext(ctx,
			`INSERT INTO deal_products (deal_id, product_id, quantity) VALUES ($1, $2, $3)`,
			d.ID, p.ProductID, p.Quantity)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return apperror.NotFound("product %s was not found", p.ProductID)
			}
			return err
		}
	}
	return nil
}

func (r *PGRepository) loadBundles(ctx context.Context, q postgres.Querier, deals []model.Deal) error {
	if len(deals) == 0 {
		return nil
	}

	ids := make([]string, len(deals))
	index := make(map[string]int, len(deals))
	for i := range deals {
		ids[i] = deals[i].ID
		index[deals[i].ID] = i
		deals[i].Products = []model.DealProduct{}
	}

	query, args, err := sqlx.In(`SELECT deal_id, product_id, quantity FROM deal_products WHERE deal_id IN (?) ORDER BY deal_id, product_id`, ids)
	if err != nil {
		return err
	}
	var lines []model.DealProduct
	if err := q.SelectContext(ctx, &lines, q.Rebind(query), args...); err != nil {
		return err
	}
	for _, l := range lines {
		i := index[l.DealID]
		deals[i].Products = append(deals[i].Products, l)
	}
	return nil
}
