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

const orderColumns = `id, order_code, type, table_number, customer_name, phone_number, address, status, total, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	q := postgres.Conn(ctx, r.DB)
	query := `
        INSERT INTO orders (` + orderColumns + `)
        VALUES (
            :id, :order_code, :type, :table_number, :customer_name, :phone_number, :address,
            :status, :total, :created_at, :updated_at
        )
    `
	if _, err := q.NamedExecContext(ctx, query, o); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.Conflict("order code %s is already taken", o.Code)
		}
		return err
	}
	return r.insertLines(ctx, q, o)
}

func (r *PGRepository) FindByCode(ctx context.Context, code string) (*model.Order, error) {
	return r.findByCode(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_code = $1 LIMIT 1`, code)
}

// FindByCodeForUpdate row-locks the order, so concurrent updates, cancels and invoices of one
// code run one after the other.
func (r *PGRepository) FindByCodeForUpdate(ctx context.Context, code string) (*model.Order, error) {
	return r.findByCode(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_code = $1 FOR UPDATE`, code)
}

func (r *PGRepository) findByCode(ctx context.Context, query, code string) (*model.Order, error) {
	q := postgres.Conn(ctx, r.DB)

	var o model.Order
	err := q.GetContext(ctx, &o, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	orders := []model.Order{o}
	if err := r.loadLines(ctx, q, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// FindByDateRange returns orders created in [from, to], newest first.
func (r *PGRepository) FindByDateRange(ctx context.Context, from, to time.Time, activeOnly bool) ([]model.Order, error) {
	q := postgres.Conn(ctx, r.DB)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE created_at >= $1 AND created_at <= $2`
	args := []interface{}{from, to}
	if activeOnly {
		query += ` AND status = $3`
		args = append(args, model.OrderStatusProcessing)
	}
	query += ` ORDER BY created_at DESC`

	var orders []model.Order
	if err := q.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, q, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Update rewrites the order's fields and replaces its lines. Status is left alone.
func (r *PGRepository) Update(ctx context.Context, o *model.Order) error {
	q := postgres.Conn(ctx, r.DB)
	query := `
        UPDATE orders
        SET type = :type,
            table_number = :table_number,
            customer_name = :customer_name,
            phone_number = :phone_number,
            address = :address,
            total = :total,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := q.NamedExecContext(ctx, query, o); err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = $1`, o.ID); err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM order_deals WHERE order_id = $1`, o.ID); err != nil {
		return err
	}
	return r.insertLines(ctx, q, o)
}

func (r *PGRepository) UpdateStatus(ctx context.Context, code string, status model.OrderStatus, updatedAt time.Time) error {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE order_code = $3`, status, updatedAt, code)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("order %s was not found", code)
	}
	return nil
}

// DeleteByCode removes the order; its lines go with it through ON DELETE CASCADE.
func (r *PGRepository) DeleteByCode(ctx context.Context, code string) error {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM orders WHERE order_code = $1`, code)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("order %s was not found", code)
	}
	return nil
}

// NextCodeNumber takes the next value of order_code_seq. A cancelled order's number is not reused.
func (r *PGRepository) NextCodeNumber(ctx context.Context) (int64, error) {
	var n int64
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &n, `SELECT nextval('order_code_seq')`)
	return n, err
}

func (r *PGRepository) insertLines(ctx context.Context, q postgres.Querier, o *model.Order) error {
	for _, p := range o.Products {
		_, err := q.ExecContext(ctx,
			`INSERT INTO order_products (order_id, product_id, quantity) VALUES ($1, $2, $3)`,
			o.ID, p.ProductID, p.Quantity)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return apperror.NotFound("one of the products was not found: %s", p.ProductID)
			}
			return err
		}
	}
	for _, d := range o.Deals {
		_, err := q.ExecContext(ctx,
			`INSERT INTO order_deals (order_id, deal_id, quantity) VALUES ($1, $2, $3)`,
			o.ID, d.DealID, d.Quantity)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return apperror.NotFound("one of the deals was not found: %s", d.DealID)
			}
			return err
		}
	}
	return nil
}

// loadLines fills Products and Deals of every order with two batched queries.
func (r *PGRepository) loadLines(ctx context.Context, q postgres.Querier, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Products = []model.OrderProduct{}
		orders[i].Deals = []model.OrderDeal{}
	}

	query, args, err := sqlx.In(`SELECT order_id, product_id, quantity FROM order_products WHERE order_id IN (?) ORDER BY order_id, product_id`, ids)
	if err != nil {
		return err
	}
	var products []model.OrderProduct
	if err := q.SelectContext(ctx, &products, q.Rebind(query), args...); err != nil {
		return err
	}
	for _, p := range products {
		i := index[p.OrderID]
		orders[i].Products = append(orders[i].Products, p)
	}

	query, args, err = sqlx.In(`SELECT order_id, deal_id, quantity FROM order_deals WHERE order_id IN (?) ORDER BY order_id, deal_id`, ids)
	if err != nil {
		return err
	}
	var deals []model.OrderDeal
	if err := q.SelectContext(ctx, &deals, q.Rebind(query), args...); err != nil {
		return err
	}
	for _, d := range deals {
		i := index[d.OrderID]
		orders[i].Deals = append(orders[i].Deals, d)
	}
	return nil
}
