package repository

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/report"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ProductSales(ctx context.Context, from, to time.Time) ([]report.ProductSale, error) {
	query := `
        SELECT o.id AS order_id, o.created_at, op.quantity, p.price, p.cost
        FROM orders o
        JOIN order_products op ON op.order_id = o.id
        JOIN products p ON p.id = op.product_id
        WHERE o.created_at > $1 AND o.created_at <= $2
        ORDER BY o.created_at`
	rows := []report.ProductSale{}
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &rows, query, from, to)
	return rows, err
}

func (r *PGRepository) DealSales(ctx context.Context, from, to time.Time) ([]report.DealSale, error) {
	query := `
        SELECT o.id AS order_id, od.deal_id, o.created_at, od.quantity, d.price,
               SUM(dp.quantity * p.cost) AS bundle_cost
        FROM orders o
        JOIN order_deals od ON od.order_id = o.id
        JOIN deals d ON d.id = od.deal_id
        JOIN deal_products dp ON dp.deal_id = d.id
        JOIN products p ON p.id = dp.product_id
        WHERE o.created_at > $1 AND o.created_at <= $2
        GROUP BY o.id, od.deal_id, o.created_at, od.quantity, d.price
        ORDER BY o.created_at`
	rows := []report.DealSale{}
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &rows, query, from, to)
	return rows, err
}

func (r *PGRepository) CountOrders(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &count,
		`SELECT count(*) FROM orders WHERE created_at > $1 AND created_at <= $2`, from, to)
	return count, err
}
