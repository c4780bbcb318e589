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

func (r *PGRepository) Create(ctx context.Context, t *model.Table) error {
	query := `
        INSERT INTO restaurant_tables (id, number, is_reserved, created_at, updated_at)
        VALUES (:id, :number, :is_reserved, :created_at, :updated_at)
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, t)
	if postgres.IsUniqueViolation(err) {
		return apperror.Conflict("table number %d already exists", t.Number)
	}
	return err
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &count, `SELECT count(*) FROM restaurant_tables`)
	return count, err
}

func (r *PGRepository) List(ctx context.Context) ([]model.Table, error) {
	var tables []model.Table
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &tables,
		`SELECT id, number, is_reserved, created_at, updated_at FROM restaurant_tables ORDER BY number`)
	return tables, err
}

func (r *PGRepository) FindByNumber(ctx context.Context, number int) (*model.Table, error) {
	var t model.Table
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &t,
		`SELECT id, number, is_reserved, created_at, updated_at FROM restaurant_tables WHERE number = $1`, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) MarkReserved(ctx context.Context, number int) (bool, error) {
	return r.exec(ctx,
		`UPDATE restaurant_tables SET is_reserved = TRUE, updated_at = NOW() WHERE number = $1 AND NOT is_reserved`, number)
}

func (r *PGRepository) MarkReleased(ctx context.Context, number int) (bool, error) {
	return r.exec(ctx,
		`UPDATE restaurant_tables SET is_reserved = FALSE, updated_at = NOW() WHERE number = $1`, number)
}

func (r *PGRepository) exec(ctx context.Context, query string, args ...interface{}) (bool, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
