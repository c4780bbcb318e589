package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

func newRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

var returnCols = []string{"tier", "ingredient_id", "quantity", "updated_at"}

func TestDecrementIsConditional(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`AND quantity >= $1 RETURNING`)).
		WithArgs(600.0, now, "kitchen", "flour").
		WillReturnRows(sqlmock.NewRows(returnCols))

	item, err := repo.Decrement(context.Background(), model.TierKitchen, "flour", 600, now)
	if err != nil || item != nil {
		t.Fatalf("got %v, %v; want nil, nil", item, err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`AND quantity >= $1 RETURNING`)).
		WithArgs(200.0, now, "kitchen", "flour").
		WillReturnRows(sqlmock.NewRows(returnCols).AddRow("kitchen", "flour", 200.0, now))

	item, err = repo.Decrement(context.Background(), model.TierKitchen, "flour", 200, now)
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 200 || item.Tier != model.TierKitchen {
		t.Errorf("item = %+v", item)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpsertUnknownIngredient(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (tier, ingredient_id)`)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Upsert(context.Background(), model.TierMain, "ghost", 5, time.Now())
	if !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestGetForUpdateLocksRow(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE OF i`)).
		WithArgs("kitchen", "flour").
		WillReturnRows(sqlmock.NewRows([]string{"tier", "ingredient_id", "ingredient_name", "unit", "quantity", "updated_at"}).
			AddRow("kitchen", "flour", "Flour", "g", 1000.0, now))

	item, err := repo.GetForUpdate(context.Background(), model.TierKitchen, "flour")
	if err != nil {
		t.Fatal(err)
	}
	if item.IngredientName != "Flour" || item.Unit != model.UnitGram || item.Quantity != 1000 {
		t.Errorf("item = %+v", item)
	}
}

func TestListMovementsFilters(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM inventory_movements WHERE tier = $1 AND ingredient_id = $2`)).
		WithArgs("kitchen", "flour").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC LIMIT 5 OFFSET 5`)).
		WithArgs("kitchen", "flour").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tier", "ingredient_id", "movement_type", "quantity_change",
			"quantity_before", "quantity_after", "reference", "created_by", "created_at"}).
			AddRow("m1", "kitchen", "flour", "sale", -200.0, 600.0, 400.0, "ord-1", nil, time.Now()))

	items, total, err := repo.ListMovements(context.Background(), &dto.MovementFilters{
		Tier: model.TierKitchen, IngredientID: "flour", Page: 2, PageSize: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 12 || len(items) != 1 || *items[0].Reference != "ord-1" || items[0].CreatedBy != nil {
		t.Errorf("items = %+v, total = %d", items, total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
