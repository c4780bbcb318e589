package usecase

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
	"github.com/fekuna/omnipos-pos-service/internal/product/repository"
	"github.com/fekuna/omnipos-pos-service/pkg/cache"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/fekuna/omnipos-pos-service/pkg/search"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var (
	productCols = []string{"id", "name", "category_id", "cost", "price", "image_url", "deleted", "created_at", "updated_at"}
	recipeCols  = []string{"product_id", "ingredient_id", "name", "quantity"}
)

type fixture struct {
	uc   product.UseCase
	mock sqlmock.Sqlmock
	mr   *miniredis.Miniredis
}

func newFixture(t *testing.T, es *search.Client) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	sdb := sqlx.NewDb(db, "pgx")

	mr := miniredis.RunT(t)
	rc := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { rc.Close() })

	uc := NewProductUseCase(repository.NewPGRepository(sdb), postgres.NewTxManager(sdb, nil), rc, es, logger.NewNop())
	return &fixture{uc: uc, mock: mock, mr: mr}
}

func expectList(mock sqlmock.Sqlmock, now time.Time) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM products WHERE NOT deleted")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE NOT deleted ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows(productCols).AddRow("p1", "Bread", "c1", "1.20", "3.00", "", false, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM product_ingredients pi")).WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(recipeCols).AddRow("p1", "flour", "Flour", 200.0))
}

func TestListProductsIsCached(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	expectList(f.mock, time.Now())

	for i := 0; i < 2; i++ {
		products, count, err := f.uc.ListProducts(ctx, &dto.ProductFilters{})
		if err != nil {
			t.Fatal(err)
		}
		if count != 1 || len(products) != 1 || products[0].Ingredients[0].Name != "Flour" {
			t.Fatalf("call %d: products = %+v, count = %d", i, products, count)
		}
		if !products[0].Price.Equal(decimal.RequireFromString("3")) {
			t.Errorf("price = %s", products[0].Price)
		}
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
	if len(f.mr.Keys()) != 1 {
		t.Errorf("cache keys = %v", f.mr.Keys())
	}
}

func TestDeleteProductPullsFromDealsAndInvalidates(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.mr.Set("products:list:abc", "{}")

	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET deleted = TRUE")).
		WithArgs(sqlmock.AnyArg(), "p1").WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM deal_products WHERE product_id = $1")).
		WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 2))
	f.mock.ExpectCommit()

	if err := f.uc.DeleteProduct(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
	if f.mr.Exists("products:list:abc") {
		t.Error("list cache not invalidated")
	}
}

func TestDeleteProductTwice(t *testing.T) {
	f := newFixture(t, nil)

	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET deleted = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectRollback()

	if err := f.uc.DeleteProduct(context.Background(), "p1"); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestGetProductIncludesDeleted(t *testing.T) {
	f := newFixture(t, nil)
	now := time.Now()

	f.mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(productCols).AddRow("p1", "Bread", "c1", "1.20", "3.00", "", true, now, now))
	f.mock.ExpectQuery(regexp.QuoteMeta("FROM product_ingredients pi")).WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(recipeCols).AddRow("p1", "flour", "Flour", 200.0))
	f.mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(productCols))

	p, err := f.uc.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Deleted || len(p.Ingredients) != 1 || p.Ingredients[0].Quantity != 200 {
		t.Errorf("product = %+v", p)
	}

	if _, err := f.uc.GetProduct(context.Background(), "ghost"); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	f := newFixture(t, nil)

	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)")).WithArgs("c9").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := f.uc.CreateProduct(context.Background(), &dto.ProductInput{
		Name:        "Bread",
		CategoryID:  "c9",
		Price:       decimal.NewFromInt(3),
		Ingredients: []model.ProductIngredient{{IngredientID: "flour", Quantity: 200}},
	})
	if !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateProductNeedsRecipe(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.CreateProduct(context.Background(), &dto.ProductInput{Name: "Air", CategoryID: "c1"})
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func newElastic(t *testing.T, handler http.HandlerFunc) *search.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" {
			io.WriteString(w, `{"version":{"number":"8.19.0"}}`)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := search.NewClient(&search.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatal(err)
	}
	return es
}

func TestSearchUsesElastic(t *testing.T) {
	es := newElastic(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_id":"p2","_source":{"id":"p2","name":"Zinger Burger","price":"5.5"}}]}}`)
	})
	f := newFixture(t, es)

	products, count, err := f.uc.ListProducts(context.Background(), &dto.ProductFilters{SearchQuery: "zinger"})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 || products[0].ID != "p2" || !products[0].Price.Equal(decimal.RequireFromString("5.5")) {
		t.Errorf("products = %+v", products)
	}
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("database should not be queried: %v", err)
	}
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	es := newElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":"unavailable"}`)
	})
	f := newFixture(t, es)
	now := time.Now()

	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM products WHERE NOT deleted AND name ILIKE $1")).
		WithArgs("%bread%").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	f.mock.ExpectQuery(regexp.QuoteMeta("AND name ILIKE $1 ORDER BY name ASC")).
		WithArgs("%bread%").
		WillReturnRows(sqlmock.NewRows(productCols).AddRow("p1", "Bread", "c1", "1.20", "3.00", "", false, now, now))
	f.mock.ExpectQuery(regexp.QuoteMeta("FROM product_ingredients pi")).
		WillReturnRows(sqlmock.NewRows(recipeCols))

	products, _, err := f.uc.ListProducts(context.Background(), &dto.ProductFilters{SearchQuery: "bread"})
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].Name != "Bread" {
		t.Errorf("products = %+v", products)
	}
}
