package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/ingredient"
	"github.com/fekuna/omnipos-pos-service/internal/ingredient/dto"
	"github.com/fekuna/omnipos-pos-service/internal/ingredient/repository"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

func newUseCase(t *testing.T) (ingredient.UseCase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	sdb := sqlx.NewDb(db, "pgx")
	return NewIngredientUseCase(repository.NewPGRepository(sdb), postgres.NewTxManager(sdb, nil), logger.NewNop()), mock
}

var ingredientCols = []string{"id", "name", "unit", "created_at", "updated_at"}

func TestCreateIngredientValidatesUnit(t *testing.T) {
	uc, mock := newUseCase(t)

	_, err := uc.CreateIngredient(context.Background(), &dto.IngredientInput{Name: "Flour", Unit: "kg"})
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateIngredientDuplicateName(t *testing.T) {
	uc, mock := newUseCase(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ingredients")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := uc.CreateIngredient(context.Background(), &dto.IngredientInput{Name: "Flour", Unit: "g"})
	if !apperror.Is(err, apperror.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestDeleteIngredientCleansRecipesAndStock(t *testing.T) {
	uc, mock := newUseCase(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM ingredients WHERE id = $1")).WithArgs("flour").
		WillReturnRows(sqlmock.NewRows(ingredientCols).AddRow("flour", "Flour", "g", now, now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_ingredients WHERE ingredient_id = $1")).WithArgs("flour").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM inventory WHERE ingredient_id = $1")).WithArgs("flour").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM ingredients WHERE id = $1")).WithArgs("flour").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := uc.DeleteIngredient(context.Background(), "flour"); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteIngredientRollsBack(t *testing.T) {
	uc, mock := newUseCase(t)
	now := time.Now()
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM ingredients WHERE id = $1")).WithArgs("flour").
		WillReturnRows(sqlmock.NewRows(ingredientCols).AddRow("flour", "Flour", "g", now, now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_ingredients")).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM inventory")).WillReturnError(boom)
	mock.ExpectRollback()

	if err := uc.DeleteIngredient(context.Background(), "flour"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteUnknownIngredient(t *testing.T) {
	uc, mock := newUseCase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM ingredients WHERE id = $1")).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(ingredientCols))
	mock.ExpectRollback()

	if err := uc.DeleteIngredient(context.Background(), "ghost"); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
