package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

func TestWithinTransactionRollsBackAndReturnsSameError(t *testing.T) {
	db, mock := newMock(t)
	m := NewTxManager(db, nil)
	sentinel := errors.New("insufficient stock")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tables SET is_reserved = true")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := m.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if !InTransaction(ctx) {
			t.Fatal("ctx should carry the transaction")
		}
		if _, err := Conn(ctx, db).ExecContext(ctx, "UPDATE tables SET is_reserved = true"); err != nil {
			return err
		}
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("err = %v, want the sentinel unchanged", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestWithinTransactionCommitsAndJoinsNested(t *testing.T) {
	db, mock := newMock(t)
	m := NewTxManager(db, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return m.WithinTransaction(ctx, func(inner context.Context) error {
			if Conn(inner, db) != Conn(ctx, db) {
				t.Error("nested call should reuse the outer transaction")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("WithinTransaction: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestConnWithoutTransactionIsDB(t *testing.T) {
	db, _ := newMock(t)
	if Conn(context.Background(), db) != Querier(db) {
		t.Fatal("Conn should fall back to the pool")
	}
}

func TestMigrateSkipsApplied(t *testing.T) {
	db, mock := newMock(t)
	fsys := fstest.MapFS{
		"0001_init.sql":   {Data: []byte("CREATE TABLE categories (id UUID PRIMARY KEY);")},
		"0002_tables.sql": {Data: []byte("CREATE TABLE tables (id UUID PRIMARY KEY);")},
		"README.md":       {Data: []byte("not a migration")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT migration_name FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"migration_name"}).AddRow("0001_init.sql"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE tables")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("0002_tables.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	ran, err := Migrate(context.Background(), db, fsys)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(ran) != 1 || ran[0] != "0002_tables.sql" {
		t.Fatalf("ran = %v", ran)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
