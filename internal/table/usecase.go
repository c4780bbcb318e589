package table

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type UseCase interface {
	CreateTable(ctx context.Context) (*model.Table, error)
	ListTables(ctx context.Context) ([]model.Table, error)
	Reserve(ctx context.Context, number int) error
	Release(ctx context.Context, number int) error
	// ReleaseTable releases and returns the table, for callers outside the order engine.
	ReleaseTable(ctx context.Context, number int) (*model.Table, error)
}
