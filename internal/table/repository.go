package table

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, t *model.Table) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]model.Table, error)
	// FindByNumber returns nil, nil when no table has the number.
	FindByNumber(ctx context.Context, number int) (*model.Table, error)
	// MarkReserved flips a free table to reserved and reports whether a row changed.
	MarkReserved(ctx context.Context, number int) (bool, error)
	// MarkReleased clears the flag and reports whether the table exists.
	MarkReleased(ctx context.Context, number int) (bool, error)
}
