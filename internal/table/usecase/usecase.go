package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/table"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type tableUseCase struct {
	repo   table.Repository
	logger logger.ZapLogger
}

func NewTableUseCase(repo table.Repository, log logger.ZapLogger) table.UseCase {
	return &tableUseCase{
		repo:   repo,
		logger: log,
	}
}

// CreateTable numbers the new table count+1.
func (uc *tableUseCase) CreateTable(ctx context.Context) (*model.Table, error) {
	count, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &model.Table{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Number:    count + 1,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	uc.logger.Info("table created", zap.Int("number", t.Number))
	return t, nil
}

func (uc *tableUseCase) ListTables(ctx context.Context) ([]model.Table, error) {
	return uc.repo.List(ctx)
}

func (uc *tableUseCase) Reserve(ctx context.Context, number int) error {
	ok, err := uc.repo.MarkReserved(ctx, number)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	t, err := uc.repo.FindByNumber(ctx, number)
	if err != nil {
		return err
	}
	if t == nil {
		return apperror.NotFound("table %d was not found", number)
	}
	return apperror.Conflict("table %d is already reserved", number)
}

func (uc *tableUseCase) Release(ctx context.Context, number int) error {
	ok, err := uc.repo.MarkReleased(ctx, number)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("table %d was not found", number)
	}
	return nil
}

func (uc *tableUseCase) ReleaseTable(ctx context.Context, number int) (*model.Table, error) {
	if err := uc.Release(ctx, number); err != nil {
		return nil, err
	}
	t, err := uc.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.NotFound("table %d was not found", number)
	}
	return t, nil
}
