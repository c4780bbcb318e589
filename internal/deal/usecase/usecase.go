package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/deal"
	"github.com/fekuna/omnipos-pos-service/internal/deal/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type dealUseCase struct {
	repo   deal.Repository
	tx     deal.Transactor
	logger logger.ZapLogger
}

func NewDealUseCase(repo deal.Repository, tx deal.Transactor, log logger.ZapLogger) deal.UseCase {
	return &dealUseCase{
		repo:   repo,
		tx:     tx,
		logger: log,
	}
}

func (uc *dealUseCase) CreateDeal(ctx context.Context, input *dto.DealInput) (*model.Deal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d := &model.Deal{BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}}
	apply(d, input)

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return uc.repo.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetDeal returns soft-deleted deals too so older orders can still be expanded.
func (uc *dealUseCase) GetDeal(ctx context.Context, id string) (*model.Deal, error) {
	d, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperror.NotFound("deal %s was not found", id)
	}
	return d, nil
}

func (uc *dealUseCase) ListDeals(ctx context.Context) ([]model.Deal, error) {
	return uc.repo.FindAll(ctx)
}

// UpdateDeal replaces the deal wholesale. A soft-deleted deal comes back to life.
func (uc *dealUseCase) UpdateDeal(ctx context.Context, id string, input *dto.DealInput) (*model.Deal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var d *model.Deal
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if d, err = uc.GetDeal(ctx, id); err != nil {
			return err
		}
		restored := d.Deleted

		apply(d, input)
		d.Deleted = false
		d.UpdatedAt = time.Now().UTC()
		if err := uc.repo.Update(ctx, d); err != nil {
			return err
		}
		if restored {
			uc.logger.Info("deal restored", zap.String("deal_id", id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (uc *dealUseCase) DeleteDeal(ctx context.Context, id string) error {
	return uc.repo.SoftDelete(ctx, id, time.Now().UTC())
}

func apply(d *model.Deal, input *dto.DealInput) {
	d.Name = input.Name
	d.Price = input.Price
	d.ImageURL = input.ImageURL
	d.Products = make([]model.DealProduct, len(input.Products))
	for i, p := range input.Products {
		p.DealID = d.ID
		d.Products[i] = p
	}
}
