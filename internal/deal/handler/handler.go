package handler

import (
	"context"
	"time"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/internal/deal"
	"github.com/fekuna/omnipos-pos-service/internal/deal/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type DealHandler struct {
	uc     deal.UseCase
	logger logger.ZapLogger
}

func NewDealHandler(uc deal.UseCase, log logger.ZapLogger) *DealHandler {
	return &DealHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *DealHandler) CreateDeal(ctx context.Context, req *posv1.CreateDealRequest) (*posv1.DealResponse, error) {
	input, err := mapInput(req.Deal)
	if err != nil {
		return nil, err
	}
	d, err := h.uc.CreateDeal(ctx, input)
	if err != nil {
		return nil, err
	}
	return &posv1.DealResponse{Deal: mapDealToProto(d)}, nil
}

func (h *DealHandler) GetDeal(ctx context.Context, req *posv1.IDRequest) (*posv1.DealResponse, error) {
	d, err := h.uc.GetDeal(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &posv1.DealResponse{Deal: mapDealToProto(d)}, nil
}

func (h *DealHandler) ListDeals(ctx context.Context, _ *posv1.Empty) (*posv1.ListDealsResponse, error) {
	deals, err := h.uc.ListDeals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*posv1.Deal, len(deals))
	for i := range deals {
		out[i] = mapDealToProto(&deals[i])
	}
	return &posv1.ListDealsResponse{Deals: out}, nil
}

func (h *DealHandler) UpdateDeal(ctx context.Context, req *posv1.UpdateDealRequest) (*posv1.DealResponse, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	input, err := mapInput(req.Deal)
	if err != nil {
		return nil, err
	}
	d, err := h.uc.UpdateDeal(ctx, req.ID, input)
	if err != nil {
		return nil, err
	}
	return &posv1.DealResponse{Deal: mapDealToProto(d)}, nil
}

func (h *DealHandler) DeleteDeal(ctx context.Context, req *posv1.IDRequest) (*posv1.Empty, error) {
	if err := h.uc.DeleteDeal(ctx, req.ID); err != nil {
		return nil, err
	}
	return &posv1.Empty{}, nil
}

func mapInput(in *posv1.DealInput) (*dto.DealInput, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "deal is required")
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid price %q", in.Price)
	}

	products := make([]model.DealProduct, len(in.Products))
	for i, p := range in.Products {
		products[i] = model.DealProduct{ProductID: p.ProductID, Quantity: p.Quantity}
	}
	return &dto.DealInput{
		Name:     in.Name,
		Price:    price,
		ImageURL: in.ImageURL,
		Products: products,
	}, nil
}

func mapDealToProto(d *model.Deal) *posv1.Deal {
	products := make([]posv1.ProductLine, len(d.Products))
	for i, p := range d.Products {
		products[i] = posv1.ProductLine{ProductID: p.ProductID, Quantity: p.Quantity}
	}
	return &posv1.Deal{
		ID:        d.ID,
		Name:      d.Name,
		Price:     d.Price.StringFixed(2),
		ImageURL:  d.ImageURL,
		Deleted:   d.Deleted,
		Products:  products,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.Format(time.RFC3339),
	}
}
