package handler

import (
	"context"
	"time"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/order"
	"github.com/fekuna/omnipos-pos-service/internal/order/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ posv1.OrderServiceServer = (*OrderHandler)(nil)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) CreateOrder(ctx context.Context, req *posv1.CreateOrderRequest) (*posv1.OrderResponse, error) {
	input, err := mapInput(req.Order)
	if err != nil {
		return nil, err
	}

	o, err := h.uc.CreateOrder(ctx, input)
	if err != nil {
		h.logger.Warn("failed to create order", zap.Error(err))
		return nil, err
	}
	return &posv1.OrderResponse{Order: mapOrderToProto(o)}, nil
}

func (h *OrderHandler) UpdateOrder(ctx context.Context, req *posv1.UpdateOrderRequest) (*posv1.OrderResponse, error) {
	if req.OrderCode == "" {
		return nil, status.Error(codes.InvalidArgument, "order_code is required")
	}
	input, err := mapInput(req.Order)
	if err != nil {
		return nil, err
	}

	o, err := h.uc.UpdateOrder(ctx, req.OrderCode, input)
	if err != nil {
		h.logger.Warn("failed to update order", zap.String("order_code", req.OrderCode), zap.Error(err))
		return nil, err
	}
	return &posv1.OrderResponse{Order: mapOrderToProto(o)}, nil
}

func (h *OrderHandler) CancelOrder(ctx context.Context, req *posv1.OrderCodeRequest) (*posv1.Empty, error) {
	if req.OrderCode == "" {
		return nil, status.Error(codes.InvalidArgument, "order_code is required")
	}
	if err := h.uc.CancelOrder(ctx, req.OrderCode); err != nil {
		return nil, err
	}
	return &posv1.Empty{}, nil
}

func (h *OrderHandler) Invoice(ctx context.Context, req *posv1.OrderCodeRequest) (*posv1.OrderResponse, error) {
	if req.OrderCode == "" {
		return nil, status.Error(codes.InvalidArgument, "order_code is required")
	}
	o, err := h.uc.Invoice(ctx, req.OrderCode)
	if err != nil {
		return nil, err
	}
	return &posv1.OrderResponse{Order: mapOrderToProto(o)}, nil
}

func (h *OrderHandler) GetOrder(ctx context.Context, req *posv1.OrderCodeRequest) (*posv1.OrderResponse, error) {
	o, err := h.uc.GetOrder(ctx, req.OrderCode)
	if err != nil {
		return nil, err
	}
	return &posv1.OrderResponse{Order: mapOrderToProto(o)}, nil
}

func (h *OrderHandler) ListOrders(ctx context.Context, req *posv1.ListOrdersRequest) (*posv1.ListOrdersResponse, error) {
	orders, err := h.uc.ListOrders(ctx, &dto.ListOrdersFilter{Days: req.Days, ActiveOnly: req.ActiveOnly})
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		return nil, err
	}

	out := make([]*posv1.Order, len(orders))
	for i := range orders {
		out[i] = mapOrderToProto(&orders[i])
	}
	return &posv1.ListOrdersResponse{Orders: out}, nil
}

func mapInput(in *posv1.OrderInput) (*dto.OrderInput, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "order is required")
	}

	total := decimal.Zero
	if in.Total != "" {
		t, err := decimal.NewFromString(in.Total)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid total %q", in.Total)
		}
		total = t
	}

	input := &dto.OrderInput{
		Type:         model.OrderType(in.Type),
		TableNumber:  in.TableNumber,
		CustomerName: in.CustomerName,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		Products:     make([]model.OrderProduct, len(in.Products)),
		Deals:        make([]model.OrderDeal, len(in.Deals)),
		Total:        total,
	}
	for i, p := range in.Products {
		input.Products[i] = model.OrderProduct{ProductID: p.ProductID, Quantity: p.Quantity}
	}
	for i, d := range in.Deals {
		input.Deals[i] = model.OrderDeal{DealID: d.DealID, Quantity: d.Quantity}
	}
	return input, nil
}

func mapOrderToProto(o *model.Order) *posv1.Order {
	out := &posv1.Order{
		ID:           o.ID,
		OrderCode:    o.Code,
		Type:         string(o.Type),
		TableNumber:  o.TableNumber,
		CustomerName: o.CustomerName,
		PhoneNumber:  o.PhoneNumber,
		Address:      o.Address,
		Status:       string(o.Status),
		Total:        o.Total.StringFixed(2),
		Products:     make([]posv1.ProductLine, len(o.Products)),
		Deals:        make([]posv1.DealLine, len(o.Deals)),
		CreatedAt:    o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    o.UpdatedAt.Format(time.RFC3339),
	}
	for i, p := range o.Products {
		out.Products[i] = posv1.ProductLine{ProductID: p.ProductID, Quantity: p.Quantity}
	}
	for i, d := range o.Deals {
		out.Deals[i] = posv1.DealLine{DealID: d.DealID, Quantity: d.Quantity}
	}
	return out
}
