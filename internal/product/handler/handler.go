package handler

import (
	"context"
	"time"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *posv1.CreateProductRequest) (*posv1.ProductResponse, error) {
	input, err := mapInput(req.Product)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.CreateProduct(ctx, input)
	if err != nil {
		h.logger.Warn("failed to create product", zap.Error(err))
		return nil, err
	}
	return &posv1.ProductResponse{Product: mapProductToProto(p)}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *posv1.IDRequest) (*posv1.ProductResponse, error) {
	p, err := h.uc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &posv1.ProductResponse{Product: mapProductToProto(p)}, nil
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *posv1.ListProductsRequest) (*posv1.ListProductsResponse, error) {
	filters := &dto.ProductFilters{
		CategoryID:  req.CategoryID,
		SearchQuery: req.Search,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}

	products, count, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		return nil, err
	}

	protos := make([]*posv1.Product, len(products))
	for i := range products {
		protos[i] = mapProductToProto(&products[i])
	}
	return &posv1.ListProductsResponse{
		Products: protos,
		Total:    count,
	}, nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *posv1.UpdateProductRequest) (*posv1.ProductResponse, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	input, err := mapInput(req.Product)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.UpdateProduct(ctx, req.ID, input)
	if err != nil {
		return nil, err
	}
	return &posv1.ProductResponse{Product: mapProductToProto(p)}, nil
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *posv1.IDRequest) (*posv1.Empty, error) {
	if err := h.uc.DeleteProduct(ctx, req.ID); err != nil {
		return nil, err
	}
	return &posv1.Empty{}, nil
}

func mapInput(in *posv1.ProductInput) (*dto.ProductInput, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "product is required")
	}
	cost, err := parseMoney("cost", in.Cost)
	if err != nil {
		return nil, err
	}
	price, err := parseMoney("price", in.Price)
	if err != nil {
		return nil, err
	}

	recipe := make([]model.ProductIngredient, len(in.Ingredients))
	for i, l := range in.Ingredients {
		recipe[i] = model.ProductIngredient{IngredientID: l.IngredientID, Quantity: l.Quantity}
	}
	return &dto.ProductInput{
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Cost:        cost,
		Price:       price,
		ImageURL:    in.ImageURL,
		Ingredients: recipe,
	}, nil
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s %q", field, value)
	}
	return d, nil
}

func mapProductToProto(m *model.Product) *posv1.Product {
	if m == nil {
		return nil
	}

	recipe := make([]posv1.RecipeLine, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		recipe[i] = posv1.RecipeLine{IngredientID: ing.IngredientID, Name: ing.Name, Quantity: ing.Quantity}
	}

	return &posv1.Product{
		ID:          m.ID,
		Name:        m.Name,
		CategoryID:  m.CategoryID,
		Cost:        m.Cost.StringFixed(2),
		Price:       m.Price.StringFixed(2),
		ImageURL:    m.ImageURL,
		Deleted:     m.Deleted,
		Ingredients: recipe,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
	}
}
