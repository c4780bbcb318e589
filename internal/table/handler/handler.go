package handler

import (
	"context"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/table"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ posv1.TableServiceServer = (*TableHandler)(nil)

type TableHandler struct {
	uc     table.UseCase
	logger logger.ZapLogger
}

func NewTableHandler(uc table.UseCase, log logger.ZapLogger) *TableHandler {
	return &TableHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *TableHandler) CreateTable(ctx context.Context, _ *posv1.Empty) (*posv1.TableResponse, error) {
	t, err := h.uc.CreateTable(ctx)
	if err != nil {
		h.logger.Error("failed to create table", zap.Error(err))
		return nil, err
	}
	return &posv1.TableResponse{Table: mapTableToProto(t)}, nil
}

func (h *TableHandler) ListTables(ctx context.Context, _ *posv1.Empty) (*posv1.ListTablesResponse, error) {
	tables, err := h.uc.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*posv1.Table, len(tables))
	for i := range tables {
		out[i] = mapTableToProto(&tables[i])
	}
	return &posv1.ListTablesResponse{Tables: out}, nil
}

func (h *TableHandler) ReleaseTable(ctx context.Context, req *posv1.TableNumberRequest) (*posv1.TableResponse, error) {
	if req.Number <= 0 {
		return nil, status.Error(codes.InvalidArgument, "table number must be positive")
	}
	t, err := h.uc.ReleaseTable(ctx, req.Number)
	if err != nil {
		return nil, err
	}
	return &posv1.TableResponse{Table: mapTableToProto(t)}, nil
}

func mapTableToProto(t *model.Table) *posv1.Table {
	return &posv1.Table{ID: t.ID, Number: t.Number, IsReserved: t.IsReserved}
}
