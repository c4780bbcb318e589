package handler

import (
	"context"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/internal/report"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"go.uber.org/zap"
)

var _ posv1.ReportServiceServer = (*ReportHandler)(nil)

type ReportHandler struct {
	uc     report.UseCase
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, log logger.ZapLogger) *ReportHandler {
	return &ReportHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReportHandler) DailyReport(ctx context.Context, req *posv1.DailyReportRequest) (*posv1.DailyReportResponse, error) {
	s, err := h.uc.DailyReport(ctx, req.Days)
	if err != nil {
		h.logger.Error("failed to build daily report", zap.Int("days", req.Days), zap.Error(err))
		return nil, err
	}

	days := make([]*posv1.DailyReport, len(s.Days))
	for i, d := range s.Days {
		days[i] = &posv1.DailyReport{
			Date:   d.Date,
			Sales:  d.Sales.StringFixed(2),
			Profit: d.Profit.StringFixed(2),
		}
	}
	return &posv1.DailyReportResponse{
		TotalSales:  s.TotalSales.StringFixed(2),
		TotalProfit: s.TotalProfit.StringFixed(2),
		TotalOrders: s.TotalOrders,
		Days:        days,
	}, nil
}
