package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/report"
	"github.com/fekuna/omnipos-pos-service/pkg/cache"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"go.uber.org/zap"
)

type reportUseCase struct {
	repo        report.Repository
	cache       *cache.RedisClient
	cacheTTL    time.Duration
	defaultDays int
	logger      logger.ZapLogger
	now         func() time.Time
}

// NewReportUseCase builds the reporting engine. With a nil cache or a zero ttl every call hits the database.
func NewReportUseCase(repo report.Repository, cache *cache.RedisClient, ttl time.Duration, defaultDays int, log logger.ZapLogger) report.UseCase {
	if defaultDays <= 0 {
		defaultDays = 7
	}
	return &reportUseCase{
		repo:        repo,
		cache:       cache,
		cacheTTL:    ttl,
		defaultDays: defaultDays,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *reportUseCase) DailyReport(ctx context.Context, days int) (*report.Summary, error) {
	if days <= 0 {
		days = uc.defaultDays
	}

	key := fmt.Sprintf("report:daily:%d", days)
	if uc.cached() {
		var hit report.Summary
		ok, err := uc.cache.GetJSON(ctx, key, &hit)
		if err != nil {
			uc.logger.Warn("report cache read failed", zap.Error(err))
		}
		if ok {
			return &hit, nil
		}
	}

	to := uc.now()
	from := to.AddDate(0, 0, -days)

	products, err := uc.repo.ProductSales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	deals, err := uc.repo.DealSales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := report.Summarize(report.Aggregate(products, deals), total)

	if uc.cached() {
		if err := uc.cache.SetJSON(ctx, key, summary, uc.cacheTTL); err != nil {
			uc.logger.Warn("report cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

func (uc *reportUseCase) cached() bool {
	return uc.cache != nil && uc.cacheTTL > 0
}
