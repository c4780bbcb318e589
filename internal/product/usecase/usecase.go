package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/cache"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/fekuna/omnipos-pos-service/pkg/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	indexName     = "products"
	listCacheTTL  = 5 * time.Minute
	listKeyPrefix = "products:list:"
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"category_id": { "type": "keyword" },
			"price": { "type": "keyword" },
			"deleted": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	tx     product.Transactor
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

// NewProductUseCase wires the catalog's product store. cache and es are optional.
func NewProductUseCase(repo product.Repository, tx product.Transactor, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		tx:     tx,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
	}
	apply(p, input)

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return uc.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateProductCache(ctx)
	go uc.syncToElastic(context.WithoutCancel(ctx), p)

	return p, nil
}

// GetProduct returns soft-deleted products too; orders placed before the delete still reference them.
func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product %s was not found", id)
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product `json:"products"`
	Count    int             `json:"count"`
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := uc.generateCacheKey(filters)
	if uc.cache != nil {
		var hit cachedList
		ok, err := uc.cache.GetJSON(ctx, cacheKey, &hit)
		if err != nil {
			uc.logger.Warn("product cache read failed", zap.Error(err))
		}
		if ok {
			return hit.Products, hit.Count, nil
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, cachedList{Products: products, Count: count}, listCacheTTL); err != nil {
			uc.logger.Warn("product cache write failed", zap.Error(err))
		}
	}
	return products, count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.ProductInput) (*model.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	var p *model.Product
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || p.Deleted {
			return apperror.NotFound("product %s was not found", id)
		}

		apply(p, input)
		p.UpdatedAt = time.Now().UTC()
		return uc.repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateProductCache(ctx)
	go uc.syncToElastic(context.WithoutCancel(ctx), p)

	return p, nil
}

// DeleteProduct flags the product deleted and pulls it out of every deal.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	var deals int64
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.repo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
			return err
		}
		var err error
		deals, err = uc.repo.RemoveFromDeals(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	uc.logger.Info("product deleted", zap.String("product_id", id), zap.Int64("deal_lines", deals))

	uc.invalidateProductCache(ctx)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), indexName, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *productUseCase) checkCategory(ctx context.Context, categoryID string) error {
	ok, err := uc.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("category %s was not found", categoryID)
	}
	return nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]any{
		{"match": map[string]any{"name": map[string]any{"query": filters.SearchQuery, "fuzziness": "AUTO"}}},
	}
	if filters.CategoryID != "" {
		must = append(must, map[string]any{"term": map[string]any{"category_id": filters.CategoryID}})
	}

	q := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":     must,
				"must_not": []map[string]any{{"term": map[string]any{"deleted": true}}},
			},
		},
	}
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		q["from"] = (page - 1) * filters.PageSize
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			uc.logger.Warn("skipping malformed product document", zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	if err := uc.es.CreateIndex(ctx, indexName, indexMapping); err != nil {
		uc.logger.Warn("failed to ensure product index", zap.Error(err))
	}
	if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) string {
	data, _ := json.Marshal(filters)
	return fmt.Sprintf("%s%x", listKeyPrefix, md5.Sum(data))
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, listKeyPrefix+"*"); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func apply(p *model.Product, input *dto.ProductInput) {
	p.Name = input.Name
	p.CategoryID = input.CategoryID
	p.Cost = input.Cost
	p.Price = input.Price
	p.ImageURL = input.ImageURL
	p.Ingredients = make([]model.ProductIngredient, len(input.Ingredients))
	for i, ing := range input.Ingredients {
		ing.ProductID = p.ID
		p.Ingredients[i] = ing
	}
}
