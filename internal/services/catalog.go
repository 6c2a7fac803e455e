package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/qikpos/pos-platform/internal/cache"
	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
)

// CatalogService manages the product catalog. Reads are cached; every write
// invalidates the affected entries.
type CatalogService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	sanitizer *bluemonday.Policy
}

func NewCatalogService(repo repository.ProductRepository, c cache.Cache) *CatalogService {
	return &CatalogService{
		repo:      repo,
		cache:     c,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	now := time.Now().UTC()

	product := &models.Product{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Category:          req.Category,
		SKU:               req.SKU,
		Price:             req.Price,
		Cost:              req.Cost,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		Description:       s.sanitizer.Sanitize(req.Description),
		ImageURL:          req.ImageURL,
	}

	if product.Category == "" {
		product.Category = "General"
	}

	if product.LowStockThreshold <= 0 {
		product.LowStockThreshold = models.DefaultLowStockThreshold
	}

	if product.SKU == "" {
		product.SKU = fmt.Sprintf("GEN-%d", now.UnixMilli())
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	key := cache.Key(cache.ProductKeyPrefix, id)

	cached := &models.Product{}
	if found, err := s.cache.Get(ctx, key, cached); err == nil && found {
		return cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundError("Product not found: " + id)
		}

		return nil, errors.DatabaseError("Failed to load product").WithError(err)
	}

	// Cache failures are not fatal to the read path.
	_ = s.cache.Set(ctx, key, product, 0)

	return product, nil
}

// UpdateProduct merges the fields present in the request into the stored
// product; absent fields are untouched.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundError("Product not found: " + id)
		}

		return nil, errors.DatabaseError("Failed to load product").WithError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.SKU != nil {
		product.SKU = *req.SKU
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.Cost != nil {
		product.Cost = *req.Cost
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	_ = s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id))

	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, nil
}

// ListLowStockProducts returns the products at or below their restock
// threshold.
func (s *CatalogService) ListLowStockProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list products").WithError(err)
	}

	var low []*models.Product

	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}

	return low, nil
}
