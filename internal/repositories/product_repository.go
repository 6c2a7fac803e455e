package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/utils"
)

var ErrNotFound = errors.New("record not found")

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context) ([]*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (id, name, category, sku, price, cost, stock, low_stock_threshold, description, image_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.ID, product.Name, product.Category, product.SKU, product.Price,
		product.Cost, product.Stock, product.LowStockThreshold, product.Description,
		product.ImageURL).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, name, category, sku, price, cost, stock, low_stock_threshold, description, image_url, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name,
		&product.Category, &product.SKU, &product.Price, &product.Cost, &product.Stock,
		&product.LowStockThreshold, &product.Description, &product.ImageURL,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, category = $2, sku = $3, price = $4, cost = $5, stock = $6, low_stock_threshold = $7, description = $8, image_url = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, product.Name, product.Category,
		product.SKU, product.Price, product.Cost, product.Stock,
		product.LowStockThreshold, product.Description, product.ImageURL,
		product.ID).Scan(&product.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	return err
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, category, sku, price, cost, stock, low_stock_threshold, description, image_url, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Category, &product.SKU,
			&product.Price, &product.Cost, &product.Stock, &product.LowStockThreshold,
			&product.Description, &product.ImageURL, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
