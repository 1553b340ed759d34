package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/graphql-crm/internal/model"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
)

type ProductFilter struct {
	NameIcontains *string
	PriceGte      *decimal.Decimal
	PriceLte      *decimal.Decimal
	StockGte      *int
	StockLte      *int
}

type ListProductsParams struct {
	Filter  ProductFilter
	OrderBy []string
	Page    Page
}

type UpdateProductStockParams struct {
	ID        uuid.UUID
	Stock     int
	UpdatedAt time.Time
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	// GetProductsByIDs returns the products found for ids keyed by ID.
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error)
	// ListLowStockProducts locks and returns products with stock below threshold.
	ListLowStockProducts(ctx context.Context, threshold int) ([]model.Product, error)
	UpdateProductStock(ctx context.Context, params UpdateProductStockParams) error
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	CountProducts(ctx context.Context, filter ProductFilter) (int, error)
}

const productColumns = `id, name, price, stock, created_at, updated_at`

var productOrderColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, price, stock, created_at, updated_at)
		VALUES (@id, @name, @price, @stock, @created_at, @updated_at)
	`, pgx.NamedArgs{
		"id":         product.ID,
		"name":       product.Name,
		"price":      product.Price,
		"stock":      product.Stock,
		"created_at": product.CreatedAt,
		"updated_at": product.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r productRepository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query products by ids: %w", err)
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Product])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return byID, nil
}

func (r productRepository) ListLowStockProducts(ctx context.Context, threshold int) ([]model.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE stock < $1 FOR UPDATE`, threshold)
	if err != nil {
		return nil, fmt.Errorf("query low stock products: %w", err)
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Product])
	if err != nil {
		return nil, fmt.Errorf("collect low stock products: %w", err)
	}

	return products, nil
}

func (r productRepository) UpdateProductStock(ctx context.Context, params UpdateProductStockParams) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1`,
		params.ID, params.Stock, params.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("update product stock: %d rows affected", tag.RowsAffected())
	}

	return nil
}

func (r productRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	b := productWhere(params.Filter)
	orderBy, err := orderByClause(params.OrderBy, productOrderColumns)
	if err != nil {
		return nil, err
	}

	sql := `SELECT ` + productColumns + ` FROM products` +
		b.whereClause() + orderBy + params.Page.clause(&b)

	rows, err := r.db.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Product])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	return products, nil
}

func (r productRepository) CountProducts(ctx context.Context, filter ProductFilter) (int, error) {
	b := productWhere(filter)

	var count int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products`+b.whereClause(), b.args...,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func productWhere(f ProductFilter) sqlBuilder {
	var b sqlBuilder
	b.icontains("name", f.NameIcontains)
	gte(&b, "price", f.PriceGte)
	lte(&b, "price", f.PriceLte)
	gte(&b, "stock", f.StockGte)
	lte(&b, "stock", f.StockLte)
	return b
}
