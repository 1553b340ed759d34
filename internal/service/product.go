package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/graphql-crm/internal/event"
	"github.com/tuanvumaihuynh/graphql-crm/internal/model"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
	"github.com/tuanvumaihuynh/graphql-crm/internal/validation"
)

const MsgLowStockRestocked = "Low stock products successfully restocked."

type CreateProductParams struct {
	Name  string
	Price *decimal.Decimal
	Stock *int
}

type CreateProductResult struct {
	Product *model.Product
	Errors  []string
}

// UpdateLowStockProductsResult lists restocked products in scan order,
// both as records and as "name (stock: N)" lines.
type UpdateLowStockProductsResult struct {
	Success         string
	UpdatedProducts []string
	Products        []model.Product
}

type ListProductsResult struct {
	Products   []model.Product
	TotalCount int
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (CreateProductResult, error)
	UpdateLowStockProducts(ctx context.Context) (UpdateLowStockProductsResult, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	ListProducts(ctx context.Context, params repository.ListProductsParams) (ListProductsResult, error)
}

type productService struct {
	logger        *slog.Logger
	db            db.DB
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	logger *slog.Logger,
	db db.DB,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		logger:        logger.With(slog.String("service", "product")),
		db:            db,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (CreateProductResult, error) {
	errs := append(validation.Price(params.Price), validation.Stock(params.Stock)...)
	if len(errs) > 0 {
		return CreateProductResult{Errors: errs}, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return CreateProductResult{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	product := model.Product{
		ID:        id,
		Name:      params.Name,
		Price:     *params.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if params.Stock != nil {
		product.Stock = *params.Stock
	}

	msg, err := newOutboxMsg(ctx, event.TopicProductCreated, product.ID.String(), event.ProductCreatedEvent{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Price:     product.Price.StringFixed(2),
		Stock:     product.Stock,
	})
	if err != nil {
		return CreateProductResult{}, err
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.productRepo.
			WithDB(db).
			CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return CreateProductResult{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "product created", slog.String("product_id", product.ID.String()))

	return CreateProductResult{Product: &product}, nil
}

func (s *productService) UpdateLowStockProducts(ctx context.Context) (UpdateLowStockProductsResult, error) {
	result := UpdateLowStockProductsResult{
		Success:         MsgLowStockRestocked,
		UpdatedProducts: []string{},
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		products, err := productRepo.ListLowStockProducts(ctx, model.LowStockThreshold)
		if err != nil {
			return fmt.Errorf("product repository list low stock products: %w", err)
		}
		if len(products) == 0 {
			return nil
		}

		now := time.Now()
		ev := event.ProductsRestockedEvent{Products: make([]event.RestockedProduct, 0, len(products))}
		for _, p := range products {
			p.Stock += model.RestockAmount
			p.UpdatedAt = now

			if err := productRepo.UpdateProductStock(ctx, repository.UpdateProductStockParams{
				ID:        p.ID,
				Stock:     p.Stock,
				UpdatedAt: p.UpdatedAt,
			}); err != nil {
				return fmt.Errorf("product repository update product stock: %w", err)
			}

			result.Products = append(result.Products, p)
			result.UpdatedProducts = append(result.UpdatedProducts, fmt.Sprintf("%s (stock: %d)", p.Name, p.Stock))
			ev.Products = append(ev.Products, event.RestockedProduct{
				ProductID: p.ID.String(),
				Name:      p.Name,
				Stock:     p.Stock,
			})
		}

		msg, err := newOutboxMsg(ctx, event.TopicProductsRestocked, now.Format(time.RFC3339), ev)
		if err != nil {
			return err
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return UpdateLowStockProductsResult{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "low stock products restocked", slog.Int("count", len(result.Products)))

	return result, nil
}

func (s *productService) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	byID, err := s.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("product repository get products by ids: %w", err)
	}

	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}

	return products, nil
}

func (s *productService) ListProducts(ctx context.Context, params repository.ListProductsParams) (ListProductsResult, error) {
	products, err := s.productRepo.ListProducts(ctx, params)
	if err != nil {
		return ListProductsResult{}, fmt.Errorf("product repository list products: %w", err)
	}

	count, err := s.productRepo.CountProducts(ctx, params.Filter)
	if err != nil {
		return ListProductsResult{}, fmt.Errorf("product repository count products: %w", err)
	}

	return ListProductsResult{Products: products, TotalCount: count}, nil
}
