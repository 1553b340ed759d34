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

type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerID     *uuid.UUID
	CustomerName   *string
	ProductName    *string
	ProductID      *uuid.UUID
}

type ListOrdersParams struct {
	Filter  OrderFilter
	OrderBy []string
	Page    Page
}

type OrderRepository interface {
	WithDB(db db.DB) OrderRepository
	// CreateOrder inserts the order and its product associations.
	CreateOrder(ctx context.Context, order model.Order) error
	ListOrders(ctx context.Context, params ListOrdersParams) ([]model.Order, error)
	CountOrders(ctx context.Context, filter OrderFilter) (int, error)
	// SumTotalAmount returns the summed total_amount of the matching orders.
	SumTotalAmount(ctx context.Context, filter OrderFilter) (decimal.Decimal, error)
}

const orderColumns = `o.id, o.customer_id,
	ARRAY(
		SELECT op.product_id FROM order_products op
		WHERE op.order_id = o.id
		ORDER BY op.position
	) AS product_ids,
	o.total_amount, o.order_date`

var orderOrderColumns = map[string]string{
	"id":             "o.id",
	"totalAmount":    "o.total_amount",
	"total_amount":   "o.total_amount",
	"orderDate":      "o.order_date",
	"order_date":     "o.order_date",
	"customerName":   "c.name",
	"customer__name": "c.name",
}

type orderRepository struct {
	db db.DB
}

func NewOrderRepository(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) WithDB(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) CreateOrder(ctx context.Context, order model.Order) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO orders (id, customer_id, total_amount, order_date)
		VALUES ($1, $2, $3, $4)
	`, order.ID, order.CustomerID, order.TotalAmount, order.OrderDate)

	for i, productID := range order.ProductIDs {
		batch.Queue(`
			INSERT INTO order_products (order_id, product_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (order_id, product_id) DO NOTHING
		`, order.ID, productID, i)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r orderRepository) ListOrders(ctx context.Context, params ListOrdersParams) ([]model.Order, error) {
	b := orderWhere(params.Filter)
	orderBy, err := orderByClause(params.OrderBy, orderOrderColumns)
	if err != nil {
		return nil, err
	}

	sql := `SELECT ` + orderColumns + ` FROM orders o JOIN customers c ON c.id = o.customer_id` +
		b.whereClause() + orderBy + params.Page.clause(&b)

	rows, err := r.db.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Order])
	if err != nil {
		return nil, fmt.Errorf("collect orders: %w", err)
	}

	return orders, nil
}

func (r orderRepository) CountOrders(ctx context.Context, filter OrderFilter) (int, error) {
	b := orderWhere(filter)

	var count int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders o JOIN customers c ON c.id = o.customer_id`+b.whereClause(),
		b.args...,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}

	return count, nil
}

func (r orderRepository) SumTotalAmount(ctx context.Context, filter OrderFilter) (decimal.Decimal, error) {
	b := orderWhere(filter)

	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(o.total_amount), 0) FROM orders o JOIN customers c ON c.id = o.customer_id`+b.whereClause(),
		b.args...,
	).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum order totals: %w", err)
	}

	return sum, nil
}

func orderWhere(f OrderFilter) sqlBuilder {
	var b sqlBuilder
	gte(&b, "o.total_amount", f.TotalAmountGte)
	lte(&b, "o.total_amount", f.TotalAmountLte)
	gte(&b, "o.order_date", f.OrderDateGte)
	lte(&b, "o.order_date", f.OrderDateLte)
	if f.CustomerID != nil {
		b.where("o.customer_id = ?", *f.CustomerID)
	}
	b.icontains("c.name", f.CustomerName)
	if f.ProductName != nil {
		b.where(`EXISTS (
			SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id
			WHERE op.order_id = o.id AND p.name ILIKE ?
		)`, "%"+escapeLike(*f.ProductName)+"%")
	}
	if f.ProductID != nil {
		b.where(`EXISTS (
			SELECT 1 FROM order_products op
			WHERE op.order_id = o.id AND op.product_id = ?
		)`, *f.ProductID)
	}
	return b
}
