package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/graphql-crm/internal/apperr"
	"github.com/tuanvumaihuynh/graphql-crm/internal/event"
	"github.com/tuanvumaihuynh/graphql-crm/internal/model"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
)

const (
	MsgCustomerNotFound = "Customer does not exist."
	MsgNoProducts       = "At least one product must be provided."
)

// CreateOrderParams keeps IDs as received so unknown or malformed ones can be
// reported back verbatim.
type CreateOrderParams struct {
	CustomerID string
	ProductIDs []string
	OrderDate  *time.Time
}

type CreateOrderResult struct {
	Order  *model.Order
	Errors []string
}

type ListOrdersResult struct {
	Orders     []model.Order
	TotalCount int
}

type OrderService interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (CreateOrderResult, error)
	ListOrders(ctx context.Context, params repository.ListOrdersParams) (ListOrdersResult, error)
	TotalRevenue(ctx context.Context, filter repository.OrderFilter) (decimal.Decimal, error)
}

type orderService struct {
	logger        *slog.Logger
	db            db.DB
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewOrderService(
	logger *slog.Logger,
	db db.DB,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		logger:        logger.With(slog.String("service", "order")),
		db:            db,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (CreateOrderResult, error) {
	customerID, err := uuid.Parse(params.CustomerID)
	if err != nil {
		return CreateOrderResult{Errors: []string{MsgCustomerNotFound}}, nil
	}

	customer, err := s.customerRepo.GetCustomer(ctx, customerID)
	if errors.Is(err, apperr.NotFoundErr) {
		return CreateOrderResult{Errors: []string{MsgCustomerNotFound}}, nil
	}
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("customer repository get customer: %w", err)
	}

	if len(params.ProductIDs) == 0 {
		return CreateOrderResult{Errors: []string{MsgNoProducts}}, nil
	}

	products, errs, err := s.resolveProducts(ctx, params.ProductIDs)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if len(errs) > 0 {
		return CreateOrderResult{Errors: errs}, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	order := model.Order{
		ID:          id,
		CustomerID:  customer.ID,
		ProductIDs:  make([]uuid.UUID, 0, len(products)),
		TotalAmount: model.SumPrices(products),
		OrderDate:   time.Now(),
	}
	if params.OrderDate != nil {
		order.OrderDate = *params.OrderDate
	}
	// Repeated ids count toward the total but are linked once.
	seen := make(map[uuid.UUID]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		order.ProductIDs = append(order.ProductIDs, p.ID)
	}

	productIDs := make([]string, 0, len(order.ProductIDs))
	for _, pid := range order.ProductIDs {
		productIDs = append(productIDs, pid.String())
	}

	msg, err := newOutboxMsg(ctx, event.TopicOrderCreated, customer.ID.String(), event.OrderCreatedEvent{
		OrderID:     order.ID.String(),
		CustomerID:  customer.ID.String(),
		ProductIDs:  productIDs,
		TotalAmount: order.TotalAmount.StringFixed(2),
		OrderDate:   order.OrderDate.Format(time.RFC3339),
	})
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.orderRepo.
			WithDB(db).
			CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return CreateOrderResult{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID.String()),
		slog.String("total_amount", order.TotalAmount.StringFixed(2)),
	)

	return CreateOrderResult{Order: &order}, nil
}

// resolveProducts looks up every raw ID, reporting each unknown one.
// The returned products keep input order, duplicates included.
func (s *orderService) resolveProducts(ctx context.Context, rawIDs []string) ([]model.Product, []string, error) {
	var errs []string

	ids := make([]uuid.UUID, 0, len(rawIDs))
	parsed := make([]*uuid.UUID, len(rawIDs))
	for i, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		parsed[i] = &id
		ids = append(ids, id)
	}

	byID, err := s.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("product repository get products by ids: %w", err)
	}

	products := make([]model.Product, 0, len(rawIDs))
	for i, raw := range rawIDs {
		if parsed[i] == nil {
			errs = append(errs, fmt.Sprintf("Invalid product ID: %s", raw))
			continue
		}
		p, ok := byID[*parsed[i]]
		if !ok {
			errs = append(errs, fmt.Sprintf("Invalid product ID: %s", raw))
			continue
		}
		products = append(products, p)
	}

	return products, errs, nil
}

func (s *orderService) ListOrders(ctx context.Context, params repository.ListOrdersParams) (ListOrdersResult, error) {
	orders, err := s.orderRepo.ListOrders(ctx, params)
	if err != nil {
		return ListOrdersResult{}, fmt.Errorf("order repository list orders: %w", err)
	}

	count, err := s.orderRepo.CountOrders(ctx, params.Filter)
	if err != nil {
		return ListOrdersResult{}, fmt.Errorf("order repository count orders: %w", err)
	}

	return ListOrdersResult{Orders: orders, TotalCount: count}, nil
}

func (s *orderService) TotalRevenue(ctx context.Context, filter repository.OrderFilter) (decimal.Decimal, error) {
	sum, err := s.orderRepo.SumTotalAmount(ctx, filter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("order repository sum total amount: %w", err)
	}

	return sum, nil
}
