package event

import (
	"context"
	"log/slog"
)

func (s *Service) handleCustomerCreatedEvent(ctx context.Context, ev CustomerCreatedEvent) error {
	s.logger.InfoContext(ctx, "customer created",
		slog.String("customer_id", ev.CustomerID),
		slog.String("email", ev.Email),
	)
	return nil
}

func (s *Service) handleProductCreatedEvent(ctx context.Context, ev ProductCreatedEvent) error {
	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", ev.ProductID),
		slog.String("name", ev.Name),
		slog.String("price", ev.Price),
		slog.Int("stock", ev.Stock),
	)
	return nil
}

func (s *Service) handleOrderCreatedEvent(ctx context.Context, ev OrderCreatedEvent) error {
	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", ev.OrderID),
		slog.String("customer_id", ev.CustomerID),
		slog.Int("products", len(ev.ProductIDs)),
		slog.String("total_amount", ev.TotalAmount),
	)
	return nil
}

func (s *Service) handleProductsRestockedEvent(ctx context.Context, ev ProductsRestockedEvent) error {
	for _, p := range ev.Products {
		s.logger.InfoContext(ctx, "product restocked",
			slog.String("product_id", p.ProductID),
			slog.String("name", p.Name),
			slog.Int("stock", p.Stock),
		)
	}
	return nil
}
