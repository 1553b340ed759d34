package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/service"
	"github.com/tuanvumaihuynh/graphql-crm/internal/validation"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/ptr"
)

type seeder struct {
	cfg         config.Seed
	logger      *slog.Logger
	customerSvc service.CustomerService
	productSvc  service.ProductService
}

// seed creates the sample customer and product through the validating
// services. An existing sample customer means the database is already seeded.
func (s seeder) seed(ctx context.Context) error {
	customer, err := s.customerSvc.CreateCustomer(ctx, service.CreateCustomerParams{
		Name:  s.cfg.CustomerName,
		Email: s.cfg.CustomerEmail,
		Phone: ptr.NilIfZero(s.cfg.CustomerPhone),
	})
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	if slices.Contains(customer.Errors, validation.MsgEmailExists) {
		s.logger.InfoContext(ctx, "database already seeded", slog.String("email", s.cfg.CustomerEmail))
		return nil
	}
	if len(customer.Errors) > 0 {
		return fmt.Errorf("invalid seed customer: %s", strings.Join(customer.Errors, "; "))
	}

	price, err := decimal.NewFromString(s.cfg.ProductPrice)
	if err != nil {
		return fmt.Errorf("parse seed product price: %w", err)
	}

	product, err := s.productSvc.CreateProduct(ctx, service.CreateProductParams{
		Name:  s.cfg.ProductName,
		Price: &price,
		Stock: &s.cfg.ProductStock,
	})
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	if len(product.Errors) > 0 {
		return fmt.Errorf("invalid seed product: %s", strings.Join(product.Errors, "; "))
	}

	s.logger.InfoContext(ctx, "database seeded",
		slog.String("customer_id", customer.Customer.ID.String()),
		slog.String("product_id", product.Product.ID.String()),
	)
	return nil
}
