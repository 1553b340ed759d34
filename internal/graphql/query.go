package graphql

import (
	"context"

	"github.com/google/uuid"
	"go.appointy.com/jaal/schemabuilder"

	"github.com/tuanvumaihuynh/graphql-crm/internal/apperr"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/ptr"
)

type allCustomersArgs struct {
	First          *int32
	After          *string
	NameIcontains  *string
	EmailIcontains *string
	CreatedAtGte   *DateTime
	CreatedAtLte   *DateTime
	PhonePattern   *string
	OrderBy        *[]string
}

type allProductsArgs struct {
	First         *int32
	After         *string
	NameIcontains *string
	PriceGte      *Decimal
	PriceLte      *Decimal
	StockGte      *int
	StockLte      *int
	OrderBy       *[]string
}

type allOrdersArgs struct {
	First          *int32
	After          *string
	TotalAmountGte *Decimal
	TotalAmountLte *Decimal
	OrderDateGte   *DateTime
	OrderDateLte   *DateTime
	CustomerName   *string
	ProductName    *string
	ProductId      *schemabuilder.ID //nolint:revive
	OrderBy        *[]string
}

func (r *Resolver) registerQuery(sb *schemabuilder.Schema) {
	q := sb.Query()

	q.FieldFunc("hello", func() string { return helloMessage })

	q.FieldFunc("allCustomers", func(ctx context.Context, args allCustomersArgs) (*Connection[Customer], error) {
		params, err := customersParams(args)
		if err != nil {
			return nil, r.publicError(ctx, "allCustomers", err)
		}

		res, err := r.customerSvc.ListCustomers(ctx, params)
		if err != nil {
			return nil, r.publicError(ctx, "allCustomers", err)
		}

		return newConnection(mapSlice(res.Customers, toCustomer), res.TotalCount, params.Page), nil
	})

	q.FieldFunc("allProducts", func(ctx context.Context, args allProductsArgs) (*Connection[Product], error) {
		params, err := productsParams(args)
		if err != nil {
			return nil, r.publicError(ctx, "allProducts", err)
		}

		res, err := r.productSvc.ListProducts(ctx, params)
		if err != nil {
			return nil, r.publicError(ctx, "allProducts", err)
		}

		return newConnection(mapSlice(res.Products, toProduct), res.TotalCount, params.Page), nil
	})

	q.FieldFunc("allOrders", func(ctx context.Context, args allOrdersArgs) (*OrderConnection, error) {
		params, err := ordersParams(args)
		if err != nil {
			return nil, r.publicError(ctx, "allOrders", err)
		}

		res, err := r.orderSvc.ListOrders(ctx, params)
		if err != nil {
			return nil, r.publicError(ctx, "allOrders", err)
		}

		return &OrderConnection{
			Connection: *newConnection(mapSlice(res.Orders, toOrder), res.TotalCount, params.Page),
			filter:     params.Filter,
		}, nil
	})
}

func customersParams(args allCustomersArgs) (repository.ListCustomersParams, error) {
	page, err := pageArgs{First: args.First, After: args.After}.page()
	if err != nil {
		return repository.ListCustomersParams{}, err
	}

	filter := repository.CustomerFilter{
		NameIcontains:  args.NameIcontains,
		EmailIcontains: args.EmailIcontains,
		CreatedAtGte:   timePtr(args.CreatedAtGte),
		CreatedAtLte:   timePtr(args.CreatedAtLte),
		PhonePattern:   args.PhonePattern,
	}

	return repository.ListCustomersParams{
		Filter:  filter,
		OrderBy: ptr.ValueOr(args.OrderBy, nil),
		Page:    page,
	}, nil
}

func productsParams(args allProductsArgs) (repository.ListProductsParams, error) {
	page, err := pageArgs{First: args.First, After: args.After}.page()
	if err != nil {
		return repository.ListProductsParams{}, err
	}

	filter := repository.ProductFilter{
		NameIcontains: args.NameIcontains,
		PriceGte:      decimalPtr(args.PriceGte),
		PriceLte:      decimalPtr(args.PriceLte),
		StockGte:      args.StockGte,
		StockLte:      args.StockLte,
	}

	return repository.ListProductsParams{
		Filter:  filter,
		OrderBy: ptr.ValueOr(args.OrderBy, nil),
		Page:    page,
	}, nil
}

func ordersParams(args allOrdersArgs) (repository.ListOrdersParams, error) {
	page, err := pageArgs{First: args.First, After: args.After}.page()
	if err != nil {
		return repository.ListOrdersParams{}, err
	}

	filter := repository.OrderFilter{
		TotalAmountGte: decimalPtr(args.TotalAmountGte),
		TotalAmountLte: decimalPtr(args.TotalAmountLte),
		OrderDateGte:   timePtr(args.OrderDateGte),
		OrderDateLte:   timePtr(args.OrderDateLte),
		CustomerName:   args.CustomerName,
		ProductName:    args.ProductName,
	}
	if args.ProductId != nil {
		productID, err := uuid.Parse(args.ProductId.Value)
		if err != nil {
			return repository.ListOrdersParams{}, apperr.InvalidArgumentErr.WithMsg("productId: %v", err)
		}
		filter.ProductID = &productID
	}

	return repository.ListOrdersParams{
		Filter:  filter,
		OrderBy: ptr.ValueOr(args.OrderBy, nil),
		Page:    page,
	}, nil
}
