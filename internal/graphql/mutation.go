package graphql

import (
	"context"

	"go.appointy.com/jaal/schemabuilder"

	"github.com/tuanvumaihuynh/graphql-crm/internal/service"
)

func (r *Resolver) registerMutation(sb *schemabuilder.Schema) {
	m := sb.Mutation()

	m.FieldFunc("createCustomer", func(ctx context.Context, args struct {
		Input CustomerInput
	}) (*CreateCustomerPayload, error) {
		res, err := r.customerSvc.CreateCustomer(ctx, customerParams(args.Input))
		if err != nil {
			return nil, r.publicError(ctx, "createCustomer", err)
		}
		return toCreateCustomerPayload(res), nil
	})

	m.FieldFunc("bulkCreateCustomers", func(ctx context.Context, args struct {
		Input []CustomerInput
	}) (*BulkCreateCustomersPayload, error) {
		res, err := r.customerSvc.BulkCreateCustomers(ctx, mapSlice(args.Input, customerParams))
		if err != nil {
			return nil, r.publicError(ctx, "bulkCreateCustomers", err)
		}
		return toBulkCreateCustomersPayload(res), nil
	})

	m.FieldFunc("createProduct", func(ctx context.Context, args struct {
		Input ProductInput
	}) (*CreateProductPayload, error) {
		res, err := r.productSvc.CreateProduct(ctx, service.CreateProductParams{
			Name:  args.Input.Name,
			Price: &args.Input.Price.Decimal,
			Stock: args.Input.Stock,
		})
		if err != nil {
			return nil, r.publicError(ctx, "createProduct", err)
		}
		return toCreateProductPayload(res), nil
	})

	m.FieldFunc("createOrder", func(ctx context.Context, args struct {
		Input OrderInput
	}) (*CreateOrderPayload, error) {
		res, err := r.orderSvc.CreateOrder(ctx, service.CreateOrderParams{
			CustomerID: args.Input.CustomerID.Value,
			ProductIDs: parseIDs(args.Input.ProductIDs),
			OrderDate:  timePtr(args.Input.OrderDate),
		})
		if err != nil {
			return nil, r.publicError(ctx, "createOrder", err)
		}
		return toCreateOrderPayload(res), nil
	})

	m.FieldFunc("updateLowStockProducts", func(ctx context.Context) (*UpdateLowStockProductsPayload, error) {
		res, err := r.productSvc.UpdateLowStockProducts(ctx)
		if err != nil {
			return nil, r.publicError(ctx, "updateLowStockProducts", err)
		}
		return toUpdateLowStockProductsPayload(res), nil
	})
}

func customerParams(in CustomerInput) service.CreateCustomerParams {
	return service.CreateCustomerParams{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}
}
