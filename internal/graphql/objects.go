package graphql

import (
	"context"

	"go.appointy.com/jaal/schemabuilder"

	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
)

func id(v interface{ String() string }) schemabuilder.ID {
	return schemabuilder.ID{Value: v.String()}
}

func (r *Resolver) registerObjects(sb *schemabuilder.Schema) {
	customer := sb.Object("Customer", Customer{})
	customer.FieldFunc("id", func(in *Customer) schemabuilder.ID { return id(in.ID) })
	customer.FieldFunc("name", func(in *Customer) string { return in.Name })
	customer.FieldFunc("email", func(in *Customer) string { return in.Email })
	customer.FieldFunc("phone", func(in *Customer) *string { return in.Phone })
	customer.FieldFunc("createdAt", func(in *Customer) DateTime { return DateTime{in.CreatedAt} })
	customer.FieldFunc("orders", func(ctx context.Context, in *Customer) ([]Order, error) {
		res, err := r.orderSvc.ListOrders(ctx, repository.ListOrdersParams{
			Filter:  repository.OrderFilter{CustomerID: &in.ID},
			OrderBy: []string{"orderDate"},
		})
		if err != nil {
			return nil, r.publicError(ctx, "customer.orders", err)
		}
		return mapSlice(res.Orders, toOrder), nil
	})

	product := sb.Object("Product", Product{})
	product.FieldFunc("id", func(in *Product) schemabuilder.ID { return id(in.ID) })
	product.FieldFunc("name", func(in *Product) string { return in.Name })
	product.FieldFunc("price", func(in *Product) Decimal { return Decimal{in.Price} })
	product.FieldFunc("stock", func(in *Product) int { return in.Stock })
	product.FieldFunc("createdAt", func(in *Product) DateTime { return DateTime{in.CreatedAt} })
	product.FieldFunc("updatedAt", func(in *Product) DateTime { return DateTime{in.UpdatedAt} })

	order := sb.Object("Order", Order{})
	order.FieldFunc("id", func(in *Order) schemabuilder.ID { return id(in.ID) })
	order.FieldFunc("totalAmount", func(in *Order) Decimal { return Decimal{in.TotalAmount} })
	order.FieldFunc("orderDate", func(in *Order) DateTime { return DateTime{in.OrderDate} })
	order.FieldFunc("customer", func(ctx context.Context, in *Order) (*Customer, error) {
		c, err := r.customerSvc.GetCustomer(ctx, in.CustomerID)
		if err != nil {
			return nil, r.publicError(ctx, "order.customer", err)
		}
		out := toCustomer(c)
		return &out, nil
	})
	order.FieldFunc("products", func(ctx context.Context, in *Order) ([]Product, error) {
		products, err := r.productSvc.GetProductsByIDs(ctx, in.ProductIDs)
		if err != nil {
			return nil, r.publicError(ctx, "order.products", err)
		}
		return mapSlice(products, toProduct), nil
	})

	registerConnection(sb, "Customer", self[Customer])
	registerConnection(sb, "Product", self[Product])
	orders := registerConnection(sb, "Order", func(c *OrderConnection) *Connection[Order] { return &c.Connection })
	orders.FieldFunc("totalRevenue", func(ctx context.Context, in *OrderConnection) (Decimal, error) {
		sum, err := r.orderSvc.TotalRevenue(ctx, in.filter)
		if err != nil {
			return Decimal{}, r.publicError(ctx, "allOrders.totalRevenue", err)
		}
		return Decimal{sum}, nil
	})
}

// OrderConnection adds the revenue of every matching order to the page.
type OrderConnection struct {
	Connection[Order]
	filter repository.OrderFilter
}
