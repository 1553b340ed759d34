package graphql

import (
	"go.appointy.com/jaal/schemabuilder"
)

type CustomerInput struct {
	Name  string
	Email string
	Phone *string
}

type ProductInput struct {
	Name  string
	Price Decimal
	Stock *int
}

type OrderInput struct {
	CustomerID schemabuilder.ID
	ProductIDs []schemabuilder.ID
	OrderDate  *DateTime
}

func registerInputs(sb *schemabuilder.Schema) {
	customer := sb.InputObject("CustomerInput", CustomerInput{})
	customer.FieldFunc("name", func(target *CustomerInput, source string) { target.Name = source })
	customer.FieldFunc("email", func(target *CustomerInput, source string) { target.Email = source })
	customer.FieldFunc("phone", func(target *CustomerInput, source *string) { target.Phone = source })

	product := sb.InputObject("ProductInput", ProductInput{})
	product.FieldFunc("name", func(target *ProductInput, source string) { target.Name = source })
	product.FieldFunc("price", func(target *ProductInput, source Decimal) { target.Price = source })
	product.FieldFunc("stock", func(target *ProductInput, source *int) { target.Stock = source })

	order := sb.InputObject("OrderInput", OrderInput{})
	order.FieldFunc("customerId", func(target *OrderInput, source schemabuilder.ID) { target.CustomerID = source })
	order.FieldFunc("productIds", func(target *OrderInput, source []schemabuilder.ID) { target.ProductIDs = source })
	order.FieldFunc("orderDate", func(target *OrderInput, source *DateTime) { target.OrderDate = source })
}

func parseIDs(ids []schemabuilder.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Value)
	}
	return out
}
