package graphql

import (
	"go.appointy.com/jaal/schemabuilder"

	"github.com/tuanvumaihuynh/graphql-crm/internal/service"
)

type CreateCustomerPayload struct {
	Customer *Customer
	Message  *string
	Errors   []string
}

type BulkCreateCustomersPayload struct {
	Customers []Customer
	Errors    []string
}

type CreateProductPayload struct {
	Product *Product
	Errors  []string
}

type CreateOrderPayload struct {
	Order  *Order
	Errors []string
}

type UpdateLowStockProductsPayload struct {
	Success         string
	UpdatedProducts []string
	Products        []Product
}

func registerPayloads(sb *schemabuilder.Schema) {
	createCustomer := sb.Object("CreateCustomerPayload", CreateCustomerPayload{})
	createCustomer.FieldFunc("customer", func(in *CreateCustomerPayload) *Customer { return in.Customer })
	createCustomer.FieldFunc("message", func(in *CreateCustomerPayload) *string { return in.Message })
	createCustomer.FieldFunc("errors", func(in *CreateCustomerPayload) []string { return in.Errors })

	bulk := sb.Object("BulkCreateCustomersPayload", BulkCreateCustomersPayload{})
	bulk.FieldFunc("customers", func(in *BulkCreateCustomersPayload) []Customer { return in.Customers })
	bulk.FieldFunc("errors", func(in *BulkCreateCustomersPayload) []string { return in.Errors })

	createProduct := sb.Object("CreateProductPayload", CreateProductPayload{})
	createProduct.FieldFunc("product", func(in *CreateProductPayload) *Product { return in.Product })
	createProduct.FieldFunc("errors", func(in *CreateProductPayload) []string { return in.Errors })

	createOrder := sb.Object("CreateOrderPayload", CreateOrderPayload{})
	createOrder.FieldFunc("order", func(in *CreateOrderPayload) *Order { return in.Order })
	createOrder.FieldFunc("errors", func(in *CreateOrderPayload) []string { return in.Errors })

	restock := sb.Object("UpdateLowStockProductsPayload", UpdateLowStockProductsPayload{})
	restock.FieldFunc("success", func(in *UpdateLowStockProductsPayload) string { return in.Success })
	restock.FieldFunc("updatedProducts", func(in *UpdateLowStockProductsPayload) []string { return in.UpdatedProducts })
	restock.FieldFunc("products", func(in *UpdateLowStockProductsPayload) []Product { return in.Products })
}

func toCreateCustomerPayload(res service.CreateCustomerResult) *CreateCustomerPayload {
	out := &CreateCustomerPayload{Errors: nonNil(res.Errors)}
	if res.Customer != nil {
		c := toCustomer(*res.Customer)
		out.Customer = &c
		out.Message = &res.Message
	}
	return out
}

func toBulkCreateCustomersPayload(res service.BulkCreateCustomersResult) *BulkCreateCustomersPayload {
	return &BulkCreateCustomersPayload{
		Customers: mapSlice(res.Customers, toCustomer),
		Errors:    nonNil(res.Errors),
	}
}

func toCreateProductPayload(res service.CreateProductResult) *CreateProductPayload {
	out := &CreateProductPayload{Errors: nonNil(res.Errors)}
	if res.Product != nil {
		p := toProduct(*res.Product)
		out.Product = &p
	}
	return out
}

func toCreateOrderPayload(res service.CreateOrderResult) *CreateOrderPayload {
	out := &CreateOrderPayload{Errors: nonNil(res.Errors)}
	if res.Order != nil {
		o := toOrder(*res.Order)
		out.Order = &o
	}
	return out
}

func toUpdateLowStockProductsPayload(res service.UpdateLowStockProductsResult) *UpdateLowStockProductsPayload {
	return &UpdateLowStockProductsPayload{
		Success:         res.Success,
		UpdatedProducts: nonNil(res.UpdatedProducts),
		Products:        mapSlice(res.Products, toProduct),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
