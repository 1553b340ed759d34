package graphql

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/graphql-crm/internal/model"
)

// Customer is the GraphQL view of model.Customer.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     *string
	CreatedAt time.Time
}

type Product struct {
	ID        uuid.UUID
	Name      string
	Price     decimal.Decimal
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	ProductIDs  []uuid.UUID
	TotalAmount decimal.Decimal
	OrderDate   time.Time
}

func toCustomer(c model.Customer) Customer {
	return Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

func toProduct(p model.Product) Product {
	return Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toOrder(o model.Order) Order {
	return Order{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		ProductIDs:  o.ProductIDs,
		TotalAmount: o.TotalAmount,
		OrderDate:   o.OrderDate,
	}
}

func mapSlice[S, T any](in []S, f func(S) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
