package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a purchase by one customer of one or more products.
// TotalAmount is the sum of product prices at creation and is never recomputed.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	ProductIDs  []uuid.UUID     `json:"product_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}

// SumPrices returns the sum of the given product prices.
func SumPrices(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}
