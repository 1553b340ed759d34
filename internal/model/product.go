package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// LowStockThreshold is the stock level below which a product is restocked.
	LowStockThreshold = 10
	// RestockAmount is added to the stock of every low-stock product.
	RestockAmount = 10
)

type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the product needs restocking.
func (p Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}
