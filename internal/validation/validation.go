// Package validation holds the field checks applied by CRM mutations.
// Every check returns human-readable messages; an empty slice means valid.
package validation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/graphql-crm/pkg/validator"
)

const (
	MsgInvalidEmail     = "Invalid email format."
	MsgEmailExists      = "Email already exists."
	MsgInvalidPhone     = "Invalid phone format."
	MsgPriceNotPositive = "Price must be positive."
	MsgStockNegative    = "Stock must be non-negative."
)

var v = validator.MustNewDefaultValidator()

// EmailLookup reports whether a customer already holds an email.
type EmailLookup interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// EmailFormat checks value as given; surrounding whitespace makes it invalid.
func EmailFormat(value string) []string {
	if err := v.Var(value, "required,email"); err != nil {
		return []string{MsgInvalidEmail}
	}
	return nil
}

// PhoneFormat accepts an empty phone since the field is optional.
func PhoneFormat(value string) []string {
	if value == "" {
		return nil
	}
	if err := v.Var(value, "phone"); err != nil {
		return []string{MsgInvalidPhone}
	}
	return nil
}

func Price(value *decimal.Decimal) []string {
	if value == nil || !value.IsPositive() {
		return []string{MsgPriceNotPositive}
	}
	return nil
}

func Stock(value *int) []string {
	if value != nil && *value < 0 {
		return []string{MsgStockNegative}
	}
	return nil
}

func UniqueEmail(ctx context.Context, lookup EmailLookup, value string) ([]string, error) {
	exists, err := lookup.EmailExists(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("email lookup: %w", err)
	}
	if exists {
		return []string{MsgEmailExists}, nil
	}
	return nil, nil
}
