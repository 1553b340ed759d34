package validation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/graphql-crm/internal/validation"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/ptr"
)

type emailLookupFunc func(ctx context.Context, email string) (bool, error)

func (f emailLookupFunc) EmailExists(ctx context.Context, email string) (bool, error) {
	return f(ctx, email)
}

func TestEmailFormat(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "plain", email: "alice@example.com", valid: true},
		{name: "no domain", email: "alice", valid: false},
		{name: "empty", email: "", valid: false},
		{name: "leading space", email: " alice@example.com", valid: false},
		{name: "trailing newline", email: "alice@example.com\n", valid: false},
		{name: "tab and space", email: "\talice@example.com ", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.EmailFormat(tt.email)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, []string{validation.MsgInvalidEmail}, errs)
			}
		})
	}
}

func TestPhoneFormat(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+123456789012", true},
		{"+1234567890", true},
		{"555-123-4567", true},
		{"", true},
		{"12345", false},
		{"+123", false},
		{"5551234567", false},
		{"+1234567890123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			errs := validation.PhoneFormat(tt.phone)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, []string{validation.MsgInvalidPhone}, errs)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	assert.Empty(t, validation.Price(ptr.New(decimal.RequireFromString("0.01"))))
	assert.NotEmpty(t, validation.Price(ptr.New(decimal.Zero)))
	assert.NotEmpty(t, validation.Price(ptr.New(decimal.NewFromInt(-5))))
	assert.Equal(t, []string{validation.MsgPriceNotPositive}, validation.Price(nil))
}

func TestStock(t *testing.T) {
	assert.Empty(t, validation.Stock(nil))
	assert.Empty(t, validation.Stock(ptr.New(0)))
	assert.Equal(t, []string{validation.MsgStockNegative}, validation.Stock(ptr.New(-1)))
}

func TestUniqueEmail(t *testing.T) {
	taken := emailLookupFunc(func(_ context.Context, email string) (bool, error) {
		return email == "taken@example.com", nil
	})

	errs, err := validation.UniqueEmail(context.Background(), taken, "taken@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{validation.MsgEmailExists}, errs)

	errs, err = validation.UniqueEmail(context.Background(), taken, "free@example.com")
	require.NoError(t, err)
	assert.Empty(t, errs)

	broken := emailLookupFunc(func(context.Context, string) (bool, error) {
		return false, errors.New("connection refused")
	})
	_, err = validation.UniqueEmail(context.Background(), broken, "x@example.com")
	assert.ErrorContains(t, err, "connection refused")
}
