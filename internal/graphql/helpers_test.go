package graphql

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.appointy.com/jaal/schemabuilder"

	"github.com/tuanvumaihuynh/graphql-crm/internal/apperr"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/ptr"
)

func TestCursorRoundTrip(t *testing.T) {
	offset, err := decodeCursor(encodeCursor(41))
	require.NoError(t, err)
	assert.Equal(t, 41, offset)

	for _, bad := range []string{"!!", "b2Zmc2V0Oi0x", "YWJj"} {
		_, err := decodeCursor(bad)
		assert.True(t, errors.Is(err, apperr.InvalidArgumentErr), bad)
	}
}

func TestPageArgs(t *testing.T) {
	page, err := pageArgs{First: ptr.New(int32(10)), After: ptr.New(encodeCursor(9))}.page()
	require.NoError(t, err)
	assert.Equal(t, repository.Page{Limit: 10, Offset: 10}, page)

	_, err = pageArgs{First: ptr.New(int32(-1))}.page()
	assert.Error(t, err)
}

func TestNewConnection(t *testing.T) {
	conn := newConnection([]string{"a", "b"}, 5, repository.Page{Limit: 2, Offset: 2})

	assert.Equal(t, 5, conn.TotalCount)
	require.Len(t, conn.Edges, 2)
	assert.Equal(t, encodeCursor(2), conn.Edges[0].Cursor)
	assert.True(t, conn.PageInfo.HasNextPage)
	assert.True(t, conn.PageInfo.HasPreviousPage)
	assert.Equal(t, encodeCursor(3), *conn.PageInfo.EndCursor)

	empty := newConnection[string](nil, 0, repository.Page{})
	assert.Empty(t, empty.Edges)
	assert.False(t, empty.PageInfo.HasNextPage)
	assert.Nil(t, empty.PageInfo.StartCursor)
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseTime(" 2025-06-01T10:00:00+02:00 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), got.UTC())

	_, err = parseTime("yesterday")
	assert.ErrorContains(t, err, `invalid date "yesterday"`)
}

func TestUnmarshalDecimal(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "string", value: "10.50", want: "10.5"},
		{name: "padded string", value: " 20 ", want: "20"},
		{name: "float", value: 19.99, want: "19.99"},
		{name: "json number", value: json.Number("7"), want: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decimal
			require.NoError(t, unmarshalDecimal(tt.value, reflect.ValueOf(&d).Elem()))
			assert.Equal(t, tt.want, d.String())
		})
	}

	var d Decimal
	assert.ErrorContains(t, unmarshalDecimal("ten", reflect.ValueOf(&d).Elem()), `invalid decimal "ten"`)
	assert.Error(t, unmarshalDecimal(true, reflect.ValueOf(&d).Elem()))
}

func TestUnmarshalDateTime(t *testing.T) {
	var dt DateTime
	require.NoError(t, unmarshalDateTime("2025-03-14", reflect.ValueOf(&dt).Elem()))
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), dt.Time)

	assert.Error(t, unmarshalDateTime(float64(20250314), reflect.ValueOf(&dt).Elem()))
}

func TestScalars_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Price Decimal
		At    DateTime
	}{
		Price: Decimal{decimal.RequireFromString("15.5")},
		At:    DateTime{time.Date(2025, 6, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Price": "15.50", "At": "2025-06-01T08:00:00Z"}`, string(out))
}

func TestProductsParams_PriceRange(t *testing.T) {
	params, err := productsParams(allProductsArgs{
		PriceGte: &Decimal{decimal.RequireFromString("10")},
		PriceLte: &Decimal{decimal.RequireFromString("20")},
		OrderBy:  &[]string{"-price"},
	})
	require.NoError(t, err)

	assert.Equal(t, "10", params.Filter.PriceGte.String())
	assert.Equal(t, "20", params.Filter.PriceLte.String())
	assert.Nil(t, params.Filter.StockGte)
	assert.Equal(t, []string{"-price"}, params.OrderBy)
}

func TestOrdersParams_ProductID(t *testing.T) {
	_, err := ordersParams(allOrdersArgs{ProductId: &schemabuilder.ID{Value: "7"}})
	assert.True(t, errors.Is(err, apperr.InvalidArgumentErr))

	params, err := ordersParams(allOrdersArgs{
		ProductId:    &schemabuilder.ID{Value: "0198c0de-0000-7000-8000-000000000001"},
		CustomerName: ptr.New("ali"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0198c0de-0000-7000-8000-000000000001", params.Filter.ProductID.String())
	assert.Equal(t, "ali", *params.Filter.CustomerName)
	assert.Nil(t, params.OrderBy)
}
