package graphql

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.appointy.com/jaal/schemabuilder"
)

// Decimal is a money amount. It is written as a string with two places
// and read from a string or a number.
type Decimal struct {
	decimal.Decimal
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, d.StringFixed(2)), nil
}

// DateTime is written as RFC 3339 in UTC. Input also accepts YYYY-MM-DD.
type DateTime struct {
	time.Time
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, t.UTC().Format(time.RFC3339)), nil
}

func init() {
	if err := schemabuilder.RegisterScalar(reflect.TypeOf(Decimal{}), "Decimal", unmarshalDecimal); err != nil {
		panic(err)
	}
	if err := schemabuilder.RegisterScalar(reflect.TypeOf(DateTime{}), "DateTime", unmarshalDateTime); err != nil {
		panic(err)
	}
}

func unmarshalDecimal(value interface{}, dest reflect.Value) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case float64:
		raw = strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		raw = strconv.FormatInt(v, 10)
	case int:
		raw = strconv.Itoa(v)
	case json.Number:
		raw = v.String()
	default:
		return fmt.Errorf("invalid decimal: unsupported type %T", value)
	}

	d, err := parseDecimal(raw)
	if err != nil {
		return err
	}
	dest.Set(reflect.ValueOf(Decimal{d}))
	return nil
}

func unmarshalDateTime(value interface{}, dest reflect.Value) error {
	raw, ok := value.(string)
	if !ok {
		return fmt.Errorf("invalid date: unsupported type %T", value)
	}

	t, err := parseTime(raw)
	if err != nil {
		return err
	}
	dest.Set(reflect.ValueOf(DateTime{t}))
	return nil
}

// parseTime accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func parseTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid decimal %q", raw)
	}
	return d, nil
}

func decimalPtr(d *Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	return &d.Decimal
}

func timePtr(t *DateTime) *time.Time {
	if t == nil {
		return nil
	}
	return &t.Time
}
