package money

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places used for every stored money value.
const Places = 2

// ToDecimal coerces an arbitrary value into a decimal. Nil, empty strings,
// non-numeric input, NaN and infinities all become zero. It never panics.
func ToDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return t
	case *decimal.Decimal:
		if t == nil {
			return decimal.Zero
		}
		return *t
	case Amount:
		return t.Decimal
	case *Amount:
		if t == nil {
			return decimal.Zero
		}
		return t.Decimal
	case decimal.NullDecimal:
		if !t.Valid {
			return decimal.Zero
		}
		return t.Decimal
	case string:
		return parseString(t)
	case []byte:
		return parseString(string(t))
	case json.Number:
		return parseString(t.String())
	case int:
		return decimal.NewFromInt(int64(t))
	case int8:
		return decimal.NewFromInt(int64(t))
	case int16:
		return decimal.NewFromInt(int64(t))
	case int32:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case uint:
		return decimal.NewFromUint64(uint64(t))
	case uint8:
		return decimal.NewFromUint64(uint64(t))
	case uint16:
		return decimal.NewFromUint64(uint64(t))
	case uint32:
		return decimal.NewFromUint64(uint64(t))
	case uint64:
		return decimal.NewFromUint64(t)
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	default:
		return decimal.Zero
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Input bounds for parseString. Rounding a decimal rescales it by a power of
// ten, so an exponent such as 1e-50000000 would build a huge big.Int.
const (
	maxInputLen = 64
	maxExponent = 20
	minExponent = -20
)

func parseString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxInputLen {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err == nil {
		if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
			return decimal.Zero
		}
		return d
	}
	// inputs such as "+Inf" or hex floats only parse via strconv
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return decimal.Zero
	}
	return fromFloat(f)
}

// Round2 rounds to two decimal places, half away from zero (half up for positive amounts).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Normalize coerces and rounds in one step.
func Normalize(v any) decimal.Decimal {
	return Round2(ToDecimal(v))
}

// Amount is the fixed-point money type used at the API boundary.
// It decodes from JSON numbers, numeric strings or null, and encodes as a
// plain JSON number with two decimals.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps and rounds a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: Round2(d)}
}

// AmountFromString is a convenience for tests and fixtures.
func AmountFromString(s string) Amount {
	return NewAmount(parseString(s))
}

// UnmarshalJSON accepts 12.5, "12.5", null and anything else (as zero).
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = Round2(parseString(s))
		return nil
	}
	a.Decimal = Round2(parseString(string(data)))
	return nil
}

// MarshalJSON writes the amount as an unquoted number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Round(Places).StringFixed(Places)), nil
}

// IsPositive reports whether the rounded amount is greater than zero.
func (a Amount) IsPositive() bool {
	return Round2(a.Decimal).GreaterThan(decimal.Zero)
}
