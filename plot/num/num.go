// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package num provides [Value], the coordinate type used on plot axes.
// A Value is either an ordinary float64 or an arbitrary-precision
// decimal, which time and nanotime axes use to hold nanosecond
// timestamps exactly. Arithmetic between a float and a decimal
// produces a decimal. The zero Value is [None], an absent coordinate.
package num

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/segmentio/encoding/json"
	"github.com/shopspring/decimal"
)

type kind uint8

const (
	none kind = iota
	float
	big
)

// Value is a float64 or decimal coordinate, or None.
type Value struct {
	k kind
	f float64
	d decimal.Decimal
}

// None is the absent value.
var None Value

// Float returns a float Value.
func Float(f float64) Value {
	return Value{k: float, f: f}
}

// Big returns a decimal Value.
func Big(d decimal.Decimal) Value {
	return Value{k: big, d: d}
}

// BigInt returns a decimal Value holding the given integer.
func BigInt(i int64) Value {
	return Big(decimal.NewFromInt(i))
}

// ParseBig parses a decimal string such as "1697000000123456789".
func ParseBig(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return None, fmt.Errorf("num.ParseBig: %w", err)
	}
	return Big(d), nil
}

// MustParseBig is [ParseBig] that panics on error, for constants and tests.
func MustParseBig(s string) Value {
	v, err := ParseBig(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsNone returns whether v is absent.
func (v Value) IsNone() bool { return v.k == none }

// IsBig returns whether v is a decimal.
func (v Value) IsBig() bool { return v.k == big }

// IsNaN returns whether v is a float NaN.
func (v Value) IsNaN() bool { return v.k == float && math.IsNaN(v.f) }

// IsInf returns whether v is a float infinity.
func (v Value) IsInf() bool { return v.k == float && math.IsInf(v.f, 0) }

// Float64 returns v as a float64. None is NaN.
func (v Value) Float64() float64 {
	switch v.k {
	case float:
		return v.f
	case big:
		f, _ := v.d.Float64()
		return f
	}
	return math.NaN()
}

// Decimal returns v as a decimal. None and non-finite floats are zero.
func (v Value) Decimal() decimal.Decimal {
	switch v.k {
	case big:
		return v.d
	case float:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v.f)
	}
	return decimal.Zero
}

// ToBig returns v converted to a decimal Value. None stays None.
func (v Value) ToBig() Value {
	if v.k == none {
		return v
	}
	return Big(v.Decimal())
}

func (v Value) binary(o Value, ff func(a, b float64) float64, df func(a, b decimal.Decimal) decimal.Decimal) Value {
	if v.k == none || o.k == none {
		return None
	}
	if v.k == big || o.k == big {
		return Big(df(v.Decimal(), o.Decimal()))
	}
	return Float(ff(v.f, o.f))
}

// Add returns v + o.
func (v Value) Add(o Value) Value {
	return v.binary(o, func(a, b float64) float64 { return a + b }, decimal.Decimal.Add)
}

// Sub returns v - o.
func (v Value) Sub(o Value) Value {
	return v.binary(o, func(a, b float64) float64 { return a - b }, decimal.Decimal.Sub)
}

// Mul returns v * o.
func (v Value) Mul(o Value) Value {
	return v.binary(o, func(a, b float64) float64 { return a * b }, decimal.Decimal.Mul)
}

// Div returns v / o. Decimal division uses [decimal.DivisionPrecision].
func (v Value) Div(o Value) Value {
	return v.binary(o, func(a, b float64) float64 { return a / b }, decimal.Decimal.Div)
}

// Quo returns v / o. Decimal division is rounded to the given number
// of fraction digits instead of [decimal.DivisionPrecision].
func (v Value) Quo(o Value, precision int32) Value {
	return v.binary(o, func(a, b float64) float64 { return a / b }, func(a, b decimal.Decimal) decimal.Decimal {
		return a.DivRound(b, precision)
	})
}

// AddFloat returns v + f.
func (v Value) AddFloat(f float64) Value { return v.Add(Float(f)) }

// SubFloat returns v - f.
func (v Value) SubFloat(f float64) Value { return v.Sub(Float(f)) }

// MulFloat returns v * f.
func (v Value) MulFloat(f float64) Value { return v.Mul(Float(f)) }

// DivFloat returns v / f.
func (v Value) DivFloat(f float64) Value { return v.Div(Float(f)) }

// Ratio returns v / o as a float64, computed in decimal arithmetic
// when either operand is a decimal.
func (v Value) Ratio(o Value) float64 {
	return v.Div(o).Float64()
}

// Neg returns -v.
func (v Value) Neg() Value {
	switch v.k {
	case float:
		return Float(-v.f)
	case big:
		return Big(v.d.Neg())
	}
	return v
}

// Abs returns |v|.
func (v Value) Abs() Value {
	switch v.k {
	case float:
		return Float(math.Abs(v.f))
	case big:
		return Big(v.d.Abs())
	}
	return v
}

// Ceil returns the least integer value greater than or equal to v.
func (v Value) Ceil() Value {
	switch v.k {
	case float:
		return Float(math.Ceil(v.f))
	case big:
		return Big(v.d.Ceil())
	}
	return v
}

// Floor returns the greatest integer value less than or equal to v.
func (v Value) Floor() Value {
	switch v.k {
	case float:
		return Float(math.Floor(v.f))
	case big:
		return Big(v.d.Floor())
	}
	return v
}

// Round rounds v half away from zero to the given decimal places.
func (v Value) Round(places int32) Value {
	switch v.k {
	case float:
		p := math.Pow(10, float64(places))
		return Float(math.Round(v.f*p) / p)
	case big:
		return Big(v.d.Round(places))
	}
	return v
}

// Mod returns v modulo o, with the sign of v.
func (v Value) Mod(o Value) Value {
	return v.binary(o, math.Mod, decimal.Decimal.Mod)
}

// Sign returns -1, 0 or +1. None is 0.
func (v Value) Sign() int {
	switch v.k {
	case float:
		switch {
		case v.f < 0:
			return -1
		case v.f > 0:
			return 1
		}
		return 0
	case big:
		return v.d.Sign()
	}
	return 0
}

// Cmp compares v and o, returning -1, 0 or +1.
// None compares less than every other value.
func (v Value) Cmp(o Value) int {
	switch {
	case v.k == none && o.k == none:
		return 0
	case v.k == none:
		return -1
	case o.k == none:
		return 1
	case v.k == big || o.k == big:
		if v.IsInf() {
			return v.Sign()
		}
		if o.IsInf() {
			return -o.Sign()
		}
		return v.Decimal().Cmp(o.Decimal())
	}
	switch {
	case v.f < o.f:
		return -1
	case v.f > o.f:
		return 1
	}
	return 0
}

// Less returns v < o.
func (v Value) Less(o Value) bool { return v.Cmp(o) < 0 }

// Equal returns v == o numerically.
func (v Value) Equal(o Value) bool { return v.Cmp(o) == 0 }

// IsZero returns whether v is numerically zero.
func (v Value) IsZero() bool { return v.k != none && v.Sign() == 0 }

// Min returns the smaller of a and b, ignoring None.
func Min(a, b Value) Value {
	switch {
	case a.IsNone():
		return b
	case b.IsNone():
		return a
	case b.Less(a):
		return b
	}
	return a
}

// Max returns the larger of a and b, ignoring None.
func Max(a, b Value) Value {
	switch {
	case a.IsNone():
		return b
	case b.IsNone():
		return a
	case a.Less(b):
		return b
	}
	return a
}

// String returns the decimal text of v, or "null" for None.
func (v Value) String() string {
	switch v.k {
	case float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case big:
		return v.d.String()
	}
	return "null"
}

// MarshalJSON encodes floats as numbers, decimals as strings
// and None as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.k {
	case float:
		switch {
		case math.IsNaN(v.f):
			return []byte(`"NaN"`), nil
		case math.IsInf(v.f, 1):
			return []byte(`"Infinity"`), nil
		case math.IsInf(v.f, -1):
			return []byte(`"-Infinity"`), nil
		}
		return []byte(strconv.FormatFloat(v.f, 'g', -1, 64)), nil
	case big:
		return []byte(strconv.Quote(v.d.String())), nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes numbers as floats and numeric strings as
// decimals. The strings "NaN", "Infinity" and "-Infinity" decode to
// the corresponding floats.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*v = None
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*v = Float(math.NaN())
			return nil
		case "Infinity":
			*v = Float(math.Inf(1))
			return nil
		case "-Infinity":
			*v = Float(math.Inf(-1))
			return nil
		}
		p, err := ParseBig(s)
		if err != nil {
			return err
		}
		*v = p
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("num.Value: %w", err)
	}
	*v = Float(f)
	return nil
}
