// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axis maps plot data values to fractional positions along an
// axis and computes gridline positions and labels. Axes are linear,
// logarithmic, categorical, millisecond time or nanosecond time.
// Time and nanotime axes hold their bounds as decimals so that
// nanosecond timestamps survive the mapping exactly.
package axis

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cogentcore.org/plotscope/plot/num"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Types are the kinds of axis.
type Types int32

const (
	// Linear maps values linearly.
	Linear Types = iota

	// Log holds values in log space; labels show Base^value.
	Log

	// Category places gridlines at registered category positions.
	Category

	// Time holds millisecond timestamps.
	Time

	// NanoTime holds nanosecond timestamps as decimals.
	NanoTime
)

var typeNames = [...]string{"linear", "log", "category", "time", "nanotime"}

func (t Types) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Types(%d)", t)
	}
	return typeNames[t]
}

// ParseType returns the axis type for the given payload name.
// The empty string is [Linear].
func ParseType(s string) (Types, error) {
	if s == "" {
		return Linear, nil
	}
	for i, n := range typeNames {
		if strings.EqualFold(n, s) {
			return Types(i), nil
		}
	}
	return Linear, fmt.Errorf("axis: unknown axis type %q", s)
}

func (t Types) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses an axis type name; unknown names are logged
// and decode as [Linear].
func (t *Types) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		slog.Error(err.Error())
	}
	*t = v
	return nil
}

// IsTime returns whether t is [Time] or [NanoTime].
func (t Types) IsTime() bool {
	return t == Time || t == NanoTime
}

// Axis maps between data values and fractional positions in [0,1]
// and holds the gridlines computed by [Axis.SetGridlines].
type Axis struct {

	// Type is the kind of axis.
	Type Types

	// Label is the axis title.
	Label string

	// Base is the logarithm base for [Log] axes.
	Base float64

	// Timezone is used to format [Time] and [NanoTime] labels.
	Timezone *time.Location

	printer *message.Printer
	units   units

	valL, valR, valSpan num.Value
	pctL, pctR, pctSpan float64

	marginValL, marginValR num.Value

	step  float64
	fixed int

	intervals []float64
	fixs      []int

	gridlines       []float64
	gridlineLabels  []string
	labelWithCommon string

	categoryLines  []float64
	categoryLabels []string
}

// New returns a new axis of the given type spanning [0,1].
func New(t Types) *Axis {
	a := &Axis{
		Type:     t,
		Base:     10,
		Timezone: time.UTC,
		printer:  message.NewPrinter(language.English),
		units:    unitsFor(t),
		pctR:     1,
		pctSpan:  1,
	}
	a.marginValL = num.Float(0)
	a.marginValR = num.Float(0)
	if t == NanoTime {
		a.valL, a.valR, a.valSpan = num.BigInt(0), num.BigInt(1), num.BigInt(1)
	} else {
		a.valL, a.valR, a.valSpan = num.Float(0), num.Float(1), num.Float(1)
	}
	if !t.IsTime() {
		a.fixs = numFixs(t)
	}
	return a
}

// SetLocale sets the language used to format numeric labels.
func (a *Axis) SetLocale(tag language.Tag) {
	a.printer = message.NewPrinter(tag)
}

// SetTimezone sets the location used for time labels; nil keeps the current one.
func (a *Axis) SetTimezone(loc *time.Location) {
	if loc != nil {
		a.Timezone = loc
	}
}

// SetRange sets the value bounds of the axis. A [num.None] bound keeps
// the current bound. For [Log] axes a base of 0 keeps the current base;
// a base <= 1 is reported and replaced by 10.
func (a *Axis) SetRange(vl, vr num.Value, base float64) {
	if !vl.IsNone() {
		a.valL = vl
	}
	if !vr.IsNone() {
		a.valR = vr
	}
	if a.Type == NanoTime {
		a.valL = a.valL.ToBig()
		a.valR = a.valR.ToBig()
	}
	if a.Type == Log {
		if base != 0 {
			a.Base = base
		}
		if a.Base <= 1 {
			slog.Error("axis: cannot set log base <= 1, using 10", "base", a.Base)
			a.Base = 10
		}
	}
	a.valSpan = a.valR.Sub(a.valL)
}

// L returns the left (low) value bound.
func (a *Axis) L() num.Value { return a.valL }

// R returns the right (high) value bound.
func (a *Axis) R() num.Value { return a.valR }

// Span returns R - L.
func (a *Axis) Span() num.Value { return a.valSpan }

// Step returns the gridline step chosen by the last [Axis.SetGridlines].
func (a *Axis) Step() float64 { return a.step }

// Fixed returns the number of fraction digits used for numeric labels.
func (a *Axis) Fixed() int { return a.fixed }

// Gridlines returns a copy of the gridline positions in [0,1].
func (a *Axis) Gridlines() []float64 {
	return append([]float64(nil), a.gridlines...)
}

// GridlineLabels returns a copy of the gridline labels.
func (a *Axis) GridlineLabels() []string {
	return append([]string(nil), a.gridlineLabels...)
}

// LabelWithCommon returns the axis label followed by the part shared
// by all time labels, which is stripped from the individual labels.
func (a *Axis) LabelWithCommon() string {
	return a.labelWithCommon
}

// percentPrecision is the number of fraction digits of decimal
// percents, enough to resolve single units of any int64 span.
const percentPrecision = 40

// Percent maps v to its fractional position along the axis,
// clamping v to the axis bounds first.
func (a *Axis) Percent(v num.Value) float64 {
	if v.IsNone() {
		return 0
	}
	return a.ExactPercent(v).Float64()
}

// ExactPercent is [Axis.Percent] in decimal arithmetic for decimal axes,
// so that [Axis.ExactValue] recovers v exactly.
func (a *Axis) ExactPercent(v num.Value) num.Value {
	if v.IsNone() {
		return num.Float(0)
	}
	if v.Less(a.valL) {
		v = a.valL
	}
	if a.valR.Less(v) {
		v = a.valR
	}
	if a.valSpan.IsZero() {
		return num.Float(0)
	}
	if v.IsBig() || a.valSpan.IsBig() {
		return v.Sub(a.valL).Quo(a.valSpan, percentPrecision)
	}
	return num.Float((v.Float64() - a.valL.Float64()) / a.valSpan.Float64())
}

// Value maps a fractional position, clamped to [0,1], back to a value.
// Nanotime values are rounded to whole nanoseconds.
func (a *Axis) Value(pct float64) num.Value {
	return a.ExactValue(num.Float(min(max(pct, 0), 1)))
}

// ExactValue maps a percent from [Axis.ExactPercent], clamped to [0,1],
// back to a value.
func (a *Axis) ExactValue(pct num.Value) num.Value {
	switch {
	case pct.IsNone() || pct.Sign() < 0:
		pct = num.Float(0)
	case num.Float(1).Less(pct):
		pct = num.Float(1)
	}
	var v num.Value
	if pct.IsBig() || a.valSpan.IsBig() {
		v = a.valSpan.Mul(pct.ToBig()).Add(a.valL)
	} else {
		v = a.valSpan.MulFloat(pct.Float64()).Add(a.valL)
	}
	if a.Type == NanoTime {
		v = v.Round(0)
	}
	return v
}

// Pow returns Base raised to the value at pct, the data value
// shown for a position on a [Log] axis.
func (a *Axis) Pow(pct float64) float64 {
	return pow(a.Base, a.Value(pct).Float64())
}

// SetCategoryNames registers category names at the given data positions.
// Gridlines of a [Category] axis are placed only at these positions.
func (a *Axis) SetCategoryNames(names []string, xs []num.Value) {
	a.categoryLines = a.categoryLines[:0]
	a.categoryLabels = a.categoryLabels[:0]
	for i, x := range xs {
		if i >= len(names) {
			break
		}
		a.categoryLines = append(a.categoryLines, a.Percent(x))
		a.categoryLabels = append(a.categoryLabels, names[i])
	}
}
