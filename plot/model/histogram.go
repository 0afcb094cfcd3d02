// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"cogentcore.org/plotscope/plot/num"
)

// Histogram display modes.
const (
	Overlap    = "OVERLAP"
	Stack      = "STACK"
	SideBySide = "SIDE_BY_SIDE"
)

// Bin is one histogram bin: the values in [X, X+DX) counted in Y,
// or in (X, X+DX] for right closed bins.
type Bin struct {
	X, DX, Y float64
}

// BinOptions configure [Bins].
type BinOptions struct {
	// Count is the number of bins; 0 means ceil(log2(n) + 1).
	Count int

	// Min and Max restrict the binned values; None means the data extent.
	Min, Max num.Value

	// RightClose closes bins on the right, adding a bin below the minimum.
	RightClose bool

	// Normed divides counts by the value count times the bin width.
	Normed bool

	// Cumulative accumulates counts over the bins.
	Cumulative bool
}

// Bins sorts values into evenly spaced bins. Values outside the
// effective [Min, Max] range are dropped.
func Bins(values []float64, o BinOptions) []Bin {
	if len(values) == 0 {
		return nil
	}
	lo, hi := slices.Min(values), slices.Max(values)
	if !o.Min.IsNone() {
		lo = o.Min.Float64()
	}
	if !o.Max.IsNone() {
		hi = o.Max.Float64()
	}
	n := o.Count
	if n <= 0 {
		n = int(math.Ceil(math.Log2(float64(len(values))) + 1))
	}
	w := (hi - lo) / float64(n)
	if w == 0 {
		w = 1
	}
	th := make([]float64, 0, n+2)
	if o.RightClose {
		th = append(th, lo-w)
	}
	for i := 0; i <= n; i++ {
		th = append(th, lo+w*float64(i))
	}
	bins := make([]Bin, len(th)-1)
	for i := range bins {
		bins[i] = Bin{X: th[i], DX: th[i+1] - th[i]}
	}
	inner := th[1 : len(th)-1]
	for _, v := range values {
		if v < lo || v > hi || math.IsNaN(v) {
			continue
		}
		var i int
		if o.RightClose {
			i = sort.SearchFloat64s(inner, v)
		} else {
			i = sort.Search(len(inner), func(k int) bool { return inner[k] > v })
		}
		bins[i].Y++
	}
	if o.Cumulative {
		for i := 1; i < len(bins); i++ {
			bins[i].Y += bins[i-1].Y
		}
	}
	if o.Normed {
		total := float64(len(values))
		for i := range bins {
			bins[i].Y /= total * bins[i].DX
		}
	}
	return bins
}

// convertHistogram bins each data series into a bar item, laid out by
// the display mode.
func (l *LegacyPayload) convertHistogram(p *Payload, data [][]float64) {
	o := BinOptions{
		Count: l.BinCount, Min: l.RangeMin, Max: l.RangeMax,
		RightClose: l.RightClose, Normed: l.Normed, Cumulative: l.Cumulative,
	}
	// all series share the bins of the combined extent
	if o.Min.IsNone() || o.Max.IsNone() {
		var all []float64
		for _, d := range data {
			all = append(all, d...)
		}
		if len(all) > 0 {
			if o.Min.IsNone() {
				o.Min = num.Float(slices.Min(all))
			}
			if o.Max.IsNone() {
				o.Max = num.Float(slices.Max(all))
			}
		}
	}
	if l.Log {
		p.YAxis.Type = "log"
	}
	if p.DisplayMode == "" {
		p.DisplayMode = Overlap
	}
	ns := float64(len(data))
	var stack []float64
	for si, d := range data {
		bins := Bins(d, o)
		it := RawItem{Type: "bar"}
		if name, ok := at(l.Names, si); ok {
			it.Legend = name
		} else if len(data) > 1 {
			it.Legend = fmt.Sprintf("series%d", si)
		}
		if c, ok := at(l.Colors, si); ok {
			it.Color, it.ColorOpacity = legacyColor(c)
		}
		if stack == nil {
			stack = make([]float64, len(bins))
		}
		for bi, b := range bins {
			e := RawElement{X: num.Float(b.X), X2: num.Float(b.X + b.DX), Y: num.Float(b.Y)}
			switch p.DisplayMode {
			case Stack:
				if bi < len(stack) {
					e.Y2 = num.Float(stack[bi])
					e.Y = num.Float(stack[bi] + b.Y)
					stack[bi] += b.Y
				}
			case SideBySide:
				w := b.DX / ns
				e.X = num.Float(b.X + w*float64(si))
				e.X2 = num.Float(b.X + w*float64(si+1))
			}
			if l.Log && e.Y2.IsNone() {
				e.Y2 = num.Float(1)
			}
			it.Elements = append(it.Elements, e)
		}
		p.Data = append(p.Data, it)
	}
}
