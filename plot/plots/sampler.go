// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"math"

	"cogentcore.org/plotscope/plot"
)

// Sample summarizes the elements falling into one bin of the visible
// window. Positions are in axis space, indexes refer to elements.
type Sample struct {
	// Index is the bin number within the window.
	Index int

	// From and To are the first and last element of the bin.
	From, To int

	// XL and XR are the x of the first and last element.
	XL, XR float64

	// Min and Max are the y extent of the bin, Avg the mean of the
	// element y values.
	Min, Max, Avg float64

	// MinIndex and MaxIndex are the elements at Min and Max.
	MinIndex, MaxIndex int

	Count int
}

// Center returns the x midpoint of the sample.
func (s *Sample) Center() float64 {
	return (s.XL + s.XR) / 2
}

// Sampler buckets the elements of a series sorted by x.
type Sampler struct {
	// Ranged makes each element contribute both PY and PY2 to the
	// bin extent, for bars, stems and areas.
	Ranged bool
}

// Sample returns the non-empty bins of the elements in [from, to)
// obtained by splitting [xl, xr] into n equal bins. Elements with a
// missing y are skipped.
func (sp Sampler) Sample(els []plot.Element, from, to int, xl, xr float64, n int) []Sample {
	if n <= 0 || xr <= xl {
		return nil
	}
	w := (xr - xl) / float64(n)
	var out []Sample
	var cur *Sample
	sum := 0.0
	finish := func() {
		if cur != nil {
			cur.Avg = sum / float64(cur.Count)
		}
	}
	for i := from; i < to; i++ {
		e := &els[i]
		if e.Y.IsNone() || e.Y.IsNaN() {
			continue
		}
		b := int(math.Floor((e.PX - xl) / w))
		b = min(max(b, 0), n-1)
		lo, hi, v := e.PY, e.PY, e.PY
		if sp.Ranged {
			lo, hi = min(e.PY, e.PY2), max(e.PY, e.PY2)
			v = e.PY2
		}
		if cur == nil || cur.Index != b {
			finish()
			out = append(out, Sample{Index: b, From: i, XL: e.PX, Min: lo, Max: hi, MinIndex: i, MaxIndex: i})
			cur = &out[len(out)-1]
			sum = 0
		}
		cur.To, cur.XR = i, e.PX
		cur.Count++
		sum += v
		if lo < cur.Min {
			cur.Min, cur.MinIndex = lo, i
		}
		if hi > cur.Max {
			cur.Max, cur.MaxIndex = hi, i
		}
	}
	finish()
	return out
}
