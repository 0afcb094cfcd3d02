// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"

	"cogentcore.org/plotscope/plot/num"
)

// Range is a data-space bounding box.
type Range struct {
	XL    num.Value `json:"xl"`
	XR    num.Value `json:"xr"`
	YL    num.Value `json:"yl"`
	YR    num.Value `json:"yr"`
	XSpan num.Value `json:"xSpan"`
	YSpan num.Value `json:"ySpan"`
}

// NewRange returns the range with the given bounds and computed spans.
func NewRange(xl, xr, yl, yr num.Value) Range {
	r := Range{XL: xl, XR: xr, YL: yl, YR: yr}
	r.UpdateSpans()
	return r
}

// UpdateSpans recomputes XSpan and YSpan from the bounds.
func (r *Range) UpdateSpans() {
	r.XSpan = r.XR.Sub(r.XL)
	r.YSpan = r.YR.Sub(r.YL)
}

// Extend widens r to include o. None bounds of o are ignored.
func (r *Range) Extend(o Range) {
	r.XL = num.Min(r.XL, o.XL)
	r.XR = num.Max(r.XR, o.XR)
	r.YL = num.Min(r.YL, o.YL)
	r.YR = num.Max(r.YR, o.YR)
}

// Ranger is implemented by plot items that contribute to the data range.
type Ranger interface {
	// Range returns the data bounds of the item. Unbounded sides are None.
	Range() Range

	// Shown returns whether the item is visible.
	Shown() bool

	// HasLegend returns whether the item has a legend entry.
	HasLegend() bool
}

// DataRangeResult is returned by [DataRange].
type DataRangeResult struct {
	Range Range

	// Visible is the number of shown items.
	Visible int

	// Legendable is the number of items with a legend entry,
	// shown or not.
	Legendable int
}

// DataRange folds the ranges of all shown items into one bounding box.
// Hidden items are excluded from the bounds but counted in Legendable.
// A side bounded only at one end gets a span of 1, an empty result is
// [0,1], inverted bounds are swapped and equal bounds are widened by a
// tenth of the value, or by 1 when the value is 0.
func DataRange[T Ranger](items []T) DataRangeResult {
	var res DataRangeResult
	var r Range
	for _, it := range items {
		if it.HasLegend() {
			res.Legendable++
		}
		if !it.Shown() {
			continue
		}
		res.Visible++
		r.Extend(it.Range())
	}
	r.XL, r.XR = fixBounds(r.XL, r.XR, res.Visible)
	r.YL, r.YR = fixBounds(r.YL, r.YR, res.Visible)
	r.UpdateSpans()
	res.Range = r
	return res
}

func fixBounds(l, h num.Value, visible int) (num.Value, num.Value) {
	switch {
	case isUnbounded(l) && !isUnbounded(h):
		l = h.SubFloat(1)
	case isUnbounded(h) && !isUnbounded(l):
		h = l.AddFloat(1)
	case visible == 0 || isUnbounded(l):
		l, h = num.Float(0), num.Float(1)
	case h.Less(l):
		l, h = h, l
	}
	if l.Equal(h) {
		d := num.Float(1)
		if !l.IsZero() {
			d = l.DivFloat(10)
		}
		d = d.Abs()
		l, h = l.Sub(d), h.Add(d)
	}
	return l, h
}

func isUnbounded(v num.Value) bool {
	return v.IsNone() || v.IsNaN() || v.IsInf()
}

// Focus is the visible window in [0,1] axis space. YLR and YRR are
// the bounds on the right y axis.
type Focus struct {
	XL, XR, YL, YR, YLR, YRR float64
}

// FullFocus shows the whole axis range.
var FullFocus = Focus{XL: 0, XR: 1, YL: 0, YR: 1, YLR: 0, YRR: 1}

// minFocusSpan is the smallest span a focus can be zoomed to.
const minFocusSpan = 1e-12

// XSpan returns XR - XL.
func (f Focus) XSpan() float64 { return f.XR - f.XL }

// YSpan returns YR - YL.
func (f Focus) YSpan() float64 { return f.YR - f.YL }

// Fix clamps each side of the focus to [0,1], shifting a window that
// extends past one end back inside when it fits, and keeps a minimum span.
func (f Focus) Fix() Focus {
	f.XL, f.XR = fixSide(f.XL, f.XR)
	f.YL, f.YR = fixSide(f.YL, f.YR)
	f.YLR, f.YRR = fixSide(f.YLR, f.YRR)
	return f
}

func fixSide(l, r float64) (float64, float64) {
	if math.IsNaN(l) || math.IsNaN(r) {
		return 0, 1
	}
	if r < l {
		l, r = r, l
	}
	span := r - l
	if span >= 1 {
		return 0, 1
	}
	if l < 0 {
		l, r = 0, span
	}
	if r > 1 {
		l, r = 1-span, 1
	}
	if r-l < minFocusSpan {
		r = min(l+minFocusSpan, 1)
		l = r - minFocusSpan
	}
	return l, r
}
