// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"fmt"
	"math"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/axis"
	"cogentcore.org/plotscope/plot/model"
	"cogentcore.org/plotscope/plot/num"
	"cogentcore.org/plotscope/plot/plots"
)

// MinBoxZoom is the smallest box in pixels, on both sides, that
// [Scope.ZoomBox] zooms to.
const MinBoxZoom = 5

// calcDefaultFocus returns the focus showing the data range of the
// shown items plus the plot margins, overridden by the user focus.
func (sc *Scope) calcDefaultFocus() plot.Focus {
	m := sc.model
	var left, right []plots.Item
	for _, it := range sc.items {
		if it.Series().UseYAxisR {
			right = append(right, it)
		} else {
			left = append(left, it)
		}
	}
	all := plot.DataRange(sc.items)
	if all.Visible == 0 {
		return plot.FullFocus
	}
	r := all.Range
	mg := m.Margin
	uf := m.UserFocus
	f := plot.FullFocus
	f.XL = sc.xAxis.Percent(pick(uf.XL, r.XL.Sub(r.XSpan.MulFloat(mg.Left))))
	f.XR = sc.xAxis.Percent(pick(uf.XR, r.XR.Add(r.XSpan.MulFloat(mg.Right))))
	f.YL, f.YR = focusY(sc.yAxis, left, &m.YAxis, m.YIncludeZero, m.YPreventNegative, mg, uf.YL, uf.YR)
	if sc.yAxisR != nil {
		f.YLR, f.YRR = focusY(sc.yAxisR, right, m.YAxisR, m.YRIncludeZero, false, mg, uf.YLR, uf.YRR)
	}
	return f.Fix()
}

func focusY(a *axis.Axis, items []plots.Item, spec *model.AxisSpec, includeZero, preventNegative bool, mg plot.Margin, ufl, ufr num.Value) (float64, float64) {
	res := plot.DataRange(items)
	if res.Visible == 0 {
		return 0, 1
	}
	r := res.Range
	span := r.YSpan
	r.YL = r.YL.Sub(span.MulFloat(spec.LowerMargin))
	r.YR = r.YR.Add(span.MulFloat(spec.UpperMargin))
	if includeZero && r.YL.Sign() > 0 {
		r.YL = num.Float(0)
	}
	r.UpdateSpans()
	yl := pick(ufl, r.YL.Sub(r.YSpan.MulFloat(mg.Bottom)))
	yr := pick(ufr, r.YR.Add(r.YSpan.MulFloat(mg.Top)))
	if preventNegative && yl.Sign() < 0 {
		yl = num.Float(0)
	}
	return a.Percent(yl), a.Percent(yr)
}

// pick returns v, or def when v is None.
func pick(v, def num.Value) num.Value {
	if v.IsNone() {
		return def
	}
	return v
}

// setFocus fixes and stores the focus and publishes it with the zoom
// level.
func (sc *Scope) setFocus(f plot.Focus) {
	sc.focus = f.Fix()
	errors.Log(sc.State.Set(FocusKey, sc.focus))
	errors.Log(sc.State.Set(ZoomLevelKey, sc.ZoomLevel()))
}

// ZoomLevel returns the horizontal magnification of the focus
// relative to the default focus.
func (sc *Scope) ZoomLevel() float64 {
	s := sc.focus.XSpan()
	if s <= 0 {
		return 1
	}
	return sc.defaultFocus.XSpan() / s
}

// SetFocus shows the given window in axis space.
func (sc *Scope) SetFocus(f plot.Focus) error {
	if err := sc.check(); err != nil {
		return err
	}
	sc.setFocus(f)
	return sc.Update()
}

// ZoomAt magnifies the focus by factor around the pixel; a factor
// below 1 zooms out. Over the y axis labels only y is zoomed, and
// over the x axis labels only x.
func (sc *Scope) ZoomAt(px, py, factor float64) error {
	if err := sc.check(); err != nil {
		return err
	}
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("scope: invalid zoom factor %v", factor)
	}
	mp := sc.mapping
	zoomX := px >= mp.Layout.Left
	zoomY := py <= mp.Height-mp.Layout.Bottom
	if !zoomX && !zoomY {
		return nil
	}
	f := sc.focus
	scale := func(l, r, c float64) (float64, float64) {
		return c - (c-l)/factor, c + (r-c)/factor
	}
	if zoomX {
		f.XL, f.XR = scale(f.XL, f.XR, mp.InvX(px))
	}
	if zoomY {
		f.YL, f.YR = scale(f.YL, f.YR, mp.InvY(py))
		f.YLR, f.YRR = scale(f.YLR, f.YRR, mp.InvYR(py))
	}
	sc.setFocus(f)
	return sc.Update()
}

// ZoomBox focuses on the pixel box with corners (x0, y0) and (x1, y1).
// Boxes smaller than [MinBoxZoom] are ignored.
func (sc *Scope) ZoomBox(x0, y0, x1, y1 float64) error {
	if err := sc.check(); err != nil {
		return err
	}
	if math.Abs(x1-x0) < MinBoxZoom || math.Abs(y1-y0) < MinBoxZoom {
		return nil
	}
	mp := sc.mapping
	f := sc.focus
	f.XL, f.XR = mp.InvX(min(x0, x1)), mp.InvX(max(x0, x1))
	f.YL, f.YR = mp.InvY(max(y0, y1)), mp.InvY(min(y0, y1))
	f.YLR, f.YRR = mp.InvYR(max(y0, y1)), mp.InvYR(min(y0, y1))
	sc.setFocus(f)
	return sc.Update()
}

// Pan moves the focus by the pixel distance (dx, dy), as when the
// plot is dragged. The focus stays within the axes.
func (sc *Scope) Pan(dx, dy float64) error {
	if err := sc.check(); err != nil {
		return err
	}
	mp := sc.mapping
	f := sc.focus
	if w := mp.PlotWidth(); w > 0 {
		d := dx / w * f.XSpan()
		f.XL, f.XR = f.XL-d, f.XR-d
	}
	if h := mp.PlotHeight(); h > 0 {
		d := dy / h * f.YSpan()
		f.YL, f.YR = f.YL+d, f.YR+d
		dr := dy / h * (f.YRR - f.YLR)
		f.YLR, f.YRR = f.YLR+dr, f.YRR+dr
	}
	sc.setFocus(f)
	return sc.Update()
}

// ResetFocus returns to the default focus.
func (sc *Scope) ResetFocus() error {
	if err := sc.check(); err != nil {
		return err
	}
	sc.setFocus(sc.defaultFocus)
	return sc.Update()
}
