// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"log/slog"

	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/render"
)

// Area fills the region between Y and Y2.
type Area struct {
	base

	// StepStyle is the kind of the step edges.
	StepStyle StepKind

	warned bool
}

// NewArea returns the area item of s.
func NewArea(s *plot.Series) *Area {
	return &Area{base: base{s: s}, StepStyle: ParseStepKind(s.Interpolation)}
}

// Render draws a closed polygon: the Y2 edge forward, then the Y
// edge backward.
func (a *Area) Render(ctx *Context) {
	g := ctx.group(a.s)
	if !a.s.ShowItem {
		return
	}
	if a.s.Unordered && !a.warned {
		a.warned = true
		slog.Warn("unordered area/line detected, truncation disabled", "item", a.s.ID)
	}
	from, to := a.visible(ctx)
	var top, btm []render.Point
	for i := from; i < to; i++ {
		e := &a.s.Elements[i]
		if e.Y.IsNone() || e.Y2.IsNone() {
			continue
		}
		x := ctx.x(e.PX)
		t := render.Point{X: x, Y: ctx.y(a.s, e.PY2)}
		b := render.Point{X: x, Y: ctx.y(a.s, e.PY)}
		if len(top) == 0 {
			top, btm = append(top, t), append(btm, b)
			continue
		}
		top = stepPoints(top, a.StepStyle, top[len(top)-1], t)
		btm = stepPoints(btm, a.StepStyle, btm[len(btm)-1], b)
	}
	if len(top) < 2 {
		return
	}
	pts := make([]render.Point, 0, len(top)+len(btm))
	pts = append(pts, top...)
	for i := len(btm) - 1; i >= 0; i-- {
		pts = append(pts, btm[i])
	}
	st := a.fillStyle(nil)
	if ctx.HighlightID == a.s.ID && st.FillOpacity > 0 {
		st.FillOpacity = min(st.FillOpacity+0.2, 1)
	}
	g.Add(&render.Path{ID: a.s.ID + "_area", Points: pts, Closed: true, Style: st})
}

// Hit returns the element whose x is nearest the pixel when the pixel
// lies between its Y and Y2.
func (a *Area) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	from, to := a.visible(ctx)
	best, bestD := -1, hitRadius(0)
	for i := from; i < to; i++ {
		e := &a.s.Elements[i]
		d := px - ctx.x(e.PX)
		if d < 0 {
			d = -d
		}
		if d > bestD {
			continue
		}
		y0, y1 := ctx.y(a.s, e.PY), ctx.y(a.s, e.PY2)
		if py < min(y0, y1) || py > max(y0, y1) {
			continue
		}
		best, bestD = i, d
	}
	return ElementRef{Index: best}, best >= 0
}
