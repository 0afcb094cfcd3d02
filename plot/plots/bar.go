// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/render"
)

// Bar draws one rectangle from (X, Y) to (X2, Y2) per element.
type Bar struct {
	base
}

// NewBar returns the bar item of s.
func NewBar(s *plot.Series) *Bar {
	return &Bar{base{s: s}}
}

func (b *Bar) rect(ctx *Context, e *plot.Element) (x, y, w, h float64) {
	x, y, w, h = rectOf(ctx.x(e.PX), ctx.y(b.s, e.PY), ctx.x(e.PX2), ctx.y(b.s, e.PY2))
	// keep bars narrower than a pixel visible
	w = max(w, 1)
	return
}

func (b *Bar) Render(ctx *Context) {
	g := ctx.group(b.s)
	if !b.s.ShowItem {
		return
	}
	from, to := b.visible(ctx)
	for i := from; i < to; i++ {
		e := &b.s.Elements[i]
		x, y, w, h := b.rect(ctx, e)
		st := b.fillStyle(e)
		if ctx.HighlightID == b.s.ID {
			st.StrokeWidth++
		}
		g.Add(&render.Rect{ID: b.s.ID + "_" + e.ID, X: x, Y: y, W: w, H: h, Style: st})
	}
}

func (b *Bar) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	from, to := b.visible(ctx)
	for i := from; i < to; i++ {
		x, y, w, h := b.rect(ctx, &b.s.Elements[i])
		if inRect(px, py, x, y, w, h) {
			return ElementRef{Index: i}, true
		}
	}
	return ElementRef{}, false
}

// Stem draws a segment from Y to Y2 at X per element.
type Stem struct {
	base
}

// NewStem returns the stem item of s.
func NewStem(s *plot.Series) *Stem {
	return &Stem{base{s: s}}
}

func (st *Stem) Render(ctx *Context) {
	g := ctx.group(st.s)
	if !st.s.ShowItem {
		return
	}
	from, to := st.visible(ctx)
	for i := from; i < to; i++ {
		e := &st.s.Elements[i]
		sty := st.strokeStyle()
		if c, op := st.color(e); c != "" {
			sty.Stroke, sty.StrokeOpacity = c, op
		}
		if e.DashArray != "" {
			sty.DashArray = e.DashArray
		}
		if e.Width > 0 {
			sty.StrokeWidth = e.Width
		}
		x := ctx.x(e.PX)
		g.Add(&render.Line{ID: st.s.ID + "_" + e.ID, X1: x, Y1: ctx.y(st.s, e.PY), X2: x, Y2: ctx.y(st.s, e.PY2), Style: sty})
	}
}

func (st *Stem) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	from, to := st.visible(ctx)
	r := hitRadius(st.s.Width)
	for i := from; i < to; i++ {
		e := &st.s.Elements[i]
		x, y, w, h := rectOf(ctx.x(e.PX)-r, ctx.y(st.s, e.PY), ctx.x(e.PX)+r, ctx.y(st.s, e.PY2))
		if inRect(px, py, x, y, w, h) {
			return ElementRef{Index: i}, true
		}
	}
	return ElementRef{}, false
}
