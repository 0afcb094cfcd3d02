// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/render"
)

// ConstLine draws a line across the plot per element: vertical at X
// when X is set, otherwise horizontal at Y.
type ConstLine struct {
	base
}

// NewConstLine returns the constant line item of s.
func NewConstLine(s *plot.Series) *ConstLine {
	return &ConstLine{base{s: s}}
}

// Range only bounds the axis each line crosses.
func (c *ConstLine) Range() plot.Range {
	var r plot.Range
	for i := range c.s.Elements {
		e := &c.s.Elements[i]
		if !e.X.IsNone() {
			r.XL, r.XR = extend(r.XL, r.XR, e.X)
		} else {
			r.YL, r.YR = extend(r.YL, r.YR, e.Y)
		}
	}
	r.UpdateSpans()
	return r
}

func (c *ConstLine) Render(ctx *Context) {
	g := ctx.group(c.s)
	if !c.s.ShowItem {
		return
	}
	m := ctx.Mapping
	x0, x1 := m.Layout.Left, m.Width-m.Layout.Right
	y0, y1 := m.Layout.Top, m.Height-m.Layout.Bottom
	for i := range c.s.Elements {
		e := &c.s.Elements[i]
		st := c.strokeStyle()
		if col, op := c.color(e); col != "" {
			st.Stroke, st.StrokeOpacity = col, op
		}
		if e.Width > 0 {
			st.StrokeWidth = e.Width
		}
		id := c.s.ID + "_" + e.ID
		label := render.Style{Fill: st.Stroke, FontSize: 11}
		if !e.X.IsNone() {
			x := ctx.x(e.PX)
			g.Add(&render.Line{ID: id, X1: x, Y1: y0, X2: x, Y2: y1, Style: st})
			if c.s.ShowLabel {
				label.Anchor = render.Middle
				g.Add(&render.Text{ID: id + "_label", X: x, Y: y1 - 3, Text: ctx.XAxis.TipValueString(e.X, false), Style: label})
			}
			continue
		}
		y := ctx.y(c.s, e.PY)
		g.Add(&render.Line{ID: id, X1: x0, Y1: y, X2: x1, Y2: y, Style: st})
		if c.s.ShowLabel {
			label.Anchor = render.End
			g.Add(&render.Text{ID: id + "_label", X: x1 - 3, Y: y - 3, Text: ctx.yAxis(c.s).TipValueString(e.Y, false), Style: label})
		}
	}
}

func (c *ConstLine) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	r := hitRadius(c.s.Width)
	for i := range c.s.Elements {
		e := &c.s.Elements[i]
		var d float64
		if !e.X.IsNone() {
			d = px - ctx.x(e.PX)
		} else {
			d = py - ctx.y(c.s, e.PY)
		}
		if d >= -r && d <= r {
			return ElementRef{Index: i}, true
		}
	}
	return ElementRef{}, false
}

// TipText shows the value of the line on its axis.
func (c *ConstLine) TipText(ctx *Context, ref ElementRef) string {
	if ref.Index < 0 || ref.Index >= len(c.s.Elements) {
		return ""
	}
	e := &c.s.Elements[ref.Index]
	if e.ToolTip != "" {
		return e.ToolTip
	}
	if !e.X.IsNone() {
		return tipString(c.s.Legend, []tipRow{{"x", ctx.XAxis.TipValueString(e.X, false)}})
	}
	return tipString(c.s.Legend, []tipRow{{"y", ctx.yAxis(c.s).TipValueString(e.Y, false)}})
}

// ConstBand fills a band across the plot per element: vertical
// between X and X2 when X is set, otherwise horizontal between Y and Y2.
type ConstBand struct {
	base
}

// NewConstBand returns the constant band item of s.
func NewConstBand(s *plot.Series) *ConstBand {
	return &ConstBand{base{s: s}}
}

// Range only bounds the axis each band spans.
func (c *ConstBand) Range() plot.Range {
	var r plot.Range
	for i := range c.s.Elements {
		e := &c.s.Elements[i]
		if !e.X.IsNone() {
			r.XL, r.XR = extend(r.XL, r.XR, e.X)
			r.XL, r.XR = extend(r.XL, r.XR, e.X2)
		} else {
			r.YL, r.YR = extend(r.YL, r.YR, e.Y)
			r.YL, r.YR = extend(r.YL, r.YR, e.Y2)
		}
	}
	r.UpdateSpans()
	return r
}

func (c *ConstBand) rect(ctx *Context, e *plot.Element) (x, y, w, h float64) {
	m := ctx.Mapping
	if !e.X.IsNone() {
		return rectOf(ctx.x(e.PX), m.Layout.Top, ctx.x(e.PX2), m.Height-m.Layout.Bottom)
	}
	return rectOf(m.Layout.Left, ctx.y(c.s, e.PY), m.Width-m.Layout.Right, ctx.y(c.s, e.PY2))
}

func (c *ConstBand) Render(ctx *Context) {
	g := ctx.group(c.s)
	if !c.s.ShowItem {
		return
	}
	for i := range c.s.Elements {
		e := &c.s.Elements[i]
		x, y, w, h := c.rect(ctx, e)
		g.Add(&render.Rect{ID: c.s.ID + "_" + e.ID, X: x, Y: y, W: w, H: h, Style: c.fillStyle(e)})
	}
}

func (c *ConstBand) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	for i := range c.s.Elements {
		x, y, w, h := c.rect(ctx, &c.s.Elements[i])
		if inRect(px, py, x, y, w, h) {
			return ElementRef{Index: i}, true
		}
	}
	return ElementRef{}, false
}

// TipText shows the bounds of the band on its axis.
func (c *ConstBand) TipText(ctx *Context, ref ElementRef) string {
	if ref.Index < 0 || ref.Index >= len(c.s.Elements) {
		return ""
	}
	e := &c.s.Elements[ref.Index]
	if e.ToolTip != "" {
		return e.ToolTip
	}
	if !e.X.IsNone() {
		return tipString(c.s.Legend, []tipRow{
			{"x1", ctx.XAxis.TipValueString(e.X, false)},
			{"x2", ctx.XAxis.TipValueString(e.X2, false)},
		})
	}
	ya := ctx.yAxis(c.s)
	return tipString(c.s.Legend, []tipRow{
		{"y1", ya.TipValueString(e.Y, false)},
		{"y2", ya.TipValueString(e.Y2, false)},
	})
}
