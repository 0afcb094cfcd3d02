// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plots provides the plot item variants that draw a
// [plot.Series] into a scene, including the decimating variants used
// for large series, and the factory that chooses between them.
package plots

import (
	"fmt"
	"html"
	"math"
	"strings"

	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/axis"
	"cogentcore.org/plotscope/plot/num"
	"cogentcore.org/plotscope/plot/render"
)

// Item is a plot item: one series drawn with one variant.
type Item interface {
	plot.Ranger

	// Series returns the canonical description of the item.
	Series() *plot.Series

	// ApplyAxis maps element coordinates to axis space.
	ApplyAxis(x, y *axis.Axis)

	// Render draws the item into ctx.Layer.
	Render(ctx *Context)

	// Hit returns the element under the pixel, if any.
	Hit(ctx *Context, px, py float64) (ElementRef, bool)

	// TipText returns the tooltip content of an element as HTML.
	TipText(ctx *Context, ref ElementRef) string

	// IsLOD returns whether this is a decimating variant.
	IsLOD() bool
}

// ElementRef identifies the element under a tip. Sample is set
// for tips on decimated samples, whose Index is the sample bin.
type ElementRef struct {
	Item   int
	Index  int
	Sample *Sample
}

// ID returns the tip id of the element.
func (r ElementRef) ID(item Item) string {
	s := item.Series()
	if r.Sample != nil {
		return fmt.Sprintf("%s_s%d", s.ID, r.Index)
	}
	return fmt.Sprintf("%s_%d", s.ID, r.Index)
}

// Context is what items need to render and hit test: the scene, the
// layer to draw into, the current mapping and the axes.
type Context struct {
	Scene   *render.Scene
	Layer   *render.Group
	Mapping plot.Mapping

	XAxis, YAxis, YAxisR *axis.Axis

	// HighlightID is the id of the item drawn highlighted, if any.
	HighlightID string
}

// x maps an x position in axis space to pixels.
func (c *Context) x(p float64) float64 { return c.Mapping.X(p) }

// y maps a y position to pixels on the axis the series uses.
func (c *Context) y(s *plot.Series, p float64) float64 {
	if s.UseYAxisR && c.YAxisR != nil {
		return c.Mapping.YR(p)
	}
	return c.Mapping.Y(p)
}

func (c *Context) yAxis(s *plot.Series) *axis.Axis {
	if s.UseYAxisR && c.YAxisR != nil {
		return c.YAxisR
	}
	return c.YAxis
}

// group returns the cleared clipped group of the series in the layer.
func (c *Context) group(s *plot.Series) *render.Group {
	g := c.Layer.Group(s.ID)
	g.Clear()
	g.Clip = true
	g.Class = "plot-item plot-" + s.Type.String()
	return g
}

// base holds what all item variants share.
type base struct {
	s *plot.Series
}

func (b *base) Series() *plot.Series { return b.s }
func (b *base) Shown() bool          { return b.s.ShowItem }
func (b *base) HasLegend() bool      { return b.s.Legend != "" }
func (b *base) IsLOD() bool          { return false }

// Range is the bounding box of all element coordinates.
func (b *base) Range() plot.Range {
	var r plot.Range
	for i := range b.s.Elements {
		e := &b.s.Elements[i]
		r.XL, r.XR = extend(r.XL, r.XR, e.X)
		r.XL, r.XR = extend(r.XL, r.XR, e.X2)
		r.YL, r.YR = extend(r.YL, r.YR, e.Y)
		r.YL, r.YR = extend(r.YL, r.YR, e.Y2)
	}
	r.UpdateSpans()
	return r
}

func extend(l, h, v num.Value) (num.Value, num.Value) {
	if v.IsNone() || v.IsNaN() || v.IsInf() {
		return l, h
	}
	return num.Min(l, v), num.Max(h, v)
}

// ApplyAxis maps all element coordinates to axis space.
func (b *base) ApplyAxis(x, y *axis.Axis) {
	for i := range b.s.Elements {
		e := &b.s.Elements[i]
		e.PX = x.Percent(e.X)
		e.PY = y.Percent(e.Y)
		e.PX2 = x.Percent(e.X2)
		e.PY2 = y.Percent(e.Y2)
	}
}

// TipText formats the tooltip of an element: its custom tooltip if
// set, otherwise the legend as a bold title followed by the
// coordinates formatted by the axes.
func (b *base) TipText(ctx *Context, ref ElementRef) string {
	if ref.Index < 0 || ref.Index >= len(b.s.Elements) {
		return ""
	}
	e := &b.s.Elements[ref.Index]
	if e.ToolTip != "" {
		return e.ToolTip
	}
	ya := ctx.yAxis(b.s)
	rows := []tipRow{{"x", ctx.XAxis.TipValueString(e.X, false)}}
	switch b.s.Type {
	case plot.Bar, plot.Stem, plot.Area:
		rows = append(rows, tipRow{"yTop", ya.TipValueString(e.Y2, false)}, tipRow{"yBtm", ya.TipValueString(e.Y, false)})
	case plot.HeatMap:
		rows = append(rows, tipRow{"y", ya.TipValueString(e.Y, false)}, tipRow{"value", formatValue(e.Value)})
	default:
		rows = append(rows, tipRow{"y", ya.TipValueString(e.Y, false)})
	}
	return tipString(b.s.Legend, rows)
}

type tipRow struct {
	key, value string
}

// tipString renders a title and key/value rows as tooltip HTML.
func tipString(title string, rows []tipRow) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, `<div style="font-weight:bold">%s</div>`, html.EscapeString(title))
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "<div>%s: %s</div>", r.key, html.EscapeString(r.value))
	}
	return sb.String()
}

// color returns the element color, or the series color.
func (b *base) color(e *plot.Element) (string, float64) {
	if e != nil && e.Color != "" {
		return e.Color, e.ColorOpacity
	}
	return b.s.Color, b.s.ColorOpacity
}

// fillStyle is the element fill with the series outline.
func (b *base) fillStyle(e *plot.Element) render.Style {
	c, op := b.color(e)
	st := render.Style{Fill: c, FillOpacity: op}
	stroke, sw, sop := b.s.Stroke, b.s.StrokeWidth, b.s.StrokeOpacity
	if e != nil && e.Stroke != "" {
		stroke, sw, sop = e.Stroke, e.StrokeWidth, e.StrokeOpacity
	}
	if stroke != "" && sop > 0 {
		st.Stroke = stroke
		st.StrokeWidth = max(sw, 1)
		st.StrokeOpacity = sop
	}
	return st
}

// strokeStyle is the series line style.
func (b *base) strokeStyle() render.Style {
	return render.Style{
		Stroke:        b.s.Color,
		StrokeOpacity: b.s.ColorOpacity,
		StrokeWidth:   b.s.Width,
		DashArray:     b.s.DashArray,
	}
}

// visible returns the index range [from, to) of elements whose x lies
// in the focus window, widened by one element on each side so lines
// reach the plot edges. Unordered series are not truncated.
func (b *base) visible(ctx *Context) (int, int) {
	els := b.s.Elements
	if b.s.Unordered || len(els) == 0 {
		return 0, len(els)
	}
	f := ctx.Mapping.Focus
	from := UpperBound(els, f.XL) - 1
	to := UpperBound(els, f.XR) + 2
	return max(from, 0), min(to, len(els))
}

// UpperBound returns the index of the last element with PX < x, or -1,
// for elements sorted by x.
func UpperBound(els []plot.Element, x float64) int {
	l, r := 0, len(els)-1
	for l <= r {
		m := (l + r) / 2
		if els[m].PX >= x {
			r = m - 1
		} else {
			l = m + 1
		}
	}
	return r
}

// nearest returns the element in [from, to) nearest to the pixel
// within radius, by euclidean distance.
func nearest(ctx *Context, s *plot.Series, from, to int, px, py, radius float64) (int, bool) {
	best, bestD := -1, math.Inf(1)
	for i := from; i < to; i++ {
		e := &s.Elements[i]
		d := math.Hypot(ctx.x(e.PX)-px, ctx.y(s, e.PY)-py)
		if d <= radius && d < bestD {
			best, bestD = i, d
		}
	}
	return best, best >= 0
}

// rectOf returns the pixel rectangle spanned by two corners.
func rectOf(x0, y0, x1, y1 float64) (x, y, w, h float64) {
	return min(x0, x1), min(y0, y1), math.Abs(x1 - x0), math.Abs(y1 - y0)
}

func inRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
