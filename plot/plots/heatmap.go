// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"image/color"
	"math"
	"strconv"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/colors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/render"
)

// formatValue formats a cell value with the shortest exact representation.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// HeatMap draws one cell per element colored by its Value on the
// palette spread between MinValue and MaxValue.
type HeatMap struct {
	base

	palette []color.RGBA
}

// NewHeatMap returns the heatmap item of s.
func NewHeatMap(s *plot.Series) *HeatMap {
	h := &HeatMap{base: base{s: s}}
	for _, c := range s.Colors {
		if rgba, err := colors.FromString(c); errors.Log(err) == nil {
			h.palette = append(h.palette, rgba)
		}
	}
	return h
}

// CellColor returns the palette color of a value as a hex string.
func (h *HeatMap) CellColor(v float64) string {
	if len(h.palette) == 0 || math.IsNaN(v) {
		return ""
	}
	if len(h.palette) == 1 || h.s.MaxValue <= h.s.MinValue {
		return colors.AsHex(h.palette[0])
	}
	t := (v - h.s.MinValue) / (h.s.MaxValue - h.s.MinValue)
	t = min(max(t, 0), 1) * float64(len(h.palette)-1)
	i := int(t)
	if i >= len(h.palette)-1 {
		return colors.AsHex(h.palette[len(h.palette)-1])
	}
	return colors.AsHex(lerp(h.palette[i], h.palette[i+1], t-float64(i)))
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	f := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{f(a.R, b.R), f(a.G, b.G), f(a.B, b.B), f(a.A, b.A)}
}

func (h *HeatMap) Render(ctx *Context) {
	g := ctx.group(h.s)
	if !h.s.ShowItem {
		return
	}
	for i := range h.s.Elements {
		e := &h.s.Elements[i]
		x, y, w, ht := rectOf(ctx.x(e.PX), ctx.y(h.s, e.PY), ctx.x(e.PX2), ctx.y(h.s, e.PY2))
		if w == 0 || ht == 0 {
			continue
		}
		g.Add(&render.Rect{ID: h.s.ID + "_" + e.ID, X: x, Y: y, W: w, H: ht, Style: render.Style{Fill: h.CellColor(e.Value)}})
	}
}

func (h *HeatMap) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	for i := range h.s.Elements {
		e := &h.s.Elements[i]
		x, y, w, ht := rectOf(ctx.x(e.PX), ctx.y(h.s, e.PY), ctx.x(e.PX2), ctx.y(h.s, e.PY2))
		if inRect(px, py, x, y, w, ht) {
			return ElementRef{Index: i}, true
		}
	}
	return ElementRef{}, false
}

// Raster draws the series image over the data rectangle of each element.
type Raster struct {
	base
}

// NewRaster returns the raster item of s.
func NewRaster(s *plot.Series) *Raster {
	return &Raster{base{s: s}}
}

func (r *Raster) Render(ctx *Context) {
	g := ctx.group(r.s)
	if !r.s.ShowItem || r.s.Image == "" {
		return
	}
	for i := range r.s.Elements {
		e := &r.s.Elements[i]
		x, y, w, h := rectOf(ctx.x(e.PX), ctx.y(r.s, e.PY), ctx.x(e.PX2), ctx.y(r.s, e.PY2))
		g.Add(&render.Image{ID: r.s.ID + "_" + e.ID, X: x, Y: y, W: w, H: h, Href: r.s.Image, Opacity: r.s.Opacity})
	}
}

func (r *Raster) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	for i := range r.s.Elements {
		e := &r.s.Elements[i]
		x, y, w, h := rectOf(ctx.x(e.PX), ctx.y(r.s, e.PY), ctx.x(e.PX2), ctx.y(r.s, e.PY2))
		if inRect(px, py, x, y, w, h) {
			return ElementRef{Index: i}, true
		}
	}
	return ElementRef{}, false
}
