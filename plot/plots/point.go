// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"cogentcore.org/plotscope/plot"
)

// Point draws a shape at each element.
type Point struct {
	base
}

// NewPoint returns the point item of s.
func NewPoint(s *plot.Series) *Point {
	return &Point{base{s: s}}
}

func (p *Point) shape(e *plot.Element) (string, float64) {
	shape, size := p.s.Shape, p.s.Size
	if e.Shape != "" {
		shape = e.Shape
	}
	if e.Size > 0 {
		size = e.Size
	}
	return shape, size
}

func (p *Point) Render(ctx *Context) {
	g := ctx.group(p.s)
	if !p.s.ShowItem {
		return
	}
	from, to := p.visible(ctx)
	for i := from; i < to; i++ {
		e := &p.s.Elements[i]
		if e.Y.IsNone() || e.Y.IsNaN() {
			continue
		}
		shape, size := p.shape(e)
		if ctx.HighlightID == p.s.ID {
			size += 2
		}
		g.Add(ShapeNode(shape, ctx.x(e.PX), ctx.y(p.s, e.PY), size, p.fillStyle(e)))
	}
}

func (p *Point) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	from, to := p.visible(ctx)
	i, ok := nearest(ctx, p.s, from, to, px, py, max(p.s.Size/2, 3))
	return ElementRef{Index: i}, ok
}
