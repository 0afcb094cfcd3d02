// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"log/slog"
	"strings"

	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/render"
)

// StepKind specifies a form of a connection of two consecutive points.
type StepKind int32

const (
	// NoStep connects two points by simple line
	NoStep StepKind = iota

	// PreStep connects two points by following lines: vertical, horizontal.
	PreStep

	// MidStep connects two points by following lines: horizontal, vertical, horizontal.
	// Vertical line is placed in the middle of the interval.
	MidStep

	// PostStep connects two points by following lines: horizontal, vertical.
	PostStep
)

// ParseStepKind returns the step kind of a series interpolation:
// "none" and "post" are post steps, "pre" and "mid" the others, and
// anything else is linear.
func ParseStepKind(interpolation string) StepKind {
	switch strings.ToLower(interpolation) {
	case "none", "post":
		return PostStep
	case "pre":
		return PreStep
	case "mid":
		return MidStep
	}
	return NoStep
}

// stepPoints appends the points connecting prev to pt with the step kind.
func stepPoints(pts []render.Point, kind StepKind, prev, pt render.Point) []render.Point {
	switch kind {
	case PreStep:
		pts = append(pts, render.Point{X: prev.X, Y: pt.Y})
	case MidStep:
		mx := 0.5 * (prev.X + pt.X)
		pts = append(pts, render.Point{X: mx, Y: prev.Y}, render.Point{X: mx, Y: pt.Y})
	case PostStep:
		pts = append(pts, render.Point{X: pt.X, Y: prev.Y})
	}
	return append(pts, pt)
}

// Line draws its elements connected by a polyline.
type Line struct {
	base

	// StepStyle is the kind of the step line.
	StepStyle StepKind

	warned bool
}

// NewLine returns the line item of s.
func NewLine(s *plot.Series) *Line {
	return &Line{base: base{s: s}, StepStyle: ParseStepKind(s.Interpolation)}
}

// Render draws the polyline through the visible elements, broken at
// missing values.
func (ln *Line) Render(ctx *Context) {
	g := ctx.group(ln.s)
	if !ln.s.ShowItem {
		return
	}
	ln.warnUnordered()
	from, to := ln.visible(ctx)
	st := ln.strokeStyle()
	if ctx.HighlightID == ln.s.ID {
		st.StrokeWidth += 2
	}
	var pts []render.Point
	flush := func() {
		if len(pts) > 1 {
			g.Add(&render.Path{Points: pts, Style: st})
		}
		pts = nil
	}
	for i := from; i < to; i++ {
		e := &ln.s.Elements[i]
		if e.Y.IsNone() || e.Y.IsNaN() {
			flush()
			continue
		}
		pt := render.Point{X: ctx.x(e.PX), Y: ctx.y(ln.s, e.PY)}
		if len(pts) == 0 {
			pts = append(pts, pt)
			continue
		}
		pts = stepPoints(pts, ln.StepStyle, pts[len(pts)-1], pt)
	}
	flush()
	ln.renderMarkers(ctx, g, from, to)
}

// renderMarkers draws the point shapes of elements that have a size
// or shape of their own.
func (ln *Line) renderMarkers(ctx *Context, g *render.Group, from, to int) {
	for i := from; i < to; i++ {
		e := &ln.s.Elements[i]
		if e.Shape == "" && e.Size == 0 {
			continue
		}
		size := e.Size
		if size == 0 {
			size = ln.s.Width * 3
		}
		g.Add(ShapeNode(e.Shape, ctx.x(e.PX), ctx.y(ln.s, e.PY), size, ln.fillStyle(e)))
	}
}

func (ln *Line) warnUnordered() {
	if ln.s.Unordered && !ln.warned {
		ln.warned = true
		slog.Warn("unordered area/line detected, truncation disabled", "item", ln.s.ID)
	}
}

// Hit returns the element nearest the pixel within the hover radius.
func (ln *Line) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	from, to := ln.visible(ctx)
	i, ok := nearest(ctx, ln.s, from, to, px, py, hitRadius(ln.s.Width))
	return ElementRef{Index: i}, ok
}

// hitRadius is the hover radius around a point for a line width.
func hitRadius(width float64) float64 {
	return max(width, 2) + 3
}
