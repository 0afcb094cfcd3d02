// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"math"

	"cogentcore.org/plotscope/plot/render"
)

// Shape names accepted for point items.
const (
	Rect         = "rect"
	Circle       = "circle"
	Diamond      = "diamond"
	Triangle     = "triangle"
	DownTriangle = "downtriangle"
	Level        = "level"
	VLevel       = "vlevel"
	Cross        = "cross"
	DCross       = "dcross"
	LineCross    = "linecross"
)

var (
	sin30, cos30 = math.Sincos(math.Pi / 6)
	sin45, cos45 = math.Sincos(math.Pi / 4)
)

// ShapeNode returns the node drawing the named shape of the given
// pixel size centered on (x, y). Unknown shapes draw as rect.
func ShapeNode(shape string, x, y, size float64, st render.Style) render.Node {
	r := size / 2
	switch shape {
	case Circle:
		return &render.Circle{CX: x, CY: y, R: r, Style: st}
	case Diamond:
		return polygon(st, x-r, y, x, y-r, x+r, y, x, y+r)
	case Triangle:
		return polygon(st, x, y-r, x+r*cos30, y+r*sin30, x-r*cos30, y+r*sin30)
	case DownTriangle:
		return polygon(st, x, y+r, x+r*cos30, y-r*sin30, x-r*cos30, y-r*sin30)
	case Level:
		return polygon(st, x-r, y-0.5, x+r, y-0.5, x+r, y+0.5, x-r, y+0.5)
	case VLevel:
		return polygon(st, x-0.5, y-r, x-0.5, y+r, x+0.5, y+r, x+0.5, y-r)
	case Cross:
		return &render.Path{Points: crossPoints(x, y, r, r/2), Closed: true, Style: st}
	case LineCross:
		return &render.Path{Points: crossPoints(x, y, r, 0.5), Closed: true, Style: st}
	case DCross:
		pts := crossPoints(x, y, r, r/2)
		for i, p := range pts {
			dx, dy := p.X-x, p.Y-y
			pts[i] = render.Point{X: x + dx*cos45 - dy*sin45, Y: y + dx*sin45 + dy*cos45}
		}
		return &render.Path{Points: pts, Closed: true, Style: st}
	}
	return &render.Rect{X: x - r, Y: y - r, W: size, H: size, Style: st}
}

func polygon(st render.Style, xy ...float64) *render.Path {
	pts := make([]render.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, render.Point{X: xy[i], Y: xy[i+1]})
	}
	return &render.Path{Points: pts, Closed: true, Style: st}
}

// crossPoints is the outline of a plus sign with arm half-length r and
// half-thickness t.
func crossPoints(x, y, r, t float64) []render.Point {
	return []render.Point{
		{X: x + t, Y: y - r}, {X: x + t, Y: y - t}, {X: x + r, Y: y - t},
		{X: x + r, Y: y + t}, {X: x + t, Y: y + t}, {X: x + t, Y: y + r},
		{X: x - t, Y: y + r}, {X: x - t, Y: y + t}, {X: x - r, Y: y + t},
		{X: x - r, Y: y - t}, {X: x - t, Y: y - t}, {X: x - t, Y: y - r},
	}
}
