// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"strings"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/plots"
	"cogentcore.org/plotscope/plot/render"
)

// AllEntry is the legend entry index of the toggle for all items.
const AllEntry = -1

const (
	legendRowHeight = 18
	legendMarker    = 20
	legendCheckbox  = 10
	legendPadding   = 6
	legendGap       = 12
)

// legendEntry is a legend row with its pixel box.
type legendEntry struct {
	item       int
	text, hint string
	x, y, w, h float64
}

// legendEntries returns the legend rows: the toggle for all items
// when there is more than one entry and checkboxes are shown, then
// one row per item with a legend.
func (sc *Scope) legendEntries() []legendEntry {
	var es []legendEntry
	for i, it := range sc.items {
		s := it.Series()
		if s.Legend == "" {
			continue
		}
		e := legendEntry{item: i, text: plainText(s.Legend)}
		if s.IsLOD {
			lt := s.LODType
			if lt == "" {
				lt = plots.Box
			}
			e.hint = "LOD: " + lt
		}
		es = append(es, e)
	}
	if len(es) > 1 && !sc.model.OmitCheckboxes {
		es = append([]legendEntry{{item: AllEntry, text: "All"}}, es...)
	}
	return es
}

// layoutLegend sizes the legend rows and positions the legend box.
func (sc *Scope) layoutLegend() (es []legendEntry, x, y, w, h float64) {
	es = sc.legendEntries()
	if len(es) == 0 {
		return
	}
	horizontal := strings.EqualFold(sc.model.LegendLayout, "HORIZONTAL")
	cx, cy := float64(legendPadding), float64(legendPadding)
	for i := range es {
		e := &es[i]
		e.w = legendMarker + legendPadding + errors.Log1(render.MeasureText(e.text, fontSize, false))
		if !sc.model.OmitCheckboxes {
			e.w += legendCheckbox + legendPadding
		}
		if e.hint != "" {
			e.w += legendPadding + errors.Log1(render.MeasureText(e.hint, fontSize-2, false))
		}
		e.h = legendRowHeight
		e.x, e.y = cx, cy
		if horizontal {
			cx += e.w + legendGap
			w = cx - legendGap + legendPadding
			h = legendRowHeight + 2*legendPadding
		} else {
			cy += legendRowHeight
			w = max(w, e.w+2*legendPadding)
			h = cy + legendPadding
		}
	}
	mp := sc.mapping
	l := mp.Layout
	left, right := l.Left, mp.Width-l.Right
	top, bottom := l.Top, mp.Height-l.Bottom
	pos := strings.ToUpper(sc.model.LegendPosition)
	switch {
	case strings.HasSuffix(pos, "LEFT"):
		x = left + legendPadding
	case pos == "TOP" || pos == "BOTTOM":
		x = (left+right)/2 - w/2
	default:
		x = right - w - legendPadding
	}
	switch {
	case strings.HasPrefix(pos, "BOTTOM"):
		y = bottom - h - legendPadding
	case pos == "LEFT" || pos == "RIGHT":
		y = (top+bottom)/2 - h/2
	default:
		y = top + legendPadding
	}
	return
}

// renderLegend draws the legend box with a checkbox, a marker drawn
// like the item, the legend text and the LOD hint per entry.
func (sc *Scope) renderLegend(layer *render.Group) {
	if !sc.model.ShowLegend {
		return
	}
	es, x, y, w, h := sc.layoutLegend()
	if len(es) == 0 {
		return
	}
	g := layer.Group("legends")
	g.Class = "plot-legend"
	g.X, g.Y = x, y
	g.Add(&render.Rect{Class: "plot-legendbox", X: 0, Y: 0, W: w, H: h, Style: render.Style{Fill: "white", FillOpacity: 0.9, Stroke: "#cccccc", StrokeWidth: 1}})
	for _, e := range es {
		cx := e.x
		mid := e.y + e.h/2
		if !sc.model.OmitCheckboxes {
			sc.renderCheckbox(g, e, cx, mid)
			cx += legendCheckbox + legendPadding
		}
		if e.item != AllEntry {
			sc.renderMarker(g, sc.items[e.item].Series(), cx, mid)
		}
		cx += legendMarker + legendPadding
		g.Add(&render.Text{Class: "plot-legend-text", X: cx, Y: mid + fontSize/3, Text: e.text, Style: render.Style{Fill: textColor, FontSize: fontSize}})
		if e.hint != "" {
			tw := errors.Log1(render.MeasureText(e.text, fontSize, false))
			g.Add(&render.Text{Class: "plot-legend-hint", X: cx + tw + legendPadding, Y: mid + fontSize/3, Text: e.hint, Style: render.Style{Fill: "gray", FontSize: fontSize - 2}})
		}
	}
}

func (sc *Scope) renderCheckbox(g *render.Group, e legendEntry, x, mid float64) {
	checked := sc.allShown()
	id := "legendcheck_all"
	if e.item != AllEntry {
		s := sc.items[e.item].Series()
		checked = s.ShowItem
		id = "legendcheck_" + s.ID
	}
	y := mid - legendCheckbox/2
	g.Add(&render.Rect{ID: id, Class: "plot-legendcheckbox", X: x, Y: y, W: legendCheckbox, H: legendCheckbox, Style: render.Style{Fill: "white", Stroke: "#555555", StrokeWidth: 1}})
	if checked {
		g.Add(&render.Path{Points: []render.Point{{X: x + 2, Y: mid}, {X: x + 4, Y: y + legendCheckbox - 2}, {X: x + legendCheckbox - 2, Y: y + 2}}, Style: render.Style{Stroke: "black", StrokeWidth: 1.5}})
	}
}

// renderMarker draws the legend marker of a series centered
// vertically at mid.
func (sc *Scope) renderMarker(g *render.Group, s *plot.Series, x, mid float64) {
	color := s.Color
	if color == "" {
		color = "gray"
	}
	switch s.Type {
	case plot.Line, plot.ConstLine:
		g.Add(&render.Line{Class: "plot-legendline", X1: x, Y1: mid, X2: x + legendMarker, Y2: mid, Style: render.Style{Stroke: color, StrokeOpacity: s.ColorOpacity, StrokeWidth: max(s.Width, 1), DashArray: s.DashArray}})
	case plot.Stem:
		g.Add(&render.Line{Class: "plot-legendline", X1: x + legendMarker/2, Y1: mid - 6, X2: x + legendMarker/2, Y2: mid + 6, Style: render.Style{Stroke: color, StrokeOpacity: s.ColorOpacity, StrokeWidth: max(s.Width, 1)}})
	case plot.Point:
		size := s.Size
		if size <= 0 || size > 12 {
			size = 8
		}
		g.Add(plots.ShapeNode(s.Shape, x+legendMarker/2, mid, size, render.Style{Fill: color, FillOpacity: s.ColorOpacity}))
	default:
		g.Add(&render.Rect{Class: "plot-legendrect", X: x, Y: mid - 5, W: legendMarker, H: 10, Style: render.Style{Fill: color, FillOpacity: s.ColorOpacity}})
	}
}

func (sc *Scope) allShown() bool {
	for _, it := range sc.items {
		if it.Series().Legend != "" && !it.Shown() {
			return false
		}
	}
	return true
}

// LegendAt returns the item index of the legend entry under the
// pixel, or [AllEntry] for the toggle for all items.
func (sc *Scope) LegendAt(px, py float64) (int, bool) {
	if sc.check() != nil || !sc.model.ShowLegend {
		return 0, false
	}
	es, x, y, _, _ := sc.layoutLegend()
	for _, e := range es {
		if px >= x+e.x && px <= x+e.x+e.w && py >= y+e.y && py <= y+e.y+e.h {
			return e.item, true
		}
	}
	return 0, false
}

// ToggleItem shows or hides item i. Unpinned tips of a hidden item
// are removed and its pinned tips hidden until it is shown again.
func (sc *Scope) ToggleItem(i int) error {
	if err := sc.check(); err != nil {
		return err
	}
	if i == AllEntry {
		return sc.ToggleAll()
	}
	it, err := sc.item(i)
	if err != nil {
		return err
	}
	s := it.Series()
	s.ShowItem = !s.ShowItem
	sc.hideItemTips(i, !s.ShowItem)
	return sc.Update()
}

// ToggleAll hides all items with a legend when all are shown, and
// shows them all otherwise.
func (sc *Scope) ToggleAll() error {
	if err := sc.check(); err != nil {
		return err
	}
	show := !sc.allShown()
	for i, it := range sc.items {
		s := it.Series()
		if s.Legend == "" {
			continue
		}
		s.ShowItem = show
		sc.hideItemTips(i, !show)
	}
	return sc.Update()
}
