// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"html"
	"log/slog"
	"strconv"
	"strings"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/axis"
	"cogentcore.org/plotscope/plot/plots"
	"cogentcore.org/plotscope/plot/render"
	strip "github.com/grokify/html-strip-tags-go"
)

// Layer ids of the scene, in drawing order.
const (
	GridLayer   = "grid"
	DataLayer   = "data"
	LabelLayer  = "labels"
	CursorLayer = "cursor"
	TipLayer    = "tips"
	LegendLayer = "legend"
)

const (
	fontSize       = render.DefaultFontSize
	titleFontSize  = 16
	labelPadding   = 8
	axisTitleSpace = fontSize + 10
	titleSpace     = titleFontSize + 16
	edgeMargin     = 20
	gridColor      = "#e0e0e0"
	axisColor      = "#888888"
	textColor      = "#333333"
)

// render draws the whole plot into a new scene.
func (sc *Scope) render() {
	m := sc.model
	sc.calcMapping()
	s := render.NewScene(m.Width, m.Height)
	s.Title = plainText(m.Title)
	s.Background = "white"
	mp := sc.mapping
	s.ClipArea = render.Rect{X: mp.Layout.Left, Y: mp.Layout.Top, W: mp.PlotWidth(), H: mp.PlotHeight()}
	for _, id := range []string{GridLayer, DataLayer, LabelLayer, CursorLayer, TipLayer, LegendLayer} {
		s.Layer(id)
	}
	s.Layer(DataLayer).Clip = true
	sc.scene = s

	sc.renderGrid(s.Layer(GridLayer), s.Layer(LabelLayer))
	sc.renderData(s.Layer(DataLayer))
	sc.renderCursor(s.Layer(CursorLayer))
	sc.renderTips(s.Layer(TipLayer))
	sc.renderLegend(s.Layer(LegendLayer))
}

// redraw redraws a single layer of the current scene and passes the
// scene to the host again.
func (sc *Scope) redraw(id string, f func(g *render.Group)) {
	if sc.scene == nil {
		return
	}
	g := sc.scene.Layer(id)
	g.Clear()
	f(g)
	if c := sc.container(); c != nil {
		c.SetScene(sc.scene)
	}
}

// context returns the item drawing context for layer.
func (sc *Scope) context(layer *render.Group) *plots.Context {
	return &plots.Context{
		Scene:       sc.scene,
		Layer:       layer,
		Mapping:     sc.mapping,
		XAxis:       sc.xAxis,
		YAxis:       sc.yAxis,
		YAxisR:      sc.yAxisR,
		HighlightID: sc.highlight,
	}
}

// calcMapping computes the gridlines and the layout for the current
// focus and size. The layout depends on the label sizes, which depend
// on the gridlines, which depend on the plot size, so the gridlines
// are computed once for the previous layout and once for the new one.
func (sc *Scope) calcMapping() {
	m := sc.model
	if sc.layout == (plot.Layout{}) {
		sc.layout = plot.Layout{Left: 80, Right: edgeMargin, Top: edgeMargin, Bottom: 50}
	}
	sc.mapping = plot.NewMapping(sc.focus, m.Width, m.Height, sc.layout)
	sc.setGridlines()
	sc.layout = sc.calcLayout()
	sc.mapping = plot.NewMapping(sc.focus, m.Width, m.Height, sc.layout)
	sc.setGridlines()
}

func (sc *Scope) setGridlines() {
	m := sc.model
	mp := sc.mapping
	f := sc.focus
	sc.xAxis.SetGridlines(f.XL, f.XR, mp.PlotWidth()/sc.opts.StepHintX, m.Margin.Left, m.Margin.Right)
	sc.yAxis.SetGridlines(f.YL, f.YR, mp.PlotHeight()/sc.opts.StepHintY, m.Margin.Bottom, m.Margin.Top)
	if sc.yAxisR != nil {
		sc.yAxisR.SetGridlines(f.YLR, f.YRR, mp.PlotHeight()/sc.opts.StepHintY, m.Margin.Bottom, m.Margin.Top)
	}
}

// calcLayout sizes the margins around the plot area to fit the
// gridline labels, the axis titles and the plot title.
func (sc *Scope) calcLayout() plot.Layout {
	l := plot.Layout{Left: edgeMargin, Right: edgeMargin, Top: edgeMargin / 2, Bottom: fontSize + labelPadding + 6}
	l.Left = max(l.Left, maxWidth(sc.yAxis.GridlineLabels())+labelPadding+6)
	if sc.yAxis.Label != "" {
		l.Left += axisTitleSpace
	}
	if sc.yAxisR != nil {
		l.Right = max(l.Right, maxWidth(sc.yAxisR.GridlineLabels())+labelPadding+6)
		if sc.yAxisR.Label != "" {
			l.Right += axisTitleSpace
		}
	}
	if sc.xAxis.LabelWithCommon() != "" {
		l.Bottom += axisTitleSpace
	}
	if sc.model.Title != "" {
		l.Top += titleSpace
	}
	return l
}

func maxWidth(labels []string) float64 {
	w := 0.0
	for _, s := range labels {
		w = max(w, errors.Log1(render.MeasureText(s, fontSize, false)))
	}
	return w
}

// renderGrid draws the plot frame, the gridlines with their labels,
// the axis titles and the plot title.
func (sc *Scope) renderGrid(grid, labels *render.Group) {
	m := sc.model
	mp := sc.mapping
	l := mp.Layout
	top, bottom := l.Top, mp.Height-l.Bottom
	left, right := l.Left, mp.Width-l.Right
	lineStyle := render.Style{Stroke: gridColor, StrokeWidth: 1}
	labelStyle := func(a render.Anchors) render.Style {
		return render.Style{Fill: textColor, FontSize: fontSize, Anchor: a}
	}

	for i, p := range sc.xAxis.Gridlines() {
		x := mp.X(p)
		if m.ShowXGridlines {
			grid.Add(&render.Line{Class: "plot-gridline", X1: x, Y1: top, X2: x, Y2: bottom, Style: lineStyle})
		}
		grid.Add(&render.Line{Class: "plot-tick", X1: x, Y1: bottom, X2: x, Y2: bottom + 4, Style: render.Style{Stroke: axisColor, StrokeWidth: 1}})
		labels.Add(&render.Text{ID: "label_x_" + strconv.Itoa(i), Class: "plot-label plot-label-x", X: x, Y: bottom + labelPadding + fontSize, Text: at(sc.xAxis.GridlineLabels(), i), Style: labelStyle(render.Middle)})
	}
	for i, p := range sc.yAxis.Gridlines() {
		y := mp.Y(p)
		grid.Add(&render.Line{Class: "plot-gridline", X1: left, Y1: y, X2: right, Y2: y, Style: lineStyle})
		labels.Add(&render.Text{ID: "label_y_" + strconv.Itoa(i), Class: "plot-label plot-label-y", X: left - labelPadding, Y: y + fontSize/3, Text: at(sc.yAxis.GridlineLabels(), i), Style: labelStyle(render.End)})
	}
	if sc.yAxisR != nil {
		for i, p := range sc.yAxisR.Gridlines() {
			y := mp.YR(p)
			labels.Add(&render.Text{ID: "label_yr_" + strconv.Itoa(i), Class: "plot-label plot-label-yr", X: right + labelPadding, Y: y + fontSize/3, Text: at(sc.yAxisR.GridlineLabels(), i), Style: labelStyle(render.Start)})
		}
	}

	frame := render.Style{Stroke: axisColor, StrokeWidth: 1}
	grid.Add(&render.Line{Class: "plot-axis plot-axis-x", X1: left, Y1: bottom, X2: right, Y2: bottom, Style: frame})
	grid.Add(&render.Line{Class: "plot-axis plot-axis-y", X1: left, Y1: top, X2: left, Y2: bottom, Style: frame})
	if sc.yAxisR != nil {
		grid.Add(&render.Line{Class: "plot-axis plot-axis-yr", X1: right, Y1: top, X2: right, Y2: bottom, Style: frame})
	}

	if s := sc.xAxis.LabelWithCommon(); s != "" {
		labels.Add(&render.Text{ID: "xlabel", Class: "plot-xylabel", X: (left + right) / 2, Y: mp.Height - 8, Text: s, Style: labelStyle(render.Middle)})
	}
	if s := sc.yAxis.Label; s != "" {
		labels.Add(&render.Text{ID: "ylabel", Class: "plot-xylabel", X: fontSize + 4, Y: (top + bottom) / 2, Text: s, Rotate: -90, Style: labelStyle(render.Middle)})
	}
	if sc.yAxisR != nil && sc.yAxisR.Label != "" {
		labels.Add(&render.Text{ID: "yrlabel", Class: "plot-xylabel", X: mp.Width - fontSize - 4, Y: (top + bottom) / 2, Text: sc.yAxisR.Label, Rotate: 90, Style: labelStyle(render.Middle)})
	}
	if m.Title != "" {
		labels.Add(&render.Text{ID: "title", Class: "plot-title", X: mp.Width / 2, Y: edgeMargin/2 + titleFontSize + 4, Text: plainText(m.Title), Style: render.Style{Fill: "black", FontSize: titleFontSize, Bold: true, Anchor: render.Middle}})
	}
}

// renderData draws every item and records whether any is decimated
// or unordered.
func (sc *Scope) renderData(layer *render.Group) {
	ctx := sc.context(layer)
	for _, it := range sc.items {
		it.Render(ctx)
		s := it.Series()
		if s.IsLOD {
			sc.hasLOD = true
		}
		if s.Unordered {
			sc.hasUnordered = true
		}
	}
	if sc.hasUnordered && !sc.unorderedWarned {
		sc.unorderedWarned = true
		slog.Warn("unordered area/line detected, truncation disabled", "scope", sc.ID)
	}
}

// HasLOD returns whether any item is drawn with a decimating variant.
func (sc *Scope) HasLOD() bool { return sc.hasLOD }

// Highlight draws the item with the given series id highlighted, or
// none for "".
func (sc *Scope) Highlight(id string) error {
	if err := sc.check(); err != nil {
		return err
	}
	sc.highlight = id
	return sc.Update()
}

// HitAt returns the element under the pixel, searching the items
// drawn last first.
func (sc *Scope) HitAt(px, py float64) (plots.ElementRef, bool) {
	if sc.check() != nil || sc.scene == nil || !sc.mapping.InPlot(px, py, 0) {
		return plots.ElementRef{}, false
	}
	ctx := sc.context(sc.scene.Layer(DataLayer))
	for i := len(sc.items) - 1; i >= 0; i-- {
		it := sc.items[i]
		if !it.Shown() {
			continue
		}
		if ref, ok := it.Hit(ctx, px, py); ok {
			ref.Item = i
			return ref, true
		}
	}
	return plots.ElementRef{}, false
}

// plainText returns the text content of an HTML snippet.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strip.StripTags(s)))
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// axisValue formats the value at a position along a for cursor labels.
func axisValue(a *axis.Axis, p float64) string {
	return a.TipValueString(a.Value(p), false)
}
