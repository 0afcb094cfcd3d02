// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/render"
)

type cursorPos struct {
	x, y float64
}

// MoveCursor moves the crosshair to the pixel. Outside the plot area
// the crosshair is hidden.
func (sc *Scope) MoveCursor(px, py float64) error {
	if err := sc.check(); err != nil {
		return err
	}
	if sc.mapping.InPlot(px, py, 0) {
		sc.cursor = &cursorPos{px, py}
	} else {
		sc.cursor = nil
	}
	sc.redraw(CursorLayer, sc.renderCursor)
	return nil
}

// HideCursor hides the crosshair.
func (sc *Scope) HideCursor() error {
	if err := sc.check(); err != nil {
		return err
	}
	sc.cursor = nil
	sc.redraw(CursorLayer, sc.renderCursor)
	return nil
}

// renderCursor draws the crosshair lines of the model cursors with
// the axis values at the cursor in boxes on the axes.
func (sc *Scope) renderCursor(layer *render.Group) {
	c := sc.cursor
	m := sc.model
	if c == nil || (m.XCursor == nil && m.YCursor == nil) {
		return
	}
	mp := sc.mapping
	l := mp.Layout
	if xc := m.XCursor; xc != nil {
		layer.Add(&render.Line{ID: "cursor_x", Class: "plot-cursor", X1: c.x, Y1: l.Top, X2: c.x, Y2: mp.Height - l.Bottom, Style: cursorStyle(xc)})
		valueBox(layer, "cursor_xlabel", axisValue(sc.xAxis, mp.InvX(c.x)), c.x, mp.Height-l.Bottom+2, render.Middle, xc.Color)
	}
	if yc := m.YCursor; yc != nil {
		layer.Add(&render.Line{ID: "cursor_y", Class: "plot-cursor", X1: l.Left, Y1: c.y, X2: mp.Width - l.Right, Y2: c.y, Style: cursorStyle(yc)})
		valueBox(layer, "cursor_ylabel", axisValue(sc.yAxis, mp.InvY(c.y)), l.Left-2, c.y-fontSize/2-3, render.End, yc.Color)
		if sc.yAxisR != nil {
			valueBox(layer, "cursor_yrlabel", axisValue(sc.yAxisR, mp.InvYR(c.y)), mp.Width-l.Right+2, c.y-fontSize/2-3, render.Start, yc.Color)
		}
	}
}

func cursorStyle(c *plot.Cursor) render.Style {
	return render.Style{Stroke: c.Color, StrokeWidth: c.Width, DashArray: c.DashArray}
}

// valueBox draws a filled label box with its top at y, anchored at x.
func valueBox(layer *render.Group, id, text string, x, y float64, anchor render.Anchors, color string) {
	w := errors.Log1(render.MeasureText(text, fontSize, false)) + 6
	h := float64(fontSize + 6)
	bx := x
	switch anchor {
	case render.Middle:
		bx = x - w/2
	case render.End:
		bx = x - w
	}
	layer.Add(&render.Rect{ID: id + "_box", Class: "plot-cursorlabel", X: bx, Y: y, W: w, H: h, Style: render.Style{Fill: color}})
	layer.Add(&render.Text{ID: id, Class: "plot-cursorlabel", X: bx + 3, Y: y + fontSize + 1, Text: text, Style: render.Style{Fill: "white", FontSize: fontSize}})
}
