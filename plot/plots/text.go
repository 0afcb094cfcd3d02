// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/render"
)

// Text places the Text of each element at (X, Y).
type Text struct {
	base
}

// NewText returns the text item of s.
func NewText(s *plot.Series) *Text {
	return &Text{base{s: s}}
}

func (t *Text) fontSize(e *plot.Element) float64 {
	if e.Size > 0 {
		return e.Size
	}
	if t.s.Size > 0 {
		return t.s.Size
	}
	return render.DefaultFontSize
}

func (t *Text) Render(ctx *Context) {
	g := ctx.group(t.s)
	if !t.s.ShowItem {
		return
	}
	from, to := t.visible(ctx)
	for i := from; i < to; i++ {
		e := &t.s.Elements[i]
		c, op := t.color(e)
		g.Add(&render.Text{
			ID: t.s.ID + "_" + e.ID, X: ctx.x(e.PX), Y: ctx.y(t.s, e.PY), Text: e.Text,
			// Width holds the rotation angle of text elements.
			Rotate: e.Width,
			Style:  render.Style{Fill: c, FillOpacity: op, FontSize: t.fontSize(e)},
		})
	}
}

func (t *Text) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	from, to := t.visible(ctx)
	for i := from; i < to; i++ {
		e := &t.s.Elements[i]
		size := t.fontSize(e)
		w := float64(len(e.Text)) * size * 0.6
		x, y := ctx.x(e.PX), ctx.y(t.s, e.PY)
		if inRect(px, py, x, y-size, w, size) {
			return ElementRef{Index: i}, true
		}
	}
	return ElementRef{}, false
}

// TreeMapNode draws the rectangle of one treemap node with its label.
type TreeMapNode struct {
	base
}

// NewTreeMapNode returns the treemap node item of s.
func NewTreeMapNode(s *plot.Series) *TreeMapNode {
	return &TreeMapNode{base{s: s}}
}

func (n *TreeMapNode) Render(ctx *Context) {
	g := ctx.group(n.s)
	if !n.s.ShowItem {
		return
	}
	for i := range n.s.Elements {
		e := &n.s.Elements[i]
		x, y, w, h := rectOf(ctx.x(e.PX), ctx.y(n.s, e.PY), ctx.x(e.PX2), ctx.y(n.s, e.PY2))
		st := n.fillStyle(e)
		if st.Stroke == "" {
			st.Stroke, st.StrokeWidth, st.StrokeOpacity = "white", 1, 1
		}
		id := n.s.ID + "_" + e.ID
		g.Add(&render.Rect{ID: id, X: x, Y: y, W: w, H: h, Style: st})
		if e.Text != "" && w > 20 && h > 14 {
			g.Add(&render.Text{ID: id + "_label", X: x + w/2, Y: y + h/2 + 4, Text: e.Text, Style: render.Style{Fill: "white", FontSize: 11, Anchor: render.Middle}})
		}
	}
}

func (n *TreeMapNode) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	for i := range n.s.Elements {
		e := &n.s.Elements[i]
		x, y, w, h := rectOf(ctx.x(e.PX), ctx.y(n.s, e.PY), ctx.x(e.PX2), ctx.y(n.s, e.PY2))
		if inRect(px, py, x, y, w, h) {
			return ElementRef{Index: i}, true
		}
	}
	return ElementRef{}, false
}

// TipText shows the node label and value.
func (n *TreeMapNode) TipText(ctx *Context, ref ElementRef) string {
	if ref.Index < 0 || ref.Index >= len(n.s.Elements) {
		return ""
	}
	e := &n.s.Elements[ref.Index]
	if e.ToolTip != "" {
		return e.ToolTip
	}
	return tipString(e.Text, []tipRow{{"value", formatValue(e.Value)}})
}
