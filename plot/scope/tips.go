// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot/plots"
	"cogentcore.org/plotscope/plot/render"
)

const (
	tipFontSize = 11
	tipPadding  = 5
	tipLineGap  = 3

	// tipOffset is the pixel offset of a tip from the mouse.
	tipOffset = 5

	// tipGridPadding is how far a tip may reach past the right of the
	// plot area before it is removed.
	tipGridPadding = 10
)

// Tip is a tooltip on a plot element. Its position and the target of
// its connector are in axis space, so tips follow zoom and pan.
type Tip struct {
	ID  string
	Ref plots.ElementRef

	// Sticking tips are pinned: they stay until unpinned and draw a
	// connector to their target.
	Sticking bool

	// Hidden tips are not drawn.
	Hidden bool

	X, Y             float64
	TargetX, TargetY float64
}

// Tips returns the current tips in creation order.
func (sc *Scope) Tips() []*Tip {
	ts := make([]*Tip, 0, len(sc.tipOrder))
	for _, id := range sc.tipOrder {
		ts = append(ts, sc.tips[id])
	}
	return ts
}

func (sc *Scope) item(i int) (plots.Item, error) {
	if i < 0 || i >= len(sc.items) {
		return nil, fmt.Errorf("scope: no item %d", i)
	}
	return sc.items[i], nil
}

func (sc *Scope) tipID(ref plots.ElementRef) (string, error) {
	it, err := sc.item(ref.Item)
	if err != nil {
		return "", err
	}
	return ref.ID(it), nil
}

// place positions the tip next to the mouse and targets the mouse.
func (sc *Scope) place(t *Tip, mx, my float64) {
	mp := sc.mapping
	t.TargetX, t.TargetY = mp.InvX(mx), mp.InvY(my)
	t.X, t.Y = mp.InvX(mx+tipOffset), mp.InvY(my+tipOffset)
}

func (sc *Scope) addTip(t *Tip) {
	sc.tips[t.ID] = t
	sc.tipOrder = append(sc.tipOrder, t.ID)
}

// clearTip removes a tip and cancels its pending removal.
func (sc *Scope) clearTip(id string) {
	if t, ok := sc.tipTimers[id]; ok {
		t.Stop()
		delete(sc.tipTimers, id)
	}
	delete(sc.tips, id)
	sc.tipOrder = slices.DeleteFunc(sc.tipOrder, func(s string) bool { return s == id })
}

func (sc *Scope) redrawTips() {
	sc.redraw(TipLayer, sc.renderTips)
}

// Tooltip shows the tip of an element as the mouse enters it, after
// removing all tips that are not pinned.
func (sc *Scope) Tooltip(ref plots.ElementRef, mx, my float64) error {
	if err := sc.check(); err != nil {
		return err
	}
	id, err := sc.tipID(ref)
	if err != nil {
		return err
	}
	for _, tid := range slices.Clone(sc.tipOrder) {
		if !sc.tips[tid].Sticking {
			sc.clearTip(tid)
		}
	}
	if _, ok := sc.tips[id]; !ok {
		t := &Tip{ID: id, Ref: ref}
		sc.place(t, mx, my)
		sc.addTip(t)
	}
	sc.redrawTips()
	return nil
}

// Untooltip hides the tip of an element as the mouse leaves it. The
// tip is removed after [TipFade]. Pinned tips are kept.
func (sc *Scope) Untooltip(ref plots.ElementRef) error {
	if err := sc.check(); err != nil {
		return err
	}
	id, err := sc.tipID(ref)
	if err != nil {
		return err
	}
	t, ok := sc.tips[id]
	if !ok || t.Sticking {
		return nil
	}
	sc.fade(t)
	sc.redrawTips()
	return nil
}

// fade hides a tip and schedules its removal.
func (sc *Scope) fade(t *Tip) {
	t.Hidden = true
	if old, ok := sc.tipTimers[t.ID]; ok {
		old.Stop()
	}
	id := t.ID
	sc.tipTimers[id] = sc.sched.AfterFunc(TipFade, func() {
		delete(sc.tipTimers, id)
		if t, ok := sc.tips[id]; ok && t.Hidden && !t.Sticking {
			sc.clearTip(id)
			sc.redrawTips()
		}
	})
}

// ToggleTooltip pins or unpins the tip of an element, as on a click.
// An element without a tip gets an unpinned one.
func (sc *Scope) ToggleTooltip(ref plots.ElementRef, mx, my float64) error {
	if err := sc.check(); err != nil {
		return err
	}
	id, err := sc.tipID(ref)
	if err != nil {
		return err
	}
	t, ok := sc.tips[id]
	if !ok {
		return sc.Tooltip(ref, mx, my)
	}
	t.Sticking = !t.Sticking
	if t.Sticking {
		t.Hidden = false
		if tm, ok := sc.tipTimers[id]; ok {
			tm.Stop()
			delete(sc.tipTimers, id)
		}
	} else {
		sc.fade(t)
	}
	sc.redrawTips()
	return nil
}

// MoveTooltip moves the tip of an element with the mouse. Pinned tips
// do not move.
func (sc *Scope) MoveTooltip(ref plots.ElementRef, mx, my float64) error {
	if err := sc.check(); err != nil {
		return err
	}
	id, err := sc.tipID(ref)
	if err != nil {
		return err
	}
	t, ok := sc.tips[id]
	if !ok || t.Sticking {
		return nil
	}
	sc.place(t, mx, my)
	sc.redrawTips()
	return nil
}

// DragTip moves the tip box with the given id to the pixel.
func (sc *Scope) DragTip(id string, px, py float64) error {
	if err := sc.check(); err != nil {
		return err
	}
	t, ok := sc.tips[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTip, id)
	}
	t.X, t.Y = sc.mapping.InvX(px), sc.mapping.InvY(py)
	sc.redrawTips()
	return nil
}

// CloseTip removes the tip with the given id, pinned or not.
func (sc *Scope) CloseTip(id string) error {
	if err := sc.check(); err != nil {
		return err
	}
	if _, ok := sc.tips[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTip, id)
	}
	sc.clearTip(id)
	sc.redrawTips()
	return nil
}

// hideItemTips removes the unpinned tips of an item and hides or
// shows its pinned ones.
func (sc *Scope) hideItemTips(item int, hidden bool) {
	for _, id := range slices.Clone(sc.tipOrder) {
		t := sc.tips[id]
		if t.Ref.Item != item {
			continue
		}
		if !t.Sticking {
			sc.clearTip(id)
			continue
		}
		t.Hidden = hidden
	}
}

// dropStaleTips removes tips whose element no longer exists.
func (sc *Scope) dropStaleTips() {
	for _, id := range slices.Clone(sc.tipOrder) {
		t := sc.tips[id]
		if t.Ref.Item >= len(sc.items) || t.Ref.Index >= len(sc.items[t.Ref.Item].Series().Elements) {
			sc.clearTip(id)
		}
	}
}

type tipLine struct {
	text string
	bold bool
}

// tipLines splits tooltip HTML into lines of plain text, one per
// block or line break.
func tipLines(s string) []tipLine {
	s = strings.NewReplacer("<br>", "</div>", "<br/>", "</div>", "<br />", "</div>").Replace(s)
	var lines []tipLine
	for _, part := range strings.Split(s, "</div>") {
		t := plainText(part)
		if t == "" {
			continue
		}
		lines = append(lines, tipLine{text: t, bold: strings.Contains(part, "font-weight:bold")})
	}
	return lines
}

// outsideGrid returns whether a tip box at (x, y) of size w×h lies
// outside the plot area.
func (sc *Scope) outsideGrid(x, y, w, h float64) bool {
	mp := sc.mapping
	gx, gy := mp.Layout.Left, mp.Layout.Top
	gw, gh := mp.PlotWidth(), mp.PlotHeight()
	return x > gw+gx-tipGridPadding || x+w-gx+tipGridPadding < 0 || y > gh+gy || y+h-gy < 0
}

// renderTips draws the visible tips, removing those that moved out of
// the plot area. Pinned tips get a close mark and a connector from the
// nearest of eight points on the box to their target.
func (sc *Scope) renderTips(layer *render.Group) {
	ctx := sc.context(sc.scene.Layer(DataLayer))
	mp := sc.mapping
	for _, id := range slices.Clone(sc.tipOrder) {
		t := sc.tips[id]
		if t.Hidden {
			continue
		}
		if t.Ref.Item >= len(sc.items) {
			sc.clearTip(id)
			continue
		}
		it := sc.items[t.Ref.Item]
		lines := tipLines(it.TipText(ctx, t.Ref))
		if len(lines) == 0 {
			continue
		}
		lineH := float64(tipFontSize + tipLineGap)
		w := 0.0
		for _, ln := range lines {
			w = max(w, errors.Log1(render.MeasureText(ln.text, tipFontSize, ln.bold)))
		}
		w += 2 * tipPadding
		if t.Sticking {
			w += tipFontSize
		}
		h := float64(len(lines))*lineH + 2*tipPadding
		x, y := mp.X(t.X), mp.Y(t.Y)
		if sc.outsideGrid(x, y, w, h) {
			sc.clearTip(id)
			continue
		}
		color := it.Series().Color
		if color == "" {
			color = "gray"
		}
		g := layer.Group("tip_" + id)
		g.Class = "plot-tooltip"
		g.Add(&render.Rect{X: x, Y: y, W: w, H: h, Style: render.Style{Fill: "white", FillOpacity: 0.9, Stroke: color, StrokeWidth: 1}})
		for i, ln := range lines {
			g.Add(&render.Text{X: x + tipPadding, Y: y + tipPadding + float64(i+1)*lineH - tipLineGap, Text: ln.text, Style: render.Style{Fill: "black", FontSize: tipFontSize, Bold: ln.bold}})
		}
		if !t.Sticking {
			continue
		}
		g.Add(&render.Text{ID: "tip_" + id + "_close", Class: "plot-tooltip-close", X: x + w - tipPadding, Y: y + tipPadding + tipFontSize - 2, Text: "×", Style: render.Style{Fill: "black", FontSize: tipFontSize, Anchor: render.End}})
		tx, ty := mp.X(t.TargetX), mp.Y(t.TargetY)
		ax, ay := attachment(x, y, w, h, tx, ty)
		layer.Add(&render.Line{ID: id + "_line", Class: "plot-tooltip-line", X1: ax, Y1: ay, X2: tx, Y2: ty, Style: render.Style{Stroke: color, StrokeWidth: 1}})
	}
}

// attachment returns the point of the box nearest to (tx, ty) among
// its corners and edge midpoints.
func attachment(x, y, w, h, tx, ty float64) (float64, float64) {
	pts := [8][2]float64{
		{x, y + h/2}, {x + w, y + h/2}, {x + w/2, y}, {x + w/2, y + h},
		{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h},
	}
	best, bestD := pts[0], math.Inf(1)
	for _, p := range pts {
		if d := math.Hypot(p[0]-tx, p[1]-ty); d < bestD {
			best, bestD = p, d
		}
	}
	return best[0], best[1]
}
