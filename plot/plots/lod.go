// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"fmt"
	"strconv"

	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/render"
)

// LOD render types.
const (
	// Box draws one rectangle per sample spanning its x and y extent.
	Box = "box"

	// River draws the band between sample minima and maxima with the
	// sample averages as a line.
	River = "river"
)

// BinPixels is the width in pixels of one decimation bin.
const BinPixels = 4

// lod is the decimating wrapper shared by all LOD variants. While the
// visible window holds at most Threshold elements it draws the plain
// item; beyond that it draws one summary per pixel bin.
type lod struct {
	base

	// Plain is the item drawn when decimation is not needed.
	Plain Item

	// RenderType is [Box] or [River].
	RenderType string

	// Threshold is the visible element count above which samples are drawn.
	Threshold int

	sampler Sampler
	samples []Sample
	active  bool
}

func newLOD(s *plot.Series, plain Item, threshold int, ranged, river bool) lod {
	rt := Box
	if river && s.LODType == River {
		rt = River
	}
	return lod{base: base{s: s}, Plain: plain, RenderType: rt, Threshold: threshold, sampler: Sampler{Ranged: ranged}}
}

func (l *lod) IsLOD() bool { return true }

// Active returns whether the last render drew samples.
func (l *lod) Active() bool { return l.active }

// Samples returns the samples of the last render.
func (l *lod) Samples() []Sample { return l.samples }

func (l *lod) Render(ctx *Context) {
	from, to := l.visible(ctx)
	l.active = to-from > l.Threshold && l.s.ShowItem
	if !l.active {
		l.samples = nil
		l.Plain.Render(ctx)
		return
	}
	f := ctx.Mapping.Focus
	n := max(int(ctx.Mapping.PlotWidth()/BinPixels), 1)
	l.samples = l.sampler.Sample(l.s.Elements, from, to, f.XL, f.XR, n)
	g := ctx.group(l.s)
	g.Class += " plot-lod"
	if l.RenderType == River {
		l.renderRiver(ctx, g)
		return
	}
	l.renderBoxes(ctx, g)
}

func (l *lod) renderBoxes(ctx *Context, g *render.Group) {
	st := render.Style{Fill: l.s.Color, FillOpacity: 0.6, Stroke: l.s.Color, StrokeOpacity: l.s.ColorOpacity, StrokeWidth: 1}
	if l.s.ColorOpacity > 0 && l.s.ColorOpacity < 1 {
		st.FillOpacity = 0.6 * l.s.ColorOpacity
	}
	for i := range l.samples {
		sm := &l.samples[i]
		x, y, w, h := rectOf(ctx.x(sm.XL), ctx.y(l.s, sm.Max), ctx.x(sm.XR), ctx.y(l.s, sm.Min))
		g.Add(&render.Rect{ID: l.s.ID + "_s" + strconv.Itoa(sm.Index), X: x, Y: y, W: max(w, 1), H: max(h, 1), Style: st})
	}
}

func (l *lod) renderRiver(ctx *Context, g *render.Group) {
	if len(l.samples) == 0 {
		return
	}
	band := make([]render.Point, 0, 2*len(l.samples))
	avg := make([]render.Point, 0, len(l.samples))
	for i := range l.samples {
		sm := &l.samples[i]
		x := ctx.x(sm.Center())
		band = append(band, render.Point{X: x, Y: ctx.y(l.s, sm.Max)})
		avg = append(avg, render.Point{X: x, Y: ctx.y(l.s, sm.Avg)})
	}
	for i := len(l.samples) - 1; i >= 0; i-- {
		sm := &l.samples[i]
		band = append(band, render.Point{X: ctx.x(sm.Center()), Y: ctx.y(l.s, sm.Min)})
	}
	g.Add(&render.Path{ID: l.s.ID + "_river", Points: band, Closed: true, Style: render.Style{Fill: l.s.Color, FillOpacity: 0.3}})
	st := l.strokeStyle()
	st.DashArray = ""
	g.Add(&render.Path{ID: l.s.ID + "_avg", Points: avg, Style: st})
}

// Hit returns the sample under the pixel while decimating, and
// defers to the plain item otherwise.
func (l *lod) Hit(ctx *Context, px, py float64) (ElementRef, bool) {
	if !l.active {
		return l.Plain.Hit(ctx, px, py)
	}
	const pad = 2
	for i := range l.samples {
		sm := &l.samples[i]
		x0, x1 := ctx.x(sm.XL)-pad, ctx.x(sm.XR)+pad
		y0, y1 := ctx.y(l.s, sm.Max)-pad, ctx.y(l.s, sm.Min)+pad
		if px >= x0 && px <= x1 && py >= min(y0, y1) && py <= max(y0, y1) {
			return ElementRef{Index: sm.Index, Sample: sm}, true
		}
	}
	return ElementRef{}, false
}

// TipText describes a sample by its x extent, element count and y
// statistics, or defers to the plain item for element tips.
func (l *lod) TipText(ctx *Context, ref ElementRef) string {
	sm := ref.Sample
	if sm == nil {
		return l.Plain.TipText(ctx, ref)
	}
	ya := ctx.yAxis(l.s)
	els := l.s.Elements
	ext := func(e *plot.Element, low bool) string {
		if !l.sampler.Ranged {
			return ya.TipValueString(e.Y, false)
		}
		lo, hi := e.Y, e.Y2
		if hi.Less(lo) {
			lo, hi = hi, lo
		}
		if low {
			return ya.TipValueString(lo, false)
		}
		return ya.TipValueString(hi, false)
	}
	return tipString(l.s.Legend, []tipRow{
		{"x", fmt.Sprintf("%s .. %s", ctx.XAxis.TipValueString(els[sm.From].X, false), ctx.XAxis.TipValueString(els[sm.To].X, false))},
		{"count", strconv.Itoa(sm.Count)},
		{"min", ext(&els[sm.MinIndex], true)},
		{"max", ext(&els[sm.MaxIndex], false)},
		{"avg", ya.TipValueString(ya.Value(sm.Avg), false)},
	})
}

// LineLOD is the decimating variant of [Line].
type LineLOD struct{ lod }

// NewLineLOD returns the decimating line item of s.
func NewLineLOD(s *plot.Series, threshold int) *LineLOD {
	return &LineLOD{newLOD(s, NewLine(s), threshold, false, true)}
}

// AreaLOD is the decimating variant of [Area].
type AreaLOD struct{ lod }

// NewAreaLOD returns the decimating area item of s.
func NewAreaLOD(s *plot.Series, threshold int) *AreaLOD {
	return &AreaLOD{newLOD(s, NewArea(s), threshold, true, true)}
}

// BarLOD is the decimating variant of [Bar].
type BarLOD struct{ lod }

// NewBarLOD returns the decimating bar item of s.
func NewBarLOD(s *plot.Series, threshold int) *BarLOD {
	return &BarLOD{newLOD(s, NewBar(s), threshold, true, false)}
}

// StemLOD is the decimating variant of [Stem].
type StemLOD struct{ lod }

// NewStemLOD returns the decimating stem item of s.
func NewStemLOD(s *plot.Series, threshold int) *StemLOD {
	return &StemLOD{newLOD(s, NewStem(s), threshold, true, false)}
}

// PointLOD is the decimating variant of [Point].
type PointLOD struct{ lod }

// NewPointLOD returns the decimating point item of s.
func NewPointLOD(s *plot.Series, threshold int) *PointLOD {
	return &PointLOD{newLOD(s, NewPoint(s), threshold, false, false)}
}
