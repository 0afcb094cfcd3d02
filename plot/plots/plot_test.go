// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/axis"
	"cogentcore.org/plotscope/plot/num"
	"cogentcore.org/plotscope/plot/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries(typ plot.ItemTypes, n int) *plot.Series {
	s := &plot.Series{Type: typ, ID: "i0", Legend: "series", ShowItem: true, Color: "#FF0000", Width: 2, Size: 8}
	for i := 0; i < n; i++ {
		y := float64(i % 7)
		e := plot.Element{Index: i, ID: "e", X: num.Float(float64(i)), Y: num.Float(y)}
		switch typ {
		case plot.Bar, plot.Stem, plot.Area:
			e.X2, e.Y2 = num.Float(float64(i)+0.5), num.Float(y+1)
		}
		s.Elements = append(s.Elements, e)
	}
	return s
}

func testContext(w, h float64) *Context {
	sc := render.NewScene(w, h)
	return &Context{
		Scene:   sc,
		Layer:   sc.Layer("data"),
		Mapping: plot.NewMapping(plot.FullFocus, w, h, plot.Layout{}),
		XAxis:   axis.New(axis.Linear),
		YAxis:   axis.New(axis.Linear),
	}
}

// applyAxes maps the item onto axes spanning its range.
func applyAxes(ctx *Context, it Item) {
	r := it.Range()
	ctx.XAxis.SetRange(r.XL, r.XR, 0)
	ctx.YAxis.SetRange(r.YL, r.YR, 0)
	it.ApplyAxis(ctx.XAxis, ctx.YAxis)
}

func captureLog(t *testing.T) *bytes.Buffer {
	var b bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&b, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &b
}

func TestLODSafety(t *testing.T) {
	logs := captureLog(t)
	s := testSeries(plot.Line, 2000)
	it, err := New(s, 1500)
	require.NoError(t, err)
	assert.IsType(t, &LineLOD{}, it)
	assert.True(t, it.IsLOD())
	assert.True(t, s.IsLOD)
	assert.Empty(t, logs.String())

	sh := testSeries(plot.Line, 2000)
	rnd := rand.New(rand.NewSource(1))
	rnd.Shuffle(len(sh.Elements), func(i, j int) {
		sh.Elements[i], sh.Elements[j] = sh.Elements[j], sh.Elements[i]
	})
	it, err = New(sh, 1500)
	require.NoError(t, err)
	assert.IsType(t, &Line{}, it)
	assert.False(t, it.IsLOD())
	assert.False(t, sh.IsLOD)
	assert.Contains(t, logs.String(), "x values are not monotonic, LOD is disabled")
}

func TestLODThreshold(t *testing.T) {
	it, err := New(testSeries(plot.Bar, 1499), 1500)
	require.NoError(t, err)
	assert.IsType(t, &Bar{}, it)

	it, err = New(testSeries(plot.Bar, 1500), 1500)
	require.NoError(t, err)
	assert.IsType(t, &BarLOD{}, it)

	// no decimating variant
	it, err = New(testSeries(plot.Text, 5000), 1500)
	require.NoError(t, err)
	assert.IsType(t, &Text{}, it)

	it, err = New(testSeries(plot.Point, 1600), 0)
	require.NoError(t, err)
	assert.IsType(t, &PointLOD{}, it)
}

func TestRecreate(t *testing.T) {
	tests := []struct {
		typ   plot.ItemTypes
		isLOD bool
		want  Item
	}{
		{plot.Line, true, &LineLOD{}},
		{plot.Line, false, &Line{}},
		{plot.Area, true, &AreaLOD{}},
		{plot.Stem, true, &StemLOD{}},
		{plot.Stem, false, &Stem{}},
		{plot.ConstLine, true, &ConstLine{}},
		{plot.HeatMap, false, &HeatMap{}},
	}
	for _, tt := range tests {
		s := testSeries(tt.typ, 3)
		s.IsLOD = tt.isLOD
		it, err := Recreate(s, 1500)
		require.NoError(t, err)
		assert.IsType(t, tt.want, it, "%v lod=%v", tt.typ, tt.isLOD)
	}

	_, err := Recreate(&plot.Series{Type: plot.ItemTypes(99)}, 0)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestMonotonic(t *testing.T) {
	assert.True(t, Monotonic(nil))
	els := testSeries(plot.Line, 5).Elements
	assert.True(t, Monotonic(els))
	els[2].X = num.Float(2)
	els[3].X = num.Float(2)
	assert.True(t, Monotonic(els))
	els[4].X = num.None
	assert.True(t, Monotonic(els))
	els[3].X = num.Float(1)
	assert.False(t, Monotonic(els))
}

func TestSampler(t *testing.T) {
	els := make([]plot.Element, 10)
	for i := range els {
		els[i].Y = num.Float(0)
		els[i].PX = float64(i) / 10
		els[i].PY = float64(i%5) / 10
	}
	samples := Sampler{}.Sample(els, 0, len(els), 0, 1, 2)
	require.Len(t, samples, 2)
	s := samples[0]
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 0, s.From)
	assert.Equal(t, 4, s.To)
	assert.InDelta(t, 0.0, s.Min, 1e-12)
	assert.InDelta(t, 0.4, s.Max, 1e-12)
	assert.Equal(t, 4, s.MaxIndex)
	assert.InDelta(t, 0.2, s.Avg, 1e-12)
	assert.InDelta(t, 0.2, s.Center(), 1e-12)
	assert.Equal(t, 1, samples[1].Index)
	assert.Equal(t, 9, samples[1].To)

	assert.Nil(t, Sampler{}.Sample(els, 0, len(els), 0, 1, 0))
}

func TestLODRender(t *testing.T) {
	ctx := testContext(200, 100)
	s := testSeries(plot.Line, 2000)
	it, err := New(s, 1500)
	require.NoError(t, err)
	applyAxes(ctx, it)

	lod := it.(*LineLOD)
	lod.Render(ctx)
	assert.True(t, lod.Active())
	assert.Len(t, lod.Samples(), 200/BinPixels)
	g := ctx.Layer.Find("i0").(*render.Group)
	assert.Len(t, g.Children, 200/BinPixels)

	sm := lod.Samples()[0]
	ref, ok := lod.Hit(ctx, ctx.x(sm.Center()), ctx.y(s, (sm.Min+sm.Max)/2))
	require.True(t, ok)
	require.NotNil(t, ref.Sample)
	tip := lod.TipText(ctx, ref)
	assert.Contains(t, tip, "<div>count: 40</div>")
	assert.Contains(t, tip, `<div style="font-weight:bold">series</div>`)

	// zoomed in far enough to draw every element
	ctx.Mapping.Focus.XR = 0.1
	lod.Render(ctx)
	assert.False(t, lod.Active())
	g = ctx.Layer.Find("i0").(*render.Group)
	require.NotEmpty(t, g.Children)
	assert.IsType(t, &render.Path{}, g.Children[0])
}

func TestRiver(t *testing.T) {
	ctx := testContext(100, 100)
	s := testSeries(plot.Area, 3000)
	s.LODType = River
	it, err := New(s, 1500)
	require.NoError(t, err)
	applyAxes(ctx, it)
	it.Render(ctx)
	assert.NotNil(t, ctx.Layer.Find("i0_river"))
	assert.NotNil(t, ctx.Layer.Find("i0_avg"))

	// bars only draw boxes
	b := testSeries(plot.Bar, 3000)
	b.LODType = River
	it, err = New(b, 1500)
	require.NoError(t, err)
	assert.Equal(t, Box, it.(*BarLOD).RenderType)
}

func TestLineRender(t *testing.T) {
	ctx := testContext(100, 100)
	s := testSeries(plot.Line, 3)
	ln := NewLine(s)
	applyAxes(ctx, ln)
	ln.Render(ctx)
	g := ctx.Layer.Find("i0").(*render.Group)
	require.Len(t, g.Children, 1)
	p := g.Children[0].(*render.Path)
	assert.Len(t, p.Points, 3)
	assert.InDelta(t, 0.0, p.Points[0].X, 1e-9)
	assert.InDelta(t, 100.0, p.Points[0].Y, 1e-9)

	ref, ok := ln.Hit(ctx, 51, 49)
	require.True(t, ok)
	assert.Equal(t, 1, ref.Index)
	assert.Equal(t, `<div style="font-weight:bold">series</div><div>x: 1</div><div>y: 1</div>`, ln.TipText(ctx, ref))

	s.Elements[1].ToolTip = "custom"
	assert.Equal(t, "custom", ln.TipText(ctx, ref))

	_, ok = ln.Hit(ctx, 90, 10)
	assert.False(t, ok)
}

func TestStepLine(t *testing.T) {
	ctx := testContext(100, 100)
	s := testSeries(plot.Line, 3)
	s.Interpolation = "none"
	ln := NewLine(s)
	assert.Equal(t, PostStep, ln.StepStyle)
	applyAxes(ctx, ln)
	ln.Render(ctx)
	p := ctx.Layer.Find("i0").(*render.Group).Children[0].(*render.Path)
	assert.Len(t, p.Points, 5)
}

func TestBarRenderHit(t *testing.T) {
	ctx := testContext(100, 100)
	s := testSeries(plot.Bar, 2)
	b := NewBar(s)
	applyAxes(ctx, b)
	b.Render(ctx)
	g := ctx.Layer.Find("i0").(*render.Group)
	require.Len(t, g.Children, 2)
	r := g.Children[0].(*render.Rect)
	assert.Equal(t, "#FF0000", r.Fill)
	ref, ok := b.Hit(ctx, r.X+r.W/2, r.Y+r.H/2)
	require.True(t, ok)
	assert.Equal(t, 0, ref.Index)
	assert.Contains(t, b.TipText(ctx, ref), "<div>yTop: 1</div>")
}

func TestConstLineRange(t *testing.T) {
	s := &plot.Series{Type: plot.ConstLine, ID: "c", ShowItem: true, Elements: []plot.Element{
		{X: num.Float(3), Y: num.None},
		{X: num.None, Y: num.Float(7)},
	}}
	r := NewConstLine(s).Range()
	assert.Equal(t, 3.0, r.XL.Float64())
	assert.Equal(t, 3.0, r.XR.Float64())
	assert.Equal(t, 7.0, r.YL.Float64())

	only := &plot.Series{Type: plot.ConstLine, ShowItem: true, Elements: []plot.Element{{X: num.Float(3), Y: num.None}}}
	r = NewConstLine(only).Range()
	assert.True(t, r.YL.IsNone())
}

func TestHeatMapColor(t *testing.T) {
	h := NewHeatMap(&plot.Series{Type: plot.HeatMap, MinValue: 1, MaxValue: 4, Colors: []string{"#000000", "#FFFFFF"}})
	assert.Equal(t, "#000000", h.CellColor(1))
	assert.Equal(t, "#FFFFFF", h.CellColor(4))
	assert.Equal(t, "#FFFFFF", h.CellColor(10))
	assert.Equal(t, "#808080", h.CellColor(2.5))
	assert.Equal(t, "", h.CellColor(0/zero()))
}

func zero() float64 { return 0 }

func TestShapeNode(t *testing.T) {
	st := render.Style{Fill: "black"}
	assert.IsType(t, &render.Rect{}, ShapeNode("", 10, 10, 8, st))
	assert.IsType(t, &render.Circle{}, ShapeNode(Circle, 10, 10, 8, st))
	d := ShapeNode(Diamond, 10, 10, 8, st).(*render.Path)
	assert.Equal(t, []render.Point{{X: 6, Y: 10}, {X: 10, Y: 6}, {X: 14, Y: 10}, {X: 10, Y: 14}}, d.Points)
	for _, sh := range []string{Cross, DCross, LineCross} {
		p := ShapeNode(sh, 10, 10, 8, st).(*render.Path)
		assert.Len(t, p.Points, 12, sh)
	}
	cross := ShapeNode(Cross, 10, 10, 8, st).(*render.Path)
	assert.Equal(t, render.Point{X: 12, Y: 6}, cross.Points[0])
	assert.Equal(t, render.Point{X: 8, Y: 6}, cross.Points[11])
	tri := ShapeNode(Triangle, 0, 0, 2, st).(*render.Path)
	assert.InDelta(t, -1, tri.Points[0].Y, 1e-12)
}
