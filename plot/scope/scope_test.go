// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"strings"
	"testing"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/base/loop"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/export"
	"cogentcore.org/plotscope/plot/num"
	"cogentcore.org/plotscope/plot/plots"
	"cogentcore.org/plotscope/plot/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoLines = `{"title":"Prices","data":[
	{"legend":"a","elements":[{"x":0,"y":0},{"x":5,"y":5},{"x":10,"y":10}]},
	{"legend":"b","elements":[{"x":0,"y":10},{"x":5,"y":2},{"x":10,"y":4}]}]}`

type testHost struct {
	hidden    bool
	scene     *render.Scene
	scenes    int
	width     int
	margins   int
	downloads []*export.Artifact
}

func (h *testHost) IsShowOutput() bool { return !h.hidden }

func (h *testHost) SizeChanged(width int, useMinWidth bool) { h.width = width }

func (h *testHost) Container() Container { return h }

func (h *testHost) SetScene(s *render.Scene) {
	h.scene = s
	h.scenes++
}

func (h *testHost) UpdateMargin() { h.margins++ }

func (h *testHost) Download(a *export.Artifact) error {
	h.downloads = append(h.downloads, a)
	return nil
}

func newScope(t *testing.T, raw string) (*Scope, *testHost, *loop.Manual) {
	t.Helper()
	m := loop.NewManual()
	sc := New(m, DefaultOptions())
	require.NoError(t, sc.SetModelData([]byte(raw)))
	h := &testHost{}
	require.NoError(t, sc.Init(h))
	return sc, h, m
}

// pixel returns the pixel position of the data point (x, y).
func pixel(sc *Scope, x, y float64) (float64, float64) {
	xa, ya, _ := sc.Axes()
	mp := sc.Mapping()
	return mp.X(xa.Percent(num.Float(x))), mp.Y(ya.Percent(num.Float(y)))
}

func TestLifecycle(t *testing.T) {
	m := loop.NewManual()
	sc := New(m, DefaultOptions())
	assert.True(t, strings.HasPrefix(sc.ID, "plot-"))
	assert.Equal(t, Uninitialized, sc.Status())

	h := &testHost{}
	assert.True(t, errors.Is(sc.Init(h), ErrNotReady))
	assert.True(t, errors.Is(sc.Update(), ErrNotReady))
	assert.Error(t, sc.SetModelData([]byte(`{"data":`)))

	require.NoError(t, sc.SetModelData([]byte(twoLines)))
	require.NoError(t, sc.Init(h))
	assert.Equal(t, Ready, sc.Status())
	assert.Equal(t, 1200, h.width)
	require.NotNil(t, h.scene)
	assert.Same(t, sc.Scene(), h.scene)
	assert.Len(t, sc.Items(), 2)
	st, _ := sc.State.Get(StateKey)
	assert.Equal(t, "ready", st)
	assert.Error(t, sc.Init(h))

	require.NoError(t, sc.Destroy())
	assert.Equal(t, Destroyed, sc.Status())
	assert.Nil(t, h.scene)
	assert.True(t, errors.Is(sc.Destroy(), ErrDestroyed))
	assert.True(t, errors.Is(sc.Update(), ErrDestroyed))
	assert.True(t, errors.Is(sc.SetModelData([]byte(twoLines)), ErrDestroyed))
}

func TestUpdateHidden(t *testing.T) {
	m := loop.NewManual()
	sc := New(m, DefaultOptions())
	require.NoError(t, sc.SetModelData([]byte(twoLines)))
	h := &testHost{hidden: true}
	require.NoError(t, sc.Init(h))
	assert.Equal(t, 0, h.scenes)
	assert.Equal(t, 1200, h.width)

	h.hidden = false
	require.NoError(t, sc.Update())
	assert.Equal(t, 1, h.scenes)
}

func TestSaveHidden(t *testing.T) {
	m := loop.NewManual()
	sc := New(m, DefaultOptions())
	require.NoError(t, sc.SetModelData([]byte(twoLines)))
	h := &testHost{hidden: true}
	require.NoError(t, sc.Init(h))
	require.Nil(t, sc.Scene())

	_, ok := sc.HitAt(0, 0)
	assert.False(t, ok)
	_, ok = sc.HitAt(600, 175)
	assert.False(t, ok)

	a, err := sc.SaveAsSVG()
	require.NoError(t, err)
	assert.Equal(t, "Prices.svg", a.Filename)
	assert.Contains(t, string(a.Bytes), "<svg")
	_, err = sc.SaveAsPNG(0.25)
	require.NoError(t, err)
	assert.Len(t, h.downloads, 2)
	assert.Equal(t, 0, h.scenes)
}

func TestMarginDeferred(t *testing.T) {
	sc, h, m := newScope(t, twoLines)
	assert.Equal(t, 0, h.margins)
	require.NoError(t, sc.Update())
	require.NoError(t, sc.Update())
	m.Advance(0)
	assert.Equal(t, 1, h.margins)

	require.NoError(t, sc.Update())
	m.Advance(0)
	assert.Equal(t, 2, h.margins)
}

func TestUpdatePlot(t *testing.T) {
	sc, _, _ := newScope(t, twoLines)
	require.NoError(t, sc.ZoomAt(600, 150, 2))
	require.NoError(t, sc.UpdateModelData([]byte(`{"title":"Volumes"}`)))
	assert.Equal(t, "Prices", sc.Model().Title)
	require.NoError(t, sc.UpdatePlot())
	assert.Equal(t, "Volumes", sc.Model().Title)
	assert.InDelta(t, 1, sc.ZoomLevel(), 1e-9)
	assert.Len(t, sc.Items(), 2)
}

func TestZoom(t *testing.T) {
	sc, _, _ := newScope(t, twoLines)
	def := sc.Focus()
	assert.InDelta(t, 1, sc.ZoomLevel(), 1e-9)

	mp := sc.Mapping()
	cx := (mp.Layout.Left + mp.Width - mp.Layout.Right) / 2
	cy := (mp.Layout.Top + mp.Height - mp.Layout.Bottom) / 2
	require.NoError(t, sc.ZoomAt(cx, cy, 2))
	assert.InDelta(t, 2, sc.ZoomLevel(), 1e-9)
	zl, _ := sc.State.Get(ZoomLevelKey)
	assert.InDelta(t, 2, zl.(float64), 1e-9)
	assert.InDelta(t, def.YSpan()/2, sc.Focus().YSpan(), 1e-9)

	// over the y axis labels only y zooms
	before := sc.Focus()
	require.NoError(t, sc.ZoomAt(mp.Layout.Left/2, cy, 2))
	assert.Equal(t, before.XL, sc.Focus().XL)
	assert.InDelta(t, before.YSpan()/2, sc.Focus().YSpan(), 1e-9)

	require.NoError(t, sc.ZoomAt(cx, cy, 1e-6))
	assert.Equal(t, plot.FullFocus, sc.Focus())

	require.NoError(t, sc.ResetFocus())
	assert.Equal(t, def, sc.Focus())

	require.NoError(t, sc.ZoomBox(cx, cy, cx+2, cy+40))
	assert.Equal(t, def, sc.Focus())
	require.NoError(t, sc.ZoomBox(cx, cy, cx+100, cy+40))
	assert.Greater(t, sc.ZoomLevel(), 1.0)

	require.NoError(t, sc.ResetFocus())
	require.NoError(t, sc.Pan(-1e6, 0))
	assert.InDelta(t, 1, sc.Focus().XR, 1e-12)
	assert.InDelta(t, def.XSpan(), sc.Focus().XSpan(), 1e-12)

	assert.Error(t, sc.ZoomAt(cx, cy, 0))
}

func TestLegendToggle(t *testing.T) {
	sc, h, _ := newScope(t, twoLines)
	require.NotNil(t, h.scene.Root.Find("legendcheck_all"))
	require.NotNil(t, h.scene.Root.Find("legendcheck_i0"))

	require.NoError(t, sc.ToggleItem(0))
	assert.False(t, sc.Items()[0].Shown())
	assert.True(t, sc.Items()[1].Shown())

	require.NoError(t, sc.ToggleAll())
	assert.True(t, sc.Items()[0].Shown())
	assert.True(t, sc.Items()[1].Shown())

	require.NoError(t, sc.ToggleItem(AllEntry))
	assert.False(t, sc.Items()[0].Shown())
	assert.False(t, sc.Items()[1].Shown())

	assert.Error(t, sc.ToggleItem(5))
}

func TestLegendSingleItem(t *testing.T) {
	_, h, _ := newScope(t, `{"data":[{"legend":"a","elements":[{"x":0,"y":0},{"x":1,"y":1}]}]}`)
	assert.Nil(t, h.scene.Root.Find("legendcheck_all"))
	assert.NotNil(t, h.scene.Root.Find("legendcheck_i0"))
}

func TestTooltipFade(t *testing.T) {
	sc, h, m := newScope(t, twoLines)
	ref := plots.ElementRef{Item: 0, Index: 1}
	id := ref.ID(sc.Items()[0])
	px, py := pixel(sc, 5, 5)

	require.NoError(t, sc.Tooltip(ref, px, py))
	require.Len(t, sc.Tips(), 1)
	assert.False(t, sc.Tips()[0].Sticking)
	assert.NotNil(t, h.scene.Root.Find("tip_"+id))

	require.NoError(t, sc.MoveTooltip(ref, px+20, py))
	assert.InDelta(t, px+20+tipOffset, sc.Mapping().X(sc.Tips()[0].X), 1e-6)

	require.NoError(t, sc.Untooltip(ref))
	assert.True(t, sc.Tips()[0].Hidden)
	assert.Nil(t, h.scene.Root.Find("tip_"+id))
	m.Advance(TipFade / 2)
	assert.Len(t, sc.Tips(), 1)
	m.Advance(TipFade)
	assert.Empty(t, sc.Tips())
}

func TestTooltipPinned(t *testing.T) {
	sc, h, m := newScope(t, twoLines)
	ref := plots.ElementRef{Item: 0, Index: 1}
	id := ref.ID(sc.Items()[0])
	px, py := pixel(sc, 5, 5)

	require.NoError(t, sc.ToggleTooltip(ref, px, py))
	require.NoError(t, sc.ToggleTooltip(ref, px, py))
	require.Len(t, sc.Tips(), 1)
	assert.True(t, sc.Tips()[0].Sticking)
	assert.NotNil(t, h.scene.Root.Find(id+"_line"))
	assert.NotNil(t, h.scene.Root.Find("tip_"+id+"_close"))

	require.NoError(t, sc.Untooltip(ref))
	m.Advance(TipFade)
	assert.Len(t, sc.Tips(), 1)

	// another element's tip replaces only unpinned tips
	other := plots.ElementRef{Item: 1, Index: 1}
	ox, oy := pixel(sc, 5, 2)
	require.NoError(t, sc.Tooltip(other, ox, oy))
	assert.Len(t, sc.Tips(), 2)

	require.NoError(t, sc.DragTip(id, px+30, py-30))
	assert.InDelta(t, px+30, sc.Mapping().X(sc.Tips()[0].X), 1e-6)

	require.NoError(t, sc.CloseTip(id))
	assert.Len(t, sc.Tips(), 1)
	assert.True(t, errors.Is(sc.CloseTip(id), ErrUnknownTip))
	assert.True(t, errors.Is(sc.DragTip("nope", 0, 0), ErrUnknownTip))
}

func TestToggleItemHidesTips(t *testing.T) {
	sc, h, _ := newScope(t, twoLines)
	pinned := plots.ElementRef{Item: 0, Index: 1}
	loose := plots.ElementRef{Item: 0, Index: 2}
	px, py := pixel(sc, 5, 5)
	require.NoError(t, sc.Tooltip(pinned, px, py))
	require.NoError(t, sc.ToggleTooltip(pinned, px, py))
	require.NoError(t, sc.Tooltip(loose, px, py))
	require.Len(t, sc.Tips(), 2)

	require.NoError(t, sc.ToggleItem(0))
	require.Len(t, sc.Tips(), 1)
	assert.True(t, sc.Tips()[0].Hidden)
	assert.Nil(t, h.scene.Root.Find("tip_"+pinned.ID(sc.Items()[0])))

	require.NoError(t, sc.ToggleItem(0))
	assert.False(t, sc.Tips()[0].Hidden)
	assert.NotNil(t, h.scene.Root.Find("tip_"+pinned.ID(sc.Items()[0])))
}

func TestDestroyStopsTimers(t *testing.T) {
	sc, h, m := newScope(t, twoLines)
	ref := plots.ElementRef{Item: 0, Index: 1}
	px, py := pixel(sc, 5, 5)
	require.NoError(t, sc.Tooltip(ref, px, py))
	require.NoError(t, sc.Untooltip(ref))
	assert.Equal(t, 2, m.Pending())

	require.NoError(t, sc.Destroy())
	assert.Equal(t, 0, m.Pending())
	m.Advance(TipFade)
	assert.Equal(t, 0, h.margins)
}

func TestDumpState(t *testing.T) {
	sc, _, _ := newScope(t, twoLines)
	mp := sc.Mapping()
	require.NoError(t, sc.ZoomAt((mp.Layout.Left+mp.Width-mp.Layout.Right)/2, 100, 1.5))
	require.NoError(t, sc.ToggleItem(1))
	ref := plots.ElementRef{Item: 0, Index: 1}
	px, py := pixel(sc, 5, 5)
	require.NoError(t, sc.ToggleTooltip(ref, px, py))
	require.NoError(t, sc.ToggleTooltip(ref, px, py))

	d, err := sc.DumpState()
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, d.Hidden)
	require.Len(t, d.Tips, 1)

	sc2 := New(loop.NewManual(), DefaultOptions())
	require.NoError(t, sc2.SetModelData([]byte(twoLines)))
	require.NoError(t, sc2.SetDumpState(d))
	d.Hidden = nil
	require.NoError(t, sc2.Init(&testHost{}))

	assert.Equal(t, sc.Focus(), sc2.Focus())
	assert.True(t, sc2.Items()[0].Shown())
	assert.False(t, sc2.Items()[1].Shown())
	require.Len(t, sc2.Tips(), 1)
	assert.True(t, sc2.Tips()[0].Sticking)
	assert.Equal(t, sc.Tips()[0].ID, sc2.Tips()[0].ID)

	// the dump state is applied once
	require.NoError(t, sc2.UpdatePlot())
	assert.True(t, sc2.Items()[1].Shown())
	assert.Len(t, sc2.Tips(), 1)
}

func TestSetSize(t *testing.T) {
	sc, h, _ := newScope(t, twoLines)
	require.NoError(t, sc.SetSize(800, 400))
	assert.Equal(t, 800, h.width)
	assert.Equal(t, 800.0, h.scene.Width)
	assert.Equal(t, 400.0, h.scene.Height)
	w, _ := sc.State.Get(WidthKey)
	assert.Equal(t, 800.0, w)
}

func TestCursor(t *testing.T) {
	sc, h, _ := newScope(t, `{"xCursor":{"color":"red"},"yCursor":{"color":"blue"},
		"data":[{"elements":[{"x":0,"y":0},{"x":10,"y":10}]}]}`)
	px, py := pixel(sc, 5, 5)
	require.NoError(t, sc.MoveCursor(px, py))
	assert.NotNil(t, h.scene.Root.Find("cursor_x"))
	assert.NotNil(t, h.scene.Root.Find("cursor_ylabel"))
	require.NoError(t, sc.MoveCursor(0, 0))
	assert.Nil(t, h.scene.Root.Find("cursor_x"))
}

func TestSaveAsSVG(t *testing.T) {
	sc, h, _ := newScope(t, twoLines)
	a, err := sc.SaveAsSVG()
	require.NoError(t, err)
	assert.Equal(t, "Prices.svg", a.Filename)
	assert.Equal(t, export.SVGMIME, a.MIME)
	assert.Contains(t, string(a.Bytes), "plot-title")
	require.Len(t, h.downloads, 1)

	p, err := sc.SaveAsPNG(0.5)
	require.NoError(t, err)
	assert.Equal(t, "Prices.png", p.Filename)
	assert.Len(t, h.downloads, 2)
}

const combined = `{"type":"CombinedPlot","plot_title":"Both","x_label":"time","init_height":400,"weights":[3,1],"plots":[
	{"data":[{"legend":"a","elements":[{"x":0,"y":0},{"x":10,"y":10}]}]},
	{"data":[{"legend":"b","elements":[{"x":0,"y":3},{"x":10,"y":1}]}]}]}`

func TestCombined(t *testing.T) {
	m := loop.NewManual()
	c := NewCombined(m, DefaultOptions())
	h := &testHost{}
	assert.True(t, errors.Is(c.Init(h), ErrNotReady))
	assert.Error(t, c.SetModelData([]byte(twoLines)))
	require.NoError(t, c.SetModelData([]byte(combined)))
	require.NoError(t, c.Init(h))

	require.Len(t, c.Children(), 2)
	for _, ch := range c.Children() {
		assert.Equal(t, Ready, ch.Status())
	}
	assert.Equal(t, "Both", c.Children()[0].Model().Title)
	assert.Equal(t, "time", c.Children()[1].Model().XAxis.Label)
	assert.Equal(t, 1200, h.width)

	s := h.scene
	require.NotNil(t, s)
	assert.Same(t, c.Scene(), s)
	assert.Equal(t, 400.0, s.Height)
	g0 := s.Root.Find("plot0").(*render.Group)
	g1 := s.Root.Find("plot1").(*render.Group)
	assert.Equal(t, 0.0, g0.Y)
	assert.Equal(t, 300.0, g1.Y)
	data := g1.Find(DataLayer).(*render.Group)
	require.NotNil(t, data.ClipRect)
	assert.Equal(t, c.Children()[1].Scene().ClipArea, *data.ClipRect)

	require.NoError(t, c.Children()[1].ToggleItem(0))
	assert.NotSame(t, s, h.scene)

	require.NoError(t, c.Update())
	require.NoError(t, c.UpdatePlot())

	a, err := c.SaveAsSVG()
	require.NoError(t, err)
	assert.Equal(t, "Both.svg", a.Filename)
	assert.Contains(t, string(a.Bytes), "plotClip1")
	assert.Contains(t, string(a.Bytes), "plotClip2")

	require.NoError(t, c.Destroy())
	for _, ch := range c.Children() {
		assert.Equal(t, Destroyed, ch.Status())
	}
	assert.Nil(t, h.scene)
	assert.Equal(t, 0, m.Pending())
	assert.True(t, errors.Is(c.Update(), ErrDestroyed))
}

func TestCombinedHidden(t *testing.T) {
	m := loop.NewManual()
	c := NewCombined(m, DefaultOptions())
	require.NoError(t, c.SetModelData([]byte(combined)))
	h := &testHost{hidden: true}
	require.NoError(t, c.Init(h))
	assert.Nil(t, c.Scene())

	a, err := c.SaveAsSVG()
	require.NoError(t, err)
	assert.Contains(t, string(a.Bytes), "plot-combined-child")
	assert.Nil(t, h.scene)
	require.NoError(t, c.Destroy())
}

// bareHost is shown but has no container.
type bareHost struct{}

func (bareHost) IsShowOutput() bool    { return true }
func (bareHost) SizeChanged(int, bool) {}
func (bareHost) Container() Container  { return nil }

func TestCombinedNoContainer(t *testing.T) {
	m := loop.NewManual()
	c := NewCombined(m, DefaultOptions())
	require.NoError(t, c.SetModelData([]byte(combined)))
	require.NoError(t, c.Init(bareHost{}))
	assert.NotNil(t, c.Scene())
	require.NoError(t, c.Destroy())
	assert.Nil(t, c.Scene())
}
