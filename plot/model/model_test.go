// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/axis"
	"cogentcore.org/plotscope/plot/num"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardize(t *testing.T, raw string) *Model {
	t.Helper()
	m, err := Standardize([]byte(raw), DefaultOptions())
	require.NoError(t, err)
	return m
}

func float(t *testing.T, v num.Value) float64 {
	t.Helper()
	require.False(t, v.IsNone())
	return v.Float64()
}

func TestDialect(t *testing.T) {
	cases := []struct {
		raw  string
		want Versions
	}{
		{`{}`, Direct},
		{`{"data":[]}`, Direct},
		{`{"graphics_list":[]}`, Legacy},
		{`{"graphics_list":null}`, Direct},
		{`{"version":"complete","graphics_list":[]}`, Complete},
		{`{"format":"legacy"}`, Legacy},
		{`{"format":"direct","graphics_list":[]}`, Direct},
	}
	for _, c := range cases {
		d, err := Dialect([]byte(c.raw))
		require.NoError(t, err, c.raw)
		assert.Equal(t, c.want, d, c.raw)
	}

	_, err := Dialect([]byte(`{"format":"xml"}`))
	assert.True(t, errors.Is(err, ErrUnknownDialect))
	_, err = Dialect([]byte(`{"data":`))
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestStandardizeDefaults(t *testing.T) {
	m := standardize(t, `{"data":[{"legend":"a","elements":[{"x":0,"y":0},{"x":10,"y":5}]}]}`)
	assert.Equal(t, Complete, m.Version)
	assert.Equal(t, "Plot", m.Type)
	assert.Equal(t, 1200.0, m.Width)
	assert.Equal(t, 350.0, m.Height)
	assert.Equal(t, DefaultLegendPosition, m.LegendPosition)
	assert.Equal(t, DefaultLegendLayout, m.LegendLayout)
	assert.Equal(t, DefaultDisplayMode, m.DisplayMode)
	assert.Equal(t, plot.Vertical, m.Orientation)
	assert.Equal(t, 1500, m.LODThreshold)
	assert.True(t, m.ShowLegend)
	assert.True(t, m.ShowXGridlines)
	assert.Equal(t, plot.Margin{Left: 0.05, Right: 0.05, Top: 0.05, Bottom: 0.05}, m.Margin)

	require.Len(t, m.Data, 1)
	s := m.Data[0]
	assert.Equal(t, plot.Line, s.Type)
	assert.Equal(t, "i0", s.ID)
	assert.Equal(t, 2.0, s.Width)
	assert.Equal(t, "black", s.Color)
	assert.Equal(t, "solid", s.Style)
	assert.Equal(t, "", s.DashArray)
	assert.True(t, s.ShowItem)
	assert.False(t, s.IsLOD)

	// ten spans of headroom on each side
	v := m.VRange
	require.NotNil(t, v)
	assert.Equal(t, -100.0, float(t, v.XL))
	assert.Equal(t, 110.0, float(t, v.XR))
	assert.Equal(t, -50.0, float(t, v.YL))
	assert.Equal(t, 55.0, float(t, v.YR))
	assert.Equal(t, 210.0, float(t, v.XSpan))
	assert.InDelta(t, 100.0/210, s.Elements[0].PX, 1e-12)
	assert.InDelta(t, 110.0/210, s.Elements[1].PX, 1e-12)

	items, err := m.Items()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestShowLegendExplicit(t *testing.T) {
	m := standardize(t, `{"showLegend":false,"data":[{"legend":"a","elements":[{"x":0,"y":0}]}]}`)
	assert.False(t, m.ShowLegend)
	m = standardize(t, `{"data":[{"elements":[{"x":0,"y":0}]}]}`)
	assert.False(t, m.ShowLegend)
}

func TestStandardizeIdempotent(t *testing.T) {
	m := standardize(t, `{"title":"t","data":[
		{"type":"bar","elements":[{"x":1,"y":3},{"x":2,"y":4}]},
		{"type":"point","shape":"circle","elements":[{"x":1,"y":1}]}]}`)
	again, err := StandardizeModel(m, DefaultOptions())
	require.NoError(t, err)
	assert.Same(t, m, again)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	d, err := Dialect(b)
	require.NoError(t, err)
	assert.Equal(t, Complete, d)

	m2 := standardize(t, string(b))
	b2, err := json.Marshal(m2)
	require.NoError(t, err)
	assert.JSONEq(t, string(b), string(b2))

	items, err := m2.Items()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestItemDefaults(t *testing.T) {
	m := standardize(t, `{"data":[
		{"type":"bar","width":2,"elements":[{"x":5,"y":3}]},
		{"type":"point","elements":[{"x":1,"y":1}]},
		{"type":"point","shape":"circle","elements":[{"x":1,"y":1,"size":12}]},
		{"type":"line","style":"dashdot","elements":[]},
		{"type":"stem","elements":[{"x":1,"y":-2,"style":"dot"}]},
		{"type":"area","base":1,"elements":[{"x":1,"y":4}]},
		{"type":"bar","outlineColor":"red","elements":[]}]}`)
	require.Len(t, m.Data, 7)

	bar := m.Data[0].Elements[0]
	assert.Equal(t, 4.0, float(t, bar.X))
	assert.Equal(t, 6.0, float(t, bar.X2))
	assert.Equal(t, 0.0, float(t, bar.Y))
	assert.Equal(t, 3.0, float(t, bar.Y2))
	assert.Equal(t, 3.0, float(t, bar.RawY2))

	assert.Equal(t, "rect", m.Data[1].Shape)
	assert.Equal(t, 8.0, m.Data[1].Size)
	assert.Equal(t, 8.0, m.Data[1].Elements[0].Size)
	assert.Equal(t, 5.0, m.Data[2].Size)
	assert.Equal(t, 12.0, m.Data[2].Elements[0].Size)

	assert.Equal(t, "9,5,2,5", m.Data[3].DashArray)

	stem := m.Data[4]
	assert.Equal(t, 2.0, stem.Width)
	assert.Equal(t, "2,2", stem.Elements[0].DashArray)
	assert.Equal(t, -2.0, float(t, stem.Elements[0].Y))
	assert.Equal(t, 0.0, float(t, stem.Elements[0].Y2))

	area := m.Data[5]
	assert.Equal(t, "linear", area.Interpolation)
	assert.Equal(t, 1.0, float(t, area.Elements[0].Y))
	assert.Equal(t, 4.0, float(t, area.Elements[0].Y2))

	assert.Equal(t, 1.0, m.Data[6].Width)
	assert.Equal(t, "red", m.Data[6].Stroke)
	assert.Equal(t, 1.0, m.Data[6].StrokeOpacity)
	assert.Equal(t, 0.0, m.Data[0].StrokeOpacity)
}

func TestUnknownItemSkipped(t *testing.T) {
	m := standardize(t, `{"data":[{"type":"bogus"},{"type":"line","elements":[{"x":1,"y":1}]}]}`)
	require.Len(t, m.Data, 1)
	assert.Equal(t, "i0", m.Data[0].ID)
	assert.Equal(t, plot.Line, m.Data[0].Type)
}

func TestOrientation(t *testing.T) {
	m := standardize(t, `{"orientation":"HORIZONTAL","xAxis":{"label":"X"},"yAxis":{"label":"Y"},
		"data":[{"type":"point","elements":[{"x":1,"y":2}]}]}`)
	assert.Equal(t, plot.Horizontal, m.Orientation)
	assert.Equal(t, "Y", m.XAxis.Label)
	assert.Equal(t, "X", m.YAxis.Label)
	e := m.Data[0].Elements[0]
	assert.Equal(t, 2.0, float(t, e.X))
	assert.Equal(t, 1.0, float(t, e.Y))
	assert.Equal(t, 2.0, float(t, e.RawX))
	assert.Equal(t, 1.0, float(t, e.RawY))
}

func TestCategoryGridlines(t *testing.T) {
	m := standardize(t, `{"type":"CategoryPlot","data":[]}`)
	assert.False(t, m.ShowXGridlines)
	m = standardize(t, `{"type":"CategoryPlot","orientation":"HORIZONTAL","data":[]}`)
	assert.True(t, m.ShowXGridlines)
}

func TestLogAxis(t *testing.T) {
	m := standardize(t, `{"yAxis":{"type":"log","base":10},"focus":{"yr":1000},
		"data":[{"elements":[{"x":1,"y":10},{"x":2,"y":100}]}]}`)
	assert.Equal(t, axis.Log, m.YAxis.Type)
	e := m.Data[0].Elements[1]
	assert.InDelta(t, 2.0, float(t, e.Y), 1e-12)
	assert.Equal(t, 100.0, float(t, e.RawY))
	assert.InDelta(t, 3.0, float(t, m.UserFocus.YR), 1e-12)

	// the low end is clamped to the data minus the left margin
	assert.InDelta(t, 1-0.05, float(t, m.VRange.YL), 1e-12)
	assert.InDelta(t, 12.0, float(t, m.VRange.YR), 1e-9)
}

func TestSorting(t *testing.T) {
	m := standardize(t, `{"data":[
		{"type":"point","elements":[{"x":3,"y":0},{"x":1,"y":1},{"x":2,"y":2}]},
		{"type":"line","elements":[{"x":3,"y":0},{"x":1,"y":1},{"x":2,"y":2}]}]}`)
	pts := m.Data[0]
	assert.False(t, pts.Unordered)
	for i, x := range []float64{1, 2, 3} {
		assert.Equal(t, x, float(t, pts.Elements[i].X))
		assert.Equal(t, i, pts.Elements[i].Index)
	}
	line := m.Data[1]
	assert.True(t, line.Unordered)
	assert.Equal(t, 3.0, float(t, line.Elements[0].X))
}

func TestFocusWidensVisibleRange(t *testing.T) {
	m := standardize(t, `{"focus":{"xl":-500,"xr":500,"yl":0},
		"data":[{"elements":[{"x":0,"y":0},{"x":10,"y":5}]}]}`)
	assert.Equal(t, -500.0, float(t, m.VRange.XL))
	assert.Equal(t, 500.0, float(t, m.VRange.XR))
	assert.Equal(t, 1000.0, float(t, m.VRange.XSpan))
	// a focus inside the headroom changes nothing
	assert.Equal(t, -50.0, float(t, m.VRange.YL))
	assert.True(t, m.UserFocus.YL.IsZero())
}

func TestDegenerateRange(t *testing.T) {
	m := standardize(t, `{"data":[{"elements":[{"x":5,"y":0}]}]}`)
	assert.Equal(t, -5.5, float(t, m.VRange.XL))
	assert.Equal(t, 15.5, float(t, m.VRange.XR))
	assert.Equal(t, -21.0, float(t, m.VRange.YL))
	assert.Equal(t, 21.0, float(t, m.VRange.YR))
}

func TestIncludeZero(t *testing.T) {
	const data = `"data":[{"elements":[{"x":0,"y":5},{"x":1,"y":10}]}]`
	m := standardize(t, `{`+data+`}`)
	assert.Equal(t, -45.0, float(t, m.VRange.YL))

	m = standardize(t, `{"yIncludeZero":true,`+data+`}`)
	assert.Equal(t, -100.0, float(t, m.VRange.YL))
	assert.Equal(t, 110.0, float(t, m.VRange.YR))

	m = standardize(t, `{"yPreventNegative":true,`+data+`}`)
	assert.Equal(t, 0.0, float(t, m.VRange.YL))
}

func TestAxisMargins(t *testing.T) {
	m := standardize(t, `{"yAxis":{"lowerMargin":0.5,"upperMargin":1},
		"data":[{"elements":[{"x":0,"y":0},{"x":1,"y":10}]}]}`)
	// [0,10] grows to [-5,20] before the headroom is added
	assert.Equal(t, -255.0, float(t, m.VRange.YL))
	assert.Equal(t, 270.0, float(t, m.VRange.YR))
}

func TestRightAxis(t *testing.T) {
	m := standardize(t, `{"yAxisR":{"label":"R"},"data":[
		{"elements":[{"x":0,"y":0},{"x":1,"y":1}]},
		{"yAxis":{"label":"R"},"elements":[{"x":0,"y":100},{"x":1,"y":200}]}]}`)
	assert.False(t, m.Data[0].UseYAxisR)
	assert.True(t, m.Data[1].UseYAxisR)
	require.NotNil(t, m.VRangeR)
	assert.Equal(t, -900.0, float(t, m.VRangeR.YL))
	assert.Equal(t, 1200.0, float(t, m.VRangeR.YR))
	assert.Equal(t, -10.0, float(t, m.VRange.YL))
}

func TestCursor(t *testing.T) {
	m := standardize(t, `{"xCursor":{"style":"dash"},"data":[]}`)
	require.NotNil(t, m.XCursor)
	assert.Equal(t, "black", m.XCursor.Color)
	assert.Equal(t, 1.0, m.XCursor.Width)
	assert.Equal(t, "9,5", m.XCursor.DashArray)
	assert.Nil(t, m.YCursor)
}

func TestLegacyPlot(t *testing.T) {
	m := standardize(t, `{"type":"TimePlot","chart_title":"T","domain_axis_label":"time",
		"init_width":800,"show_legend":false,
		"rangeAxes":[{"label":"Y","lower_margin":0,"upper_margin":0}],
		"graphics_list":[{"type":"Line","display_name":"l","x":[1,2],"y":[3,4],"color":"#80FF0000","style":"DASH"}],
		"constant_lines":[{"y":[3.5],"color":"#FF00FF00"}]}`)
	assert.Equal(t, Complete, m.Version)
	assert.Equal(t, "T", m.Title)
	assert.Equal(t, axis.Time, m.XAxis.Type)
	assert.Equal(t, "time", m.XAxis.Label)
	assert.Equal(t, "Y", m.YAxis.Label)
	assert.Equal(t, 800.0, m.Width)
	assert.Equal(t, 350.0, m.Height)
	assert.False(t, m.ShowLegend)

	require.Len(t, m.Data, 2)
	l := m.Data[0]
	assert.Equal(t, "l", l.Legend)
	assert.Equal(t, "#FF0000", l.Color)
	assert.InDelta(t, 128.0/255, l.ColorOpacity, 1e-9)
	assert.Equal(t, "9,5", l.DashArray)
	require.Len(t, l.Elements, 2)

	c := m.Data[1]
	assert.Equal(t, plot.ConstLine, c.Type)
	assert.Equal(t, "#00FF00", c.Color)
	assert.Equal(t, 0.0, c.ColorOpacity)
	assert.Equal(t, 3.5, float(t, c.Elements[0].Y))
}

func TestLegacyBounds(t *testing.T) {
	m := standardize(t, `{"x_auto_range":false,"x_lower_bound":-1,"x_upper_bound":1,"x_lower_margin":0.3,
		"rangeAxes":[{"auto_range":false,"lower_bound":2,"upper_bound":3},{"label":"R","use_log":true,"log_base":2}],
		"graphics_list":[{"type":"Points","x":[0],"y":[2.5],"shape":"DIAMOND"}]}`)
	assert.Equal(t, -1.0, float(t, m.UserFocus.XL))
	assert.Equal(t, 1.0, float(t, m.UserFocus.XR))
	assert.Equal(t, 2.0, float(t, m.UserFocus.YL))
	assert.Equal(t, 3.0, float(t, m.UserFocus.YR))
	assert.Equal(t, 0.05, m.Margin.Left)
	require.NotNil(t, m.YAxisR)
	assert.Equal(t, axis.Log, m.YAxisR.Type)
	assert.Equal(t, 2.0, m.YAxisR.Base)
	assert.Equal(t, "diamond", m.Data[0].Shape)
	assert.Equal(t, 5.0, m.Data[0].Size)
}

func TestHeatMap(t *testing.T) {
	m := standardize(t, `{"type":"HeatMap","graphics_list":[[1,2],[3,4]],"color":["#FF0000FF","#FFFF0000"]}`)
	require.Len(t, m.Data, 1)
	h := m.Data[0]
	assert.Equal(t, plot.HeatMap, h.Type)
	assert.Len(t, h.Elements, 4)
	assert.Equal(t, 1.0, h.MinValue)
	assert.Equal(t, 4.0, h.MaxValue)
	assert.Equal(t, []string{"#0000FF", "#FF0000"}, h.Colors)
	assert.Equal(t, "true", h.Legend)
	assert.Equal(t, axis.Linear, m.XAxis.Type)
	assert.Equal(t, 0.0, m.Margin.Top)
	assert.Equal(t, 0.0, m.Margin.Bottom)

	e := h.Elements[3]
	assert.Equal(t, 0.5, float(t, e.X))
	assert.Equal(t, 1.5, float(t, e.X2))
	assert.Equal(t, 0.5, float(t, e.Y))
	assert.Equal(t, 1.5, float(t, e.Y2))
	assert.Equal(t, 4.0, e.Value)

	m = standardize(t, `{"type":"HeatMap","graphics_list":[[1,"NaN"],[3,4]],"color":[]}`)
	assert.Len(t, m.Data[0].Elements, 3)
}

func TestPointsLimit(t *testing.T) {
	xs := make([]float64, 20)
	for i := range xs {
		xs[i] = float64(i)
	}
	g, err := json.Marshal(map[string]any{
		"graphics_list": []any{map[string]any{"type": "Points", "x": xs, "y": xs}},
	})
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.OutputPointsLimit, opts.OutputPointsPreview = 10, 5
	m, err := Standardize(g, opts)
	require.NoError(t, err)
	assert.Len(t, m.Data[0].Elements, 5)
	assert.Equal(t, &PointsLimit{Points: 20, Limit: 10, Preview: 5}, m.PointsLimit)

	m, err = Standardize(g, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, m.Data[0].Elements, 20)
	assert.Nil(t, m.PointsLimit)
}

func TestBins(t *testing.T) {
	vals := []float64{1, 2, 2, 3, 3, 3, 4}
	ys := func(bins []Bin) []float64 {
		var r []float64
		for _, b := range bins {
			r = append(r, b.Y)
		}
		return r
	}
	assert.Equal(t, []float64{1, 2, 4}, ys(Bins(vals, BinOptions{Count: 3})))
	assert.Equal(t, []float64{1, 3, 7}, ys(Bins(vals, BinOptions{Count: 3, Cumulative: true})))
	assert.Equal(t, []float64{1, 2, 3, 1}, ys(Bins(vals, BinOptions{Count: 3, RightClose: true})))
	assert.Len(t, Bins(vals, BinOptions{}), 4)
	assert.Equal(t, []float64{2, 4}, ys(Bins(vals, BinOptions{Count: 2, Min: num.Float(2)})))

	normed := Bins(vals, BinOptions{Count: 3, Normed: true})
	assert.InDelta(t, 4.0/7, normed[2].Y, 1e-12)
	assert.Nil(t, Bins(nil, BinOptions{}))
}

func TestHistogram(t *testing.T) {
	m := standardize(t, `{"type":"Histogram","graphics_list":[[1,2,3],[2,3,4]],"bin_count":2,
		"displayMode":"STACK","names":["a","b"]}`)
	require.Len(t, m.Data, 2)
	a, b := m.Data[0], m.Data[1]
	assert.Equal(t, "a", a.Legend)
	assert.Equal(t, plot.Bar, b.Type)
	require.Len(t, a.Elements, 2)
	assert.Equal(t, 1.0, float(t, a.Elements[0].X))
	assert.Equal(t, 2.5, float(t, a.Elements[0].X2))
	assert.Equal(t, 0.0, float(t, a.Elements[0].Y))
	assert.Equal(t, 2.0, float(t, a.Elements[0].Y2))
	assert.Equal(t, 2.0, float(t, b.Elements[0].Y))
	assert.Equal(t, 3.0, float(t, b.Elements[0].Y2))
	assert.Equal(t, 1.0, float(t, b.Elements[1].Y))
	assert.Equal(t, 3.0, float(t, b.Elements[1].Y2))
}

func TestCombined(t *testing.T) {
	raw := []byte(`{"type":"CombinedPlot","plot_title":"C","x_label":"x","init_width":500,"init_height":300,
		"weights":[2,1],"plots":[
			{"data":[{"elements":[{"x":1,"y":1}]}]},
			{"graphics_list":[{"type":"Line","x":[1,2],"y":[1,2]}]}]}`)
	assert.True(t, IsCombined(raw))
	_, err := Standardize(raw, DefaultOptions())
	assert.True(t, errors.Is(err, ErrCombined))

	c, err := DecodeCombined(raw)
	require.NoError(t, err)
	assert.Equal(t, []float64{200, 100}, c.Heights())

	top, err := c.Child(0, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "C", top.Title)
	assert.Equal(t, 500.0, top.Width)
	assert.Equal(t, 200.0, top.Height)
	assert.Equal(t, "", top.XAxis.Label)

	bottom, err := c.Child(1, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "x", bottom.XAxis.Label)
	assert.Equal(t, Complete, bottom.Version)

	_, err = c.Child(2, DefaultOptions())
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	m := standardize(t, `{"title":"t","elementStyles":{".a":"fill: red"},
		"data":[{"elements":[{"x":1,"y":2}]}]}`)
	c, err := m.Clone()
	require.NoError(t, err)
	assert.Equal(t, m.Title, c.Title)
	assert.Equal(t, m.ElementStyles, c.ElementStyles)
	require.Len(t, c.Data, 1)
	assert.NotSame(t, m.Data[0], c.Data[0])
	assert.True(t, c.Data[0].Elements[0].X.Equal(m.Data[0].Elements[0].X))

	c.Data[0].Elements[0].X = num.Float(99)
	c.Title = "changed"
	assert.Equal(t, 1.0, float(t, m.Data[0].Elements[0].X))
	assert.Equal(t, "t", m.Title)
}
