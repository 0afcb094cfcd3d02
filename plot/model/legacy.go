// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/colors"
	"cogentcore.org/plotscope/plot/num"
	"cogentcore.org/plotscope/plot/plots"
	"github.com/segmentio/encoding/json"
)

// Plot types of the legacy dialect.
const (
	XYPlot       = "Plot"
	TimePlot     = "TimePlot"
	NanoPlot     = "NanoPlot"
	CategoryPlot = "CategoryPlot"
	HeatMap      = "HeatMap"
	Histogram    = "Histogram"
	CombinedPlot = "CombinedPlot"
)

// ErrCombined is returned when a combined plot payload is standardized
// as a single plot.
var ErrCombined = errors.New("model: combined plot payload")

// LegacyAxis is one of the range axes of a legacy payload.
type LegacyAxis struct {
	Label       string    `json:"label"`
	LowerMargin *float64  `json:"lower_margin"`
	UpperMargin *float64  `json:"upper_margin"`
	AutoRange   *bool     `json:"auto_range"`
	LowerBound  num.Value `json:"lower_bound"`
	UpperBound  num.Value `json:"upper_bound"`
	UseLog      bool      `json:"use_log"`
	LogBase     float64   `json:"log_base"`
}

// Graphic is one entry of a legacy graphics_list. Per element fields
// are lists parallel to X and Y; the scalar fields apply to the whole
// graphic.
type Graphic struct {
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	YAxis       string `json:"yAxis"`
	Visible     *bool  `json:"visible"`

	X    []num.Value `json:"x"`
	Y    []num.Value `json:"y"`
	Base num.Value   `json:"base"`

	Bases  []num.Value `json:"bases"`
	Widths []float64   `json:"widths"`
	Sizes  []float64   `json:"sizes"`
	Shapes []string    `json:"shapes"`
	Colors []string    `json:"colors"`
	Texts  []string    `json:"texts"`

	Outlines      []string `json:"outline_colors"`
	ToolTips      []string `json:"tooltips"`
	Interpolation *int     `json:"interpolation"`

	Color        string   `json:"color"`
	OutlineColor string   `json:"outline_color"`
	Width        *float64 `json:"width"`
	Size         *float64 `json:"size"`
	Shape        string   `json:"shape"`
	Style        string   `json:"style"`
	ShowLabel    bool     `json:"showLabel"`
	Text         string   `json:"text"`
	LODFilter    string   `json:"lod_filter"`

	// Value holds category values, one row per series, or the data
	// URLs of rasters.
	Value       json.RawMessage `json:"value"`
	SeriesNames []string        `json:"seriesNames"`

	// Rasters.
	Heights  []float64 `json:"height"`
	Opacity  []float64 `json:"opacity"`
	FileURL  string    `json:"fileUrl"`
	DataURLs []string  `json:"dataString"`
}

// LegacyPayload is a plot description in the legacy dialect.
type LegacyPayload struct {
	Type    string `json:"type"`
	Version string `json:"version"`

	ChartTitle string `json:"chart_title"`
	Title      string `json:"title"`

	ShowLegend     *bool          `json:"show_legend"`
	LegendPosition LegendPosition `json:"legend_position"`
	LegendLayout   string         `json:"legend_layout"`
	UseToolTip     *bool          `json:"use_tool_tip"`
	OmitCheckboxes bool           `json:"omit_checkboxes"`
	InitWidth      float64        `json:"init_width"`
	InitHeight     float64        `json:"init_height"`
	CustomStyles   Strings        `json:"custom_styles"`

	ElementStyles map[string]string `json:"element_styles"`

	DomainAxisLabel string       `json:"domain_axis_label"`
	YLabel          string       `json:"y_label"`
	RangeAxes       []LegacyAxis `json:"rangeAxes"`

	XAutoRange   *bool     `json:"x_auto_range"`
	XLowerBound  num.Value `json:"x_lower_bound"`
	XUpperBound  num.Value `json:"x_upper_bound"`
	XLowerMargin *float64  `json:"x_lower_margin"`
	XUpperMargin *float64  `json:"x_upper_margin"`
	LogX         bool      `json:"log_x"`
	XLogBase     float64   `json:"x_log_base"`

	Timezone       string   `json:"timezone"`
	Orientation    string   `json:"orientation"`
	CategoryNames  []string `json:"categoryNames"`
	CategoryMargin *float64 `json:"category_margin"`

	GraphicsList  json.RawMessage `json:"graphics_list"`
	ConstantLines []Graphic       `json:"constant_lines"`
	ConstantBands []Graphic       `json:"constant_bands"`
	Texts         []Graphic       `json:"texts"`

	// Heatmap palette.
	Color []string `json:"color"`

	// Histogram series colors.
	Colors []string `json:"colors"`
	Log    bool     `json:"log"`

	// Histograms.
	BinCount    int       `json:"bin_count"`
	RangeMin    num.Value `json:"range_min"`
	RangeMax    num.Value `json:"range_max"`
	RightClose  bool      `json:"right_close"`
	Normed      bool      `json:"normed"`
	Cumulative  bool      `json:"cumulative"`
	DisplayMode string    `json:"displayMode"`
	Names       []string  `json:"names"`

	Tips         []string `json:"tips"`
	LODThreshold int      `json:"lodThreshold"`
}

// Payload converts the legacy payload into the direct dialect.
func (l *LegacyPayload) Payload(opts Options) (*Payload, error) {
	p := l.mapFields()
	switch l.Type {
	case HeatMap:
		var grid [][]num.Value
		if err := json.Unmarshal(l.GraphicsList, &grid); err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		l.convertHeatMap(p, grid)
		return p, nil
	case Histogram:
		var data [][]float64
		if err := json.Unmarshal(l.GraphicsList, &data); err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		l.convertHistogram(p, data)
		return p, nil
	}
	var gl []Graphic
	if err := json.Unmarshal(l.GraphicsList, &gl); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	limitPoints(p, gl, opts)
	for i := range gl {
		p.Data = append(p.Data, l.convertGraphic(&gl[i])...)
	}
	for i := range l.ConstantLines {
		l.ConstantLines[i].Type = "ConstantLine"
		p.Data = append(p.Data, l.convertGraphic(&l.ConstantLines[i])...)
	}
	for i := range l.ConstantBands {
		l.ConstantBands[i].Type = "ConstantBand"
		p.Data = append(p.Data, l.convertGraphic(&l.ConstantBands[i])...)
	}
	for i := range l.Texts {
		l.Texts[i].Type = "Text"
		p.Data = append(p.Data, l.convertGraphic(&l.Texts[i])...)
	}
	return p, nil
}

// mapFields maps the plot level fields shared by all legacy plots.
func (l *LegacyPayload) mapFields() *Payload {
	p := &Payload{
		Format:         string(Legacy),
		Type:           l.Type,
		Title:          l.ChartTitle,
		ShowLegend:     l.ShowLegend,
		LegendPosition: l.LegendPosition,
		LegendLayout:   l.LegendLayout,
		OmitCheckboxes: l.OmitCheckboxes,
		Width:          l.InitWidth,
		Height:         l.InitHeight,
		CustomStyles:   l.CustomStyles,
		ElementStyles:  l.ElementStyles,
		Timezone:       l.Timezone,
		Orientation:    l.Orientation,
		CategoryNames:  l.CategoryNames,
		DisplayMode:    l.DisplayMode,
		Tips:           l.Tips,
		LODThreshold:   l.LODThreshold,
	}
	if p.Title == "" {
		p.Title = l.Title
	}
	if l.UseToolTip != nil {
		p.UseToolTip = *l.UseToolTip
	}
	p.XAxis.Label = l.DomainAxisLabel
	switch l.Type {
	case TimePlot:
		p.XAxis.Type = "time"
	case NanoPlot:
		p.XAxis.Type = "nanotime"
	case CategoryPlot:
		p.XAxis.Type = "category"
	}
	if l.LogX {
		p.XAxis.Type = "log"
		p.XAxis.Base = l.XLogBase
	}
	if l.XAutoRange != nil && !*l.XAutoRange {
		p.Focus.XL, p.Focus.XR = l.XLowerBound, l.XUpperBound
	} else {
		p.Margin.Left, p.Margin.Right = l.XLowerMargin, l.XUpperMargin
	}

	p.YAxis.Label = l.YLabel
	if len(l.RangeAxes) > 0 {
		a := &l.RangeAxes[0]
		p.YAxis.LowerMargin, p.YAxis.UpperMargin = a.LowerMargin, a.UpperMargin
		if a.UseLog {
			p.YAxis.Type, p.YAxis.Base = "log", a.LogBase
		}
		if a.AutoRange != nil && !*a.AutoRange {
			p.Focus.YL, p.Focus.YR = a.LowerBound, a.UpperBound
		}
		if p.YAxis.Label == "" {
			p.YAxis.Label = a.Label
		}
	}
	if len(l.RangeAxes) > 1 {
		a := &l.RangeAxes[1]
		p.YAxisR = &RawAxis{Label: a.Label, LowerMargin: a.LowerMargin, UpperMargin: a.UpperMargin}
		if a.UseLog {
			p.YAxisR.Type, p.YAxisR.Base = "log", a.LogBase
		}
		if a.AutoRange != nil && !*a.AutoRange {
			p.Focus.YLR, p.Focus.YRR = a.LowerBound, a.UpperBound
		}
	}
	return p
}

// limitPoints truncates graphics larger than the output points limit
// to the preview size and records the truncation.
func limitPoints(p *Payload, gl []Graphic, opts Options) {
	if opts.OutputPointsLimit <= 0 {
		return
	}
	largest := 0
	for i := range gl {
		largest = max(largest, len(gl[i].X), len(gl[i].Y))
	}
	if largest <= opts.OutputPointsLimit {
		return
	}
	slog.Warn("plot data truncated", "points", largest, "limit", opts.OutputPointsLimit, "preview", opts.OutputPointsPreview)
	p.pointsLimit = &PointsLimit{Points: largest, Limit: opts.OutputPointsLimit, Preview: opts.OutputPointsPreview}
	n := opts.OutputPointsPreview
	for i := range gl {
		g := &gl[i]
		g.X = truncate(g.X, n)
		g.Y = truncate(g.Y, n)
		g.Bases = truncate(g.Bases, n)
		g.Widths = truncate(g.Widths, n)
		g.Sizes = truncate(g.Sizes, n)
		g.Shapes = truncate(g.Shapes, n)
		g.Colors = truncate(g.Colors, n)
		g.Texts = truncate(g.Texts, n)
		g.Outlines = truncate(g.Outlines, n)
		g.ToolTips = truncate(g.ToolTips, n)
	}
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// legacyTypes maps legacy graphic types to item types.
var legacyTypes = map[string]string{
	"Line":         "line",
	"Points":       "point",
	"Bars":         "bar",
	"Stems":        "stem",
	"Area":         "area",
	"Text":         "text",
	"ConstantLine": "constline",
	"ConstantBand": "constband",
	"Rasters":      "raster",

	"CategoryLines":  "line",
	"CategoryPoints": "point",
	"CategoryBars":   "bar",
	"CategoryStems":  "stem",
	"CategoryArea":   "area",
}

var legacyShapes = map[string]string{
	"SQUARE":       plots.Rect,
	"CIRCLE":       plots.Circle,
	"DIAMOND":      plots.Diamond,
	"TRIANGLE":     plots.Triangle,
	"DOWNTRIANGLE": plots.DownTriangle,
	"LEVEL":        plots.Level,
	"VLEVEL":       plots.VLevel,
	"CROSS":        plots.Cross,
	"DCROSS":       plots.DCross,
	"LINECROSS":    plots.LineCross,
}

func legacyShape(s string) string {
	if sh, ok := legacyShapes[strings.ToUpper(s)]; ok {
		return sh
	}
	return strings.ToLower(s)
}

// legacyColor splits a #AARRGGBB color, returning no opacity for
// fully opaque colors.
func legacyColor(c string) (string, *float64) {
	if !strings.HasPrefix(c, "#") {
		return c, nil
	}
	hex, op, err := colors.SplitARGB(c)
	if errors.Log(err) != nil {
		return c, nil
	}
	if op >= 1 {
		return hex, nil
	}
	return hex, &op
}

func at[T any](s []T, i int) (T, bool) {
	if i < len(s) {
		return s[i], true
	}
	var z T
	return z, false
}

// convertGraphic returns the items drawing a legacy graphic. Category
// graphics give one item per series; unknown graphics are logged and
// give none.
func (l *LegacyPayload) convertGraphic(g *Graphic) []RawItem {
	typ, ok := legacyTypes[g.Type]
	if !ok {
		slog.Error("skipping unknown graphic", "type", g.Type)
		return nil
	}
	if strings.HasPrefix(g.Type, "Category") {
		return l.convertCategory(g, typ)
	}
	it := baseItem(g, typ)
	switch typ {
	case "constline":
		it.Elements = constElements(g, false)
	case "constband":
		it.Elements = constElements(g, true)
	case "raster":
		it.Elements, it.Image = rasterElements(g)
		if op, ok := at(g.Opacity, 0); ok {
			it.Opacity = op
		}
	default:
		it.Elements = make([]RawElement, 0, len(g.X))
		for i := range g.X {
			it.Elements = append(it.Elements, graphicElement(g, typ, i, g.X[i], pick(g.Y, i)))
		}
	}
	return []RawItem{it}
}

func pick(vs []num.Value, i int) num.Value {
	v, _ := at(vs, i)
	return v
}

func baseItem(g *Graphic, typ string) RawItem {
	it := RawItem{
		Type:      typ,
		Legend:    g.DisplayName,
		YAxis:     AxisRef(g.YAxis),
		Visible:   g.Visible,
		Width:     g.Width,
		Size:      g.Size,
		Base:      g.Base,
		ShowLabel: g.ShowLabel,
		Style:     strings.ToLower(g.Style),
		Shape:     legacyShape(g.Shape),
	}
	if g.LODFilter != "" {
		it.LODType = strings.ToLower(g.LODFilter)
	}
	it.Color, it.ColorOpacity = legacyColor(g.Color)
	it.OutlineColor, it.OutlineOpacity = legacyColor(g.OutlineColor)
	if g.Interpolation != nil {
		switch *g.Interpolation {
		case 0:
			it.Interpolation = "none"
		default:
			it.Interpolation = "linear"
		}
	}
	return it
}

// graphicElement builds element i of a graphic from the parallel lists.
func graphicElement(g *Graphic, typ string, i int, x, y num.Value) RawElement {
	e := RawElement{X: x, Y: y}
	if b, ok := at(g.Bases, i); ok {
		e.Y2 = b
	}
	if w, ok := at(g.Widths, i); ok && typ == "bar" {
		e.X = x.SubFloat(w / 2)
		e.X2 = x.AddFloat(w / 2)
	}
	if s, ok := at(g.Sizes, i); ok {
		e.Size = &s
	}
	if s, ok := at(g.Shapes, i); ok {
		e.Shape = legacyShape(s)
	}
	if c, ok := at(g.Colors, i); ok {
		e.Color, e.ColorOpacity = legacyColor(c)
	}
	if c, ok := at(g.Outlines, i); ok {
		e.OutlineColor, e.OutlineOpacity = legacyColor(c)
	}
	if t, ok := at(g.ToolTips, i); ok {
		e.ToolTip = t
	}
	switch {
	case typ != "text":
	case i < len(g.Texts):
		e.Text = g.Texts[i]
	default:
		e.Text = g.Text
	}
	return e
}

// constElements returns the element of a constant line or band, which
// spans x when the graphic gives x values and y otherwise.
func constElements(g *Graphic, band bool) []RawElement {
	vals, onX := g.Y, false
	if len(g.X) > 0 {
		vals, onX = g.X, true
	}
	if len(vals) == 0 {
		return nil
	}
	v1, v2 := vals[0], num.None
	if band && len(vals) > 1 {
		v2 = vals[1]
	}
	if onX {
		return []RawElement{{X: v1, X2: v2}}
	}
	return []RawElement{{Y: v1, Y2: v2}}
}

// rasterElements returns one element per raster rectangle and the
// image drawn in them.
func rasterElements(g *Graphic) ([]RawElement, string) {
	img := g.FileURL
	if s, ok := at(g.DataURLs, 0); ok && img == "" {
		img = s
	}
	els := make([]RawElement, 0, len(g.X))
	for i := range g.X {
		w, _ := at(g.Widths, i)
		h, _ := at(g.Heights, i)
		y := pick(g.Y, i)
		els = append(els, RawElement{X: g.X[i], X2: g.X[i].AddFloat(w), Y: y.SubFloat(h), Y2: y})
	}
	return els, img
}

// convertCategory returns one item per row of a category graphic.
// Bars of the rows in a category are placed side by side within the
// category margin.
func (l *LegacyPayload) convertCategory(g *Graphic, typ string) []RawItem {
	var rows [][]num.Value
	if err := json.Unmarshal(g.Value, &rows); err != nil {
		slog.Error("skipping category graphic", "type", g.Type, "err", err)
		return nil
	}
	margin := 0.2
	if l.CategoryMargin != nil {
		margin = *l.CategoryMargin
	}
	n := float64(len(rows))
	bw := (1 - margin) / max(n, 1)
	items := make([]RawItem, 0, len(rows))
	for r, row := range rows {
		it := baseItem(g, typ)
		if name, ok := at(g.SeriesNames, r); ok {
			it.Legend = name
		} else if it.Legend == "" {
			it.Legend = fmt.Sprintf("series%d", r)
		}
		if c, ok := at(g.Colors, r); ok {
			it.Color, it.ColorOpacity = legacyColor(c)
		}
		for j, v := range row {
			x := num.Float(float64(j))
			e := RawElement{X: x, Y: v}
			if typ == "bar" {
				left := float64(j) - (1-margin)/2 + float64(r)*bw
				e.X, e.X2 = num.Float(left), num.Float(left+bw)
			}
			if b, ok := at(g.Bases, j); ok {
				e.Y2 = b
			}
			it.Elements = append(it.Elements, e)
		}
		items = append(items, it)
	}
	return items
}

// convertHeatMap replaces the items of p with one heatmap item holding
// a unit cell per grid value. NaN cells are skipped.
func (l *LegacyPayload) convertHeatMap(p *Payload, grid [][]num.Value) {
	zero := 0.0
	p.Margin.Top, p.Margin.Bottom = &zero, &zero
	if l.XAutoRange != nil && !*l.XAutoRange {
		p.Margin.Left, p.Margin.Right = nil, nil
	}
	p.XAxis.Type, p.YAxis.Type = "linear", "linear"

	it := RawItem{Type: "heatmap", Legend: "true"}
	first := true
	for r, row := range grid {
		for c, v := range row {
			if v.IsNone() || v.IsNaN() {
				continue
			}
			f := v.Float64()
			if first {
				it.MinValue, it.MaxValue, first = f, f, false
			}
			it.MinValue = min(it.MinValue, f)
			it.MaxValue = max(it.MaxValue, f)
			it.Elements = append(it.Elements, RawElement{
				X: num.Float(float64(c) - 0.5), X2: num.Float(float64(c) + 0.5),
				Y: num.Float(float64(r) - 0.5), Y2: num.Float(float64(r) + 0.5),
				Value: &f,
			})
		}
	}
	for _, c := range l.Color {
		it.Colors = append(it.Colors, heatmapColor(c))
	}
	p.Data = []RawItem{it}
}

// heatmapColor drops the alpha of a #AARRGGBB palette color.
func heatmapColor(c string) string {
	if len(c) == 9 {
		return "#" + c[3:]
	}
	return c
}
