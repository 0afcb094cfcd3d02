// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"log/slog"
	"math"
	"slices"
	"strconv"
	"time"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/axis"
	"cogentcore.org/plotscope/plot/num"
	"cogentcore.org/plotscope/plot/plots"
	"github.com/segmentio/encoding/json"
)

// Default item geometry.
const (
	DefaultLineWidth = 2
	DefaultBarWidth  = 1
)

// dashArrays are the SVG dash arrays of the line styles.
var dashArrays = map[string]string{
	"solid":    "",
	"dash":     "9,5",
	"dot":      "2,2",
	"dashdot":  "9,5,2,5",
	"longdash": "20,5",
}

// DashArray returns the SVG dash array of a line style.
func DashArray(style string) string { return dashArrays[style] }

// Standardize decodes a payload of any dialect and returns the complete
// model. Complete payloads are decoded without further processing.
// Combined plot payloads are rejected with [ErrCombined]; use
// [StandardizeCombined] for them.
func Standardize(raw []byte, opts Options) (*Model, error) {
	d, err := Dialect(raw)
	if err != nil {
		return nil, err
	}
	if d != Complete && IsCombined(raw) {
		return nil, ErrCombined
	}
	switch d {
	case Complete:
		m := &Model{}
		if err := json.Unmarshal(raw, m); err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		return m, nil
	case Legacy:
		l := &LegacyPayload{}
		if err := json.Unmarshal(raw, l); err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		p, err := l.Payload(opts)
		if err != nil {
			return nil, err
		}
		return p.Standardize(opts)
	}
	p := &Payload{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	return p.Standardize(opts)
}

// Standardize returns the complete model of the payload: defaults are
// filled in, items are formatted and created, and the visible ranges
// are computed.
func (p *Payload) Standardize(opts Options) (*Model, error) {
	if p.Version == string(Complete) {
		return nil, errors.New("model: payload is already complete; decode it as a Model")
	}
	m := p.newModel(opts)
	p.formatItems(m)
	return StandardizeModel(m, opts)
}

// StandardizeModel completes a model whose items are already
// formatted. A complete model is returned unchanged.
func StandardizeModel(m *Model, opts Options) (*Model, error) {
	if m.Version == Complete {
		return m, nil
	}
	if m.LODThreshold <= 0 {
		m.LODThreshold = opts.LODThreshold
	}
	if m.LODThreshold <= 0 {
		m.LODThreshold = plots.DefaultLODThreshold
	}
	m.sortItems()
	if err := m.createItems(); err != nil {
		return nil, err
	}
	left, right := m.axisItems()
	m.calculateYRanges(left, right)
	m.remap()
	m.Version = Complete
	return m, nil
}

// newModel maps the payload fields onto a model, filling defaults.
func (p *Payload) newModel(opts Options) *Model {
	m := &Model{
		Version:          Versions(p.Format),
		Type:             p.Type,
		Title:            p.Title,
		Orientation:      plot.ParseOrientation(p.Orientation),
		LODThreshold:     p.LODThreshold,
		LegendPosition:   string(p.LegendPosition),
		LegendLayout:     p.LegendLayout,
		UseToolTip:       p.UseToolTip,
		OmitCheckboxes:   p.OmitCheckboxes,
		Width:            p.Width,
		Height:           p.Height,
		Timezone:         p.Timezone,
		CategoryNames:    p.CategoryNames,
		DisplayMode:      p.DisplayMode,
		YIncludeZero:     p.YIncludeZero,
		YRIncludeZero:    p.YRIncludeZero,
		YPreventNegative: p.YPreventNegative,
		XCursor:          p.XCursor,
		YCursor:          p.YCursor,
		CustomStyles:     p.CustomStyles,
		ElementStyles:    p.ElementStyles,
		Tips:             p.Tips,
		UserFocus:        p.Focus,
		PointsLimit:      p.pointsLimit,
	}
	if m.Version == "" {
		m.Version = Direct
	}
	if m.Type == "" {
		m.Type = "Plot"
	}
	if m.LODThreshold <= 0 {
		m.LODThreshold = opts.LODThreshold
	}
	if m.LegendPosition == "" {
		m.LegendPosition = DefaultLegendPosition
	}
	if m.LegendLayout == "" {
		m.LegendLayout = DefaultLegendLayout
	}
	if m.DisplayMode == "" {
		m.DisplayMode = DefaultDisplayMode
	}
	if m.Width <= 0 {
		m.Width = opts.Width
	}
	if m.Width <= 0 {
		m.Width = DefaultWidth
	}
	if m.Height <= 0 {
		m.Height = opts.Height
	}
	if m.Height <= 0 {
		m.Height = DefaultHeight
	}
	if m.Timezone == "" {
		m.Timezone = opts.Timezone
	}
	m.ShowXGridlines = !(m.Orientation != plot.Horizontal && m.Type == CategoryPlot)
	if p.ShowLegend != nil {
		m.ShowLegend = *p.ShowLegend
		m.legendSet = true
	}
	p.Margin.set(&m.Margin)

	m.XAxis = axisSpec(&p.XAxis)
	m.YAxis = axisSpec(&p.YAxis)
	if p.YAxisR != nil {
		r := axisSpec(p.YAxisR)
		m.YAxisR = &r
	}
	if m.Orientation == plot.Horizontal {
		m.XAxis, m.YAxis = m.YAxis, m.XAxis
	}

	switch {
	case p.VRange != nil:
		vr := *p.VRange
		m.VRange = &vr
	case p.Range != nil:
		vr := *p.Range
		m.VRange = &vr
	}
	formatCursor(m.XCursor)
	formatCursor(m.YCursor)
	m.logFocus()
	return m
}

func axisSpec(r *RawAxis) AxisSpec {
	t, err := axis.ParseType(r.Type)
	if err != nil {
		slog.Error(err.Error())
	}
	a := AxisSpec{Type: t, Label: r.Label, Base: r.Base}
	if r.LowerMargin != nil {
		a.LowerMargin = *r.LowerMargin
	}
	if r.UpperMargin != nil {
		a.UpperMargin = *r.UpperMargin
	}
	return a
}

func formatCursor(c *plot.Cursor) {
	if c == nil {
		return
	}
	if c.Color == "" {
		c.Color = "black"
	}
	if c.Width == 0 {
		c.Width = 1
	}
	c.DashArray = DashArray(c.Style)
}

// logFocus moves the user focus of log axes into log space.
func (m *Model) logFocus() {
	f := &m.UserFocus
	if m.XAxis.IsLog() {
		b := m.XAxis.logBase()
		f.XL, f.XR = logValue(f.XL, b), logValue(f.XR, b)
	}
	if m.YAxis.IsLog() {
		b := m.YAxis.logBase()
		f.YL, f.YR = logValue(f.YL, b), logValue(f.YR, b)
		f.YLR, f.YRR = logValue(f.YLR, b), logValue(f.YRR, b)
	}
}

// logValue returns log_base(v), keeping None.
func logValue(v num.Value, base float64) num.Value {
	if v.IsNone() {
		return v
	}
	return num.Float(math.Log(v.Float64()) / math.Log(base))
}

// formatItems converts the raw items into series. Items of an unknown
// type are logged and skipped.
func (p *Payload) formatItems(m *Model) {
	m.Data = make([]*plot.Series, 0, len(p.Data))
	for i := range p.Data {
		s, err := m.formatItem(&p.Data[i])
		if err != nil {
			slog.Error("skipping plot item", "index", i, "err", err)
			continue
		}
		s.Index = len(m.Data)
		s.ID = "i" + strconv.Itoa(s.Index)
		m.Data = append(m.Data, s)
	}
}

func (m *Model) formatItem(r *RawItem) (*plot.Series, error) {
	typ := plot.Line
	if r.Type != "" {
		t, err := plot.ParseItemType(r.Type)
		if err != nil {
			return nil, err
		}
		typ = t
	}
	s := &plot.Series{
		Type:          typ,
		Legend:        r.Legend,
		ShowItem:      true,
		YAxis:         string(r.YAxis),
		Color:         r.Color,
		Style:         r.Style,
		Shape:         r.Shape,
		Interpolation: r.Interpolation,
		LODType:       r.LODType,
		Base:          r.Base,
		MinValue:      r.MinValue,
		MaxValue:      r.MaxValue,
		Colors:        r.Colors,
		ShowLabel:     r.ShowLabel,
		Image:         r.Image,
		Opacity:       r.Opacity,
	}
	if r.Visible != nil {
		s.ShowItem = *r.Visible
	}
	if r.Width != nil {
		s.Width = *r.Width
	}
	if r.Size != nil {
		s.Size = *r.Size
	}

	switch typ {
	case plot.Line, plot.ConstLine:
		if s.Style == "" {
			s.Style = "solid"
		}
		s.DashArray = DashArray(s.Style)
	case plot.Point:
		if s.Shape == "" {
			s.Shape = plots.Rect
		}
		if s.Size == 0 {
			s.Size = defaultPointSize(s.Shape)
		}
	case plot.Area:
		if s.Interpolation == "" {
			s.Interpolation = "linear"
		}
	}
	s.UseToolTip = m.UseToolTip
	if r.UseToolTip != nil {
		s.UseToolTip = *r.UseToolTip
	}
	switch {
	case (typ == plot.Line || typ == plot.Stem) && s.Width == 0:
		s.Width = DefaultLineWidth
	case typ == plot.Bar && r.Width == nil:
		s.Width = DefaultBarWidth
	}
	switch typ {
	case plot.Line, plot.ConstLine, plot.ConstBand:
		if s.Color == "" {
			s.Color = "black"
		}
	}
	s.Stroke = r.OutlineColor
	if r.OutlineWidth != nil {
		s.StrokeWidth = *r.OutlineWidth
	}
	if r.ColorOpacity != nil {
		s.ColorOpacity = *r.ColorOpacity
	}
	switch {
	case r.OutlineOpacity != nil:
		s.StrokeOpacity = *r.OutlineOpacity
	case s.Stroke != "":
		s.StrokeOpacity = 1
	}

	useR := typ != plot.TreeMapNode && m.UseYAxisR(s.YAxis)
	logX, logY := m.XAxis.IsLog(), m.YAxis.IsLog()
	baseX, baseY := m.XAxis.logBase(), m.YAxis.logBase()
	if useR {
		logY, baseY = m.YAxisR.IsLog(), m.YAxisR.logBase()
	}
	if typ == plot.TreeMapNode {
		logX, logY = false, false
	}

	s.Elements = make([]plot.Element, len(r.Elements))
	for i := range r.Elements {
		e := &s.Elements[i]
		formatElement(s, r, &r.Elements[i], e, logY)
		if m.Orientation == plot.Horizontal {
			swapElement(typ, e)
		}
		logElement(e, logX, baseX, logY, baseY)
		e.Index = i
		e.ID = strconv.Itoa(i)
	}
	return s, nil
}

func defaultPointSize(shape string) float64 {
	if shape == plots.Rect || shape == "" {
		return 8
	}
	return 5
}

func formatElement(s *plot.Series, r *RawItem, re *RawElement, e *plot.Element, logY bool) {
	*e = plot.Element{
		X: re.X, Y: re.Y, X2: re.X2, Y2: re.Y2,
		Shape:   re.Shape,
		Width:   re.Width,
		Color:   re.Color,
		Stroke:  re.OutlineColor,
		Text:    re.Text,
		ToolTip: re.ToolTip,
	}
	if re.Size != nil {
		e.Size = *re.Size
	}
	if re.Value != nil {
		e.Value = *re.Value
	}
	if re.ColorOpacity != nil {
		e.ColorOpacity = *re.ColorOpacity
	}
	if re.OutlineWidth != nil {
		e.StrokeWidth = *re.OutlineWidth
	}
	switch {
	case re.OutlineOpacity != nil:
		e.StrokeOpacity = *re.OutlineOpacity
	case e.Stroke != "":
		e.StrokeOpacity = 1
	}
	if s.Type == plot.Stem {
		e.DashArray = DashArray(re.Style)
	}
	if s.Type == plot.Bar && e.X2.IsNone() && !e.X.IsNone() {
		e.X = e.X.SubFloat(s.Width / 2)
		e.X2 = e.X.AddFloat(s.Width)
	}
	if (s.Type == plot.Area || s.Type == plot.Bar || s.Type == plot.Stem) && e.Y2.IsNone() {
		switch {
		case r.Height != nil && !e.Y.IsNone():
			e.Y2 = e.Y.AddFloat(*r.Height)
		case !s.Base.IsNone():
			e.Y2 = s.Base
		case logY:
			e.Y2 = num.Float(1)
		default:
			e.Y2 = num.Float(0)
		}
	}
	if s.Type == plot.Point && e.Size == 0 {
		e.Size = s.Size
		if e.Size == 0 {
			e.Size = defaultPointSize(s.Shape)
		}
	}
	if !e.Y.IsNone() && !e.Y2.IsNone() && e.Y2.Less(e.Y) {
		e.Y, e.Y2 = e.Y2, e.Y
	}
}

// logElement keeps the raw coordinates and moves log axis coordinates
// into log space.
func logElement(e *plot.Element, logX bool, baseX float64, logY bool, baseY float64) {
	e.RawX, e.RawX2, e.RawY, e.RawY2 = e.X, e.X2, e.Y, e.Y2
	if logX {
		e.X, e.X2 = logValue(e.X, baseX), logValue(e.X2, baseX)
	}
	if logY {
		e.Y, e.Y2 = logValue(e.Y, baseY), logValue(e.Y2, baseY)
	}
}

// swapElement exchanges the x and y coordinates of a horizontal plot.
// Stems then run from y to itself along the swapped axis.
func swapElement(typ plot.ItemTypes, e *plot.Element) {
	e.X, e.Y = e.Y, e.X
	e.X2, e.Y2 = e.Y2, e.X2
	if typ == plot.Stem {
		e.Y2 = e.Y
	}
}

// createItems creates the plot item of each series.
func (m *Model) createItems() error {
	m.items = make([]plots.Item, len(m.Data))
	for i, s := range m.Data {
		s.UseYAxisR = s.Type != plot.TreeMapNode && m.UseYAxisR(s.YAxis)
		it, err := plots.New(s, m.LODThreshold)
		if err != nil {
			return err
		}
		m.items[i] = it
	}
	return nil
}

// sortItems sorts the elements of sortable items by x and flags the
// other unsorted items as unordered.
func (m *Model) sortItems() {
	for _, s := range m.Data {
		switch s.Type {
		case plot.TreeMapNode, plot.ConstLine, plot.ConstBand, plot.HeatMap:
			continue
		}
		if plots.Monotonic(s.Elements) {
			continue
		}
		if !s.Type.Sortable() {
			s.Unordered = true
			continue
		}
		slices.SortStableFunc(s.Elements, func(a, b plot.Element) int { return a.X.Cmp(b.X) })
		for i := range s.Elements {
			s.Elements[i].Index = i
			s.Elements[i].ID = strconv.Itoa(i)
		}
	}
}

// axisItems splits the items between the left and right y axes, and
// shows the legend when it is unset and an item has one.
func (m *Model) axisItems() (left, right []plots.Item) {
	for i, s := range m.Data {
		if s.Legend != "" && !m.legendSet {
			m.ShowLegend = true
		}
		if s.UseYAxisR {
			right = append(right, m.items[i])
		} else {
			left = append(left, m.items[i])
		}
	}
	return
}

// calculateYRanges computes the data ranges of both y axes, applies
// the axis margins and zero inclusion, and derives the visible ranges.
func (m *Model) calculateYRanges(left, right []plots.Item) {
	r := plot.DataRange(left).Range
	applyMargins(&r, &m.YAxis)
	if m.YIncludeZero && r.YL.Sign() > 0 {
		r.YL = num.Float(0)
		r.UpdateSpans()
	}
	var rr *plot.Range
	if m.YAxisR != nil {
		rv := plot.DataRange(right).Range
		applyMargins(&rv, m.YAxisR)
		if m.YRIncludeZero && rv.YL.Sign() > 0 {
			rv.YL = num.Float(0)
			rv.UpdateSpans()
		}
		rr = &rv
	}
	m.visibleRange(&r, rr)
}

func applyMargins(r *plot.Range, a *AxisSpec) {
	span := r.YR.Sub(r.YL)
	r.YL = r.YL.Sub(span.MulFloat(a.LowerMargin))
	r.YR = r.YR.Add(span.MulFloat(a.UpperMargin))
	r.UpdateSpans()
}

// visibleRange sets the visible ranges to ten times the data range on
// each side, clamped at the low end of log axes, and widened to the
// user focus. A visible range given in the payload is kept.
func (m *Model) visibleRange(r, rr *plot.Range) {
	if m.VRange != nil {
		m.VRange.UpdateSpans()
		return
	}
	m.VRange = m.modelRange(r, m.YAxis.IsLog())
	if m.YAxisR != nil && rr != nil {
		m.VRangeR = m.modelRange(rr, m.YAxisR.IsLog())
	}
	f := m.UserFocus
	v := m.VRange
	if m.YPreventNegative {
		v.YL = num.Min(num.Float(0), r.YL)
	}
	v.XL = num.Min(f.XL, v.XL)
	v.XR = num.Max(f.XR, v.XR)
	v.YL = num.Min(f.YL, v.YL)
	v.YR = num.Max(f.YR, v.YR)
	if vr := m.VRangeR; vr != nil {
		vr.YL = num.Min(f.YLR, vr.YL)
		vr.YR = num.Max(f.YRR, vr.YR)
		vr.UpdateSpans()
	}
	v.UpdateSpans()
}

func (m *Model) modelRange(r *plot.Range, logY bool) *plot.Range {
	v := &plot.Range{
		XL: r.XL.Sub(r.XSpan.MulFloat(10)),
		XR: r.XR.Add(r.XSpan.MulFloat(10)),
		YL: r.YL.Sub(r.YSpan.MulFloat(10)),
		YR: r.YR.Add(r.YSpan.MulFloat(10)),
	}
	if m.XAxis.IsLog() {
		v.XL = num.Max(v.XL, r.XL.Sub(r.XSpan.MulFloat(m.Margin.Left)))
	}
	if logY {
		v.YL = num.Max(v.YL, r.YL.Sub(r.YSpan.MulFloat(m.Margin.Left)))
	}
	v.UpdateSpans()
	return v
}

// Axes returns the axes of the model set to its visible ranges.
// The right axis is nil when the model has none.
func (m *Model) Axes() (x, y, yr *axis.Axis) {
	x = axis.New(m.XAxis.Type)
	y = axis.New(m.YAxis.Type)
	x.Label, y.Label = m.XAxis.Label, m.YAxis.Label
	if m.VRange != nil {
		x.SetRange(m.VRange.XL, m.VRange.XR, m.XAxis.Base)
		y.SetRange(m.VRange.YL, m.VRange.YR, m.YAxis.Base)
	}
	if m.YAxisR != nil {
		yr = axis.New(m.YAxisR.Type)
		yr.Label = m.YAxisR.Label
		if m.VRangeR != nil {
			yr.SetRange(m.VRangeR.YL, m.VRangeR.YR, m.YAxisR.Base)
		}
	}
	if m.Timezone != "" {
		if loc, err := time.LoadLocation(m.Timezone); errors.Log(err) == nil {
			x.SetTimezone(loc)
		}
	}
	if len(m.CategoryNames) > 0 && m.XAxis.Type == axis.Category {
		x.SetCategoryNames(m.CategoryNames, categoryXs(m))
	}
	return
}

// categoryXs returns the distinct x values of the first item, which
// are the category positions.
func categoryXs(m *Model) []num.Value {
	if len(m.Data) == 0 {
		return nil
	}
	var xs []num.Value
	for _, e := range m.Data[0].Elements {
		c := e.X
		if !e.X2.IsNone() {
			c = e.X.Add(e.X2).DivFloat(2)
		}
		xs = append(xs, c)
	}
	return xs
}

// remap maps every element into axis space.
func (m *Model) remap() {
	x, y, yr := m.Axes()
	for i, s := range m.Data {
		if s.Type == plot.TreeMapNode {
			continue
		}
		if s.UseYAxisR && yr != nil {
			m.items[i].ApplyAxis(x, yr)
		} else {
			m.items[i].ApplyAxis(x, y)
		}
	}
}
