// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"strings"

	"cogentcore.org/plotscope/plot/num"
)

// ItemTypes are the kinds of plot item.
type ItemTypes int32

const (
	// Line connects elements with a polyline.
	Line ItemTypes = iota

	// Bar draws a rectangle from (x, y) to (x2, y2) per element.
	Bar

	// Stem draws a vertical segment from y to y2 per element.
	Stem

	// Area fills between y and y2.
	Area

	// Point draws a shape at each element.
	Point

	// ConstLine is a horizontal or vertical line across the plot.
	ConstLine

	// ConstBand is a horizontal or vertical band across the plot.
	ConstBand

	// Text places a string at each element.
	Text

	// TreeMapNode is a node of a treemap chart.
	TreeMapNode

	// HeatMap draws one colored cell per element.
	HeatMap

	// Raster draws an image over a data rectangle.
	Raster
)

var itemTypeNames = [...]string{"line", "bar", "stem", "area", "point", "constline", "constband", "text", "treemapnode", "heatmap", "raster"}

func (t ItemTypes) String() string {
	if t < 0 || int(t) >= len(itemTypeNames) {
		return fmt.Sprintf("ItemTypes(%d)", t)
	}
	return itemTypeNames[t]
}

// ParseItemType returns the item type with the given name.
func ParseItemType(s string) (ItemTypes, error) {
	for i, n := range itemTypeNames {
		if strings.EqualFold(n, s) {
			return ItemTypes(i), nil
		}
	}
	return Line, fmt.Errorf("plot: unknown item type %q", s)
}

func (t ItemTypes) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ItemTypes) UnmarshalText(b []byte) error {
	v, err := ParseItemType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Sortable returns whether items of this type may be sorted by x
// without changing what they draw.
func (t ItemTypes) Sortable() bool {
	switch t {
	case Bar, Stem, Point, Text:
		return true
	}
	return false
}

// Orientations are the plot orientations.
type Orientations int32

const (
	Vertical Orientations = iota

	// Horizontal swaps the roles of the x and y axes.
	Horizontal
)

func (o Orientations) String() string {
	if o == Horizontal {
		return "HORIZONTAL"
	}
	return "VERTICAL"
}

func (o Orientations) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Orientations) UnmarshalText(b []byte) error {
	*o = ParseOrientation(string(b))
	return nil
}

// ParseOrientation parses "VERTICAL" or "HORIZONTAL", case-insensitively.
func ParseOrientation(s string) Orientations {
	if strings.EqualFold(s, "HORIZONTAL") {
		return Horizontal
	}
	return Vertical
}

// Element is one data point of a plot item. X, Y, X2 and Y2 are the
// data coordinates after log transforms and orientation swaps; the Raw
// fields keep the values before the log transform for display. PX, PY,
// PX2 and PY2 are the positions in [0,1] along the axes, set by ApplyAxis.
type Element struct {
	Index int    `json:"index"`
	ID    string `json:"id"`

	X  num.Value `json:"x"`
	Y  num.Value `json:"y"`
	X2 num.Value `json:"x2"`
	Y2 num.Value `json:"y2"`

	RawX  num.Value `json:"_x"`
	RawY  num.Value `json:"_y"`
	RawX2 num.Value `json:"_x2"`
	RawY2 num.Value `json:"_y2"`

	PX  float64 `json:"px"`
	PY  float64 `json:"py"`
	PX2 float64 `json:"px2"`
	PY2 float64 `json:"py2"`

	// Value is the cell value of heatmap elements.
	Value float64 `json:"value,omitempty"`

	// Size is the point size, or 0 for the item default.
	Size float64 `json:"size,omitempty"`

	// Shape is the point shape, or "" for the item default.
	Shape string `json:"shape,omitempty"`

	// Width is the stem width, or the rotation of text elements.
	Width float64 `json:"width,omitempty"`

	// Color, when set, overrides the item color.
	Color        string  `json:"color,omitempty"`
	ColorOpacity float64 `json:"color_opacity,omitempty"`

	Stroke        string  `json:"stroke,omitempty"`
	StrokeWidth   float64 `json:"stroke_width,omitempty"`
	StrokeOpacity float64 `json:"stroke_opacity,omitempty"`

	// DashArray is the SVG stroke-dasharray of stems and lines.
	DashArray string `json:"stroke_dasharray,omitempty"`

	// Text is the string of text elements.
	Text string `json:"text,omitempty"`

	// ToolTip is a custom tooltip, shown instead of the coordinates.
	ToolTip string `json:"tooltip,omitempty"`
}

// Margin holds fractions of the data span added on each side.
type Margin struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Cursor is a crosshair line setting.
type Cursor struct {
	Color     string  `json:"color"`
	Width     float64 `json:"width"`
	Style     string  `json:"style,omitempty"`
	DashArray string  `json:"stroke_dasharray,omitempty"`
}

// Series is the canonical description of one plot item, produced
// by the model standardizer and consumed by the item factory.
type Series struct {
	Type   ItemTypes `json:"type"`
	ID     string    `json:"id"`
	Index  int       `json:"index"`
	Legend string    `json:"legend,omitempty"`

	// ShowItem is false for items hidden from the plot and the range.
	ShowItem   bool `json:"showItem"`
	UseToolTip bool `json:"useToolTip"`

	// YAxis names the y axis the item is plotted against. Items whose
	// YAxis matches the right y axis label use the right axis.
	YAxis string `json:"yAxis,omitempty"`

	// UseYAxisR is set by the standardizer when YAxis matches the right axis.
	UseYAxisR bool `json:"useYAxisR,omitempty"`

	Elements []Element `json:"elements"`

	Color         string  `json:"color,omitempty"`
	ColorOpacity  float64 `json:"color_opacity,omitempty"`
	Stroke        string  `json:"stroke,omitempty"`
	StrokeWidth   float64 `json:"stroke_width,omitempty"`
	StrokeOpacity float64 `json:"stroke_opacity"`

	Width     float64 `json:"width,omitempty"`
	Style     string  `json:"style,omitempty"`
	DashArray string  `json:"stroke_dasharray,omitempty"`

	Shape string  `json:"shape,omitempty"`
	Size  float64 `json:"size,omitempty"`

	// Interpolation is "linear" or "none" for areas.
	Interpolation string `json:"interpolation,omitempty"`

	// LODType is the decimation render type, "box" or "river".
	LODType string `json:"lod_type,omitempty"`

	// Unordered is set for items whose elements are not sorted by x
	// and cannot be.
	Unordered bool `json:"isUnorderedItem,omitempty"`

	// IsLOD records that the item was created as a decimating variant.
	IsLOD bool `json:"isLodItem,omitempty"`

	// Heatmap color range and palette.
	MinValue float64  `json:"minValue,omitempty"`
	MaxValue float64  `json:"maxValue,omitempty"`
	Colors   []string `json:"colors,omitempty"`

	// ShowLabel shows the value label on constant lines and bands.
	ShowLabel bool `json:"showLabel,omitempty"`

	// Raster image as a data URL, with its opacity.
	Image   string  `json:"image,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`

	// Base is the bar, stem or area base used when Y2 is absent.
	Base num.Value `json:"base"`
}
