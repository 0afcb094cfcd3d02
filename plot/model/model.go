// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model converts plot description payloads into the canonical
// plot model. Payloads come in a direct dialect, a legacy dialect with
// differently named fields, or as an already complete model, which is
// passed through unchanged.
package model

import (
	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/axis"
	"cogentcore.org/plotscope/plot/num"
	"cogentcore.org/plotscope/plot/plots"
	"github.com/jinzhu/copier"
)

// Versions are the dialect markers of a model.
type Versions string

const (
	// Direct is the compact dialect with camel case field names.
	Direct Versions = "direct"

	// Legacy is the dialect with a graphics_list of typed graphics.
	Legacy Versions = "legacy"

	// Complete marks a standardized model.
	Complete Versions = "complete"
)

var (
	// ErrUnknownDialect is returned for payloads with an unrecognized
	// format discriminator.
	ErrUnknownDialect = errors.New("model: unknown payload dialect")

	// ErrInvalidPayload is returned for payloads that cannot be decoded.
	ErrInvalidPayload = errors.New("model: invalid payload")
)

// Defaults of the canonical model.
const (
	DefaultWidth          = 1200
	DefaultHeight         = 350
	DefaultMargin         = 0.05
	DefaultLegendPosition = "TOP_RIGHT"
	DefaultLegendLayout   = "VERTICAL"
	DefaultDisplayMode    = "OVERLAP"
)

// Options are the settings standardization depends on.
type Options struct {
	// LODThreshold is used when the payload sets none.
	LODThreshold int

	// OutputPointsLimit is the largest legacy graphic drawn in full;
	// larger payloads are cut to OutputPointsPreview points.
	OutputPointsLimit   int
	OutputPointsPreview int

	// Width, Height and Timezone are used when the payload sets none.
	Width, Height float64
	Timezone      string
}

// DefaultOptions returns the default standardization options.
func DefaultOptions() Options {
	return Options{
		LODThreshold:        plots.DefaultLODThreshold,
		OutputPointsLimit:   1_000_000,
		OutputPointsPreview: 10_000,
		Width:               DefaultWidth,
		Height:              DefaultHeight,
	}
}

// AxisSpec describes one axis of the model.
type AxisSpec struct {
	Type  axis.Types `json:"type"`
	Label string     `json:"label,omitempty"`

	// Base is the logarithm base of log axes.
	Base float64 `json:"base,omitempty"`

	LowerMargin float64 `json:"lowerMargin,omitempty"`
	UpperMargin float64 `json:"upperMargin,omitempty"`
}

// IsLog returns whether the axis is logarithmic.
func (a *AxisSpec) IsLog() bool {
	return a != nil && a.Type == axis.Log
}

// logBase returns the base used for log transforms.
func (a *AxisSpec) logBase() float64 {
	if a == nil || a.Base <= 1 {
		return 10
	}
	return a.Base
}

// FocusSpec is a user requested focus in data values. None sides are
// unset; zero is a valid bound.
type FocusSpec struct {
	XL  num.Value `json:"xl"`
	XR  num.Value `json:"xr"`
	YL  num.Value `json:"yl"`
	YR  num.Value `json:"yr"`
	YLR num.Value `json:"yl_r"`
	YRR num.Value `json:"yr_r"`
}

// PointsLimit records that a payload was truncated for display.
type PointsLimit struct {
	// Points is the size of the largest graphic in the payload.
	Points int `json:"numberOfPoints"`

	Limit   int `json:"outputPointsLimit"`
	Preview int `json:"outputPointsPreview"`
}

// Model is the canonical plot model.
type Model struct {
	Version Versions `json:"version"`

	// Type is the plot kind: Plot, TimePlot, NanoPlot, CategoryPlot,
	// HeatMap, Histogram or TreeMap.
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`

	XAxis  AxisSpec  `json:"xAxis"`
	YAxis  AxisSpec  `json:"yAxis"`
	YAxisR *AxisSpec `json:"yAxisR,omitempty"`

	Data []*plot.Series `json:"data"`

	Margin    plot.Margin `json:"margin"`
	UserFocus FocusSpec   `json:"userFocus"`

	// VRange is the visible range of the left y axis, VRangeR of the right.
	VRange  *plot.Range `json:"vrange,omitempty"`
	VRangeR *plot.Range `json:"vrangeR,omitempty"`

	LODThreshold int               `json:"lodThreshold"`
	Orientation  plot.Orientations `json:"orientation"`

	ShowLegend     bool   `json:"showLegend"`
	LegendPosition string `json:"legendPosition"`
	LegendLayout   string `json:"legendLayout"`
	UseToolTip     bool   `json:"useToolTip"`
	OmitCheckboxes bool   `json:"omitCheckboxes,omitempty"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Timezone       string   `json:"timezone,omitempty"`
	CategoryNames  []string `json:"categoryNames,omitempty"`
	ShowXGridlines bool     `json:"showXGridlines"`
	DisplayMode    string   `json:"displayMode"`

	YIncludeZero     bool `json:"yIncludeZero,omitempty"`
	YRIncludeZero    bool `json:"yRIncludeZero,omitempty"`
	YPreventNegative bool `json:"yPreventNegative,omitempty"`

	XCursor *plot.Cursor `json:"xCursor,omitempty"`
	YCursor *plot.Cursor `json:"yCursor,omitempty"`

	// CustomStyles are extra CSS rules; ElementStyles map selectors to
	// declarations.
	CustomStyles  []string          `json:"customStyles,omitempty"`
	ElementStyles map[string]string `json:"elementStyles,omitempty"`

	// Tips are the ids of tooltips pinned when the model was saved.
	Tips []string `json:"tips,omitempty"`

	PointsLimit *PointsLimit `json:"pointsLimit,omitempty"`

	items     []plots.Item
	legendSet bool
}

// Items returns the plot items of the model. Items created during
// standardization are returned as is; models decoded from a complete
// payload get their items recreated from the variant each series records.
func (m *Model) Items() ([]plots.Item, error) {
	if len(m.items) == len(m.Data) {
		return m.items, nil
	}
	items := make([]plots.Item, 0, len(m.Data))
	for _, s := range m.Data {
		it, err := plots.Recreate(s, m.LODThreshold)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	m.items = items
	return items, nil
}

// UseYAxisR returns whether the item plots against the right y axis.
func (m *Model) UseYAxisR(yAxis string) bool {
	return m.YAxisR != nil && yAxis != "" && m.YAxisR.Label == yAxis
}

// Clone returns a deep copy of the model without its items.
func (m *Model) Clone() (*Model, error) {
	c := &Model{}
	err := copier.CopyWithOption(c, m, copier.Option{DeepCopy: true, Converters: []copier.TypeConverter{{
		SrcType: num.Value{},
		DstType: num.Value{},
		Fn:      func(src any) (any, error) { return src, nil },
	}}})
	if err != nil {
		return nil, err
	}
	return c, nil
}
