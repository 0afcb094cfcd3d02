// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"bytes"
	"fmt"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/num"
	"github.com/segmentio/encoding/json"
)

// AxisRef names an axis either as a plain label or as an object with
// a label field.
type AxisRef string

func (a *AxisRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var o struct {
			Label string `json:"label"`
		}
		if err := json.Unmarshal(b, &o); err != nil {
			return err
		}
		*a = AxisRef(o.Label)
		return nil
	}
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s != nil {
		*a = AxisRef(*s)
	}
	return nil
}

// LegendPosition is a legend position given as a string or as an
// object with a position field.
type LegendPosition string

func (l *LegendPosition) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var o struct {
			Position string `json:"position"`
		}
		if err := json.Unmarshal(b, &o); err != nil {
			return err
		}
		*l = LegendPosition(o.Position)
		return nil
	}
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s != nil {
		*l = LegendPosition(*s)
	}
	return nil
}

// Strings decodes either a single string or a list of strings.
type Strings []string

func (s *Strings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var l []string
		if err := json.Unmarshal(b, &l); err != nil {
			return err
		}
		*s = l
		return nil
	}
	var one *string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	if one != nil && *one != "" {
		*s = Strings{*one}
	}
	return nil
}

// RawAxis is an axis as given in a direct payload.
type RawAxis struct {
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Base        float64  `json:"base"`
	LowerMargin *float64 `json:"lowerMargin"`
	UpperMargin *float64 `json:"upperMargin"`
}

// RawMargin is a margin whose unset sides get [DefaultMargin].
type RawMargin struct {
	Left   *float64 `json:"left"`
	Right  *float64 `json:"right"`
	Top    *float64 `json:"top"`
	Bottom *float64 `json:"bottom"`
}

// RawElement is one element of a payload item.
type RawElement struct {
	X  num.Value `json:"x"`
	Y  num.Value `json:"y"`
	X2 num.Value `json:"x2"`
	Y2 num.Value `json:"y2"`

	Size  *float64 `json:"size"`
	Shape string   `json:"shape"`
	Style string   `json:"style"`
	Width float64  `json:"width"`

	Color          string   `json:"color"`
	ColorOpacity   *float64 `json:"color_opacity"`
	OutlineColor   string   `json:"outlineColor"`
	OutlineWidth   *float64 `json:"outlineWidth"`
	OutlineOpacity *float64 `json:"outlineOpacity"`

	Text    string   `json:"text"`
	ToolTip string   `json:"tooltip"`
	Value   *float64 `json:"value"`
}

// RawItem is one item of a payload before formatting.
type RawItem struct {
	Type   string  `json:"type"`
	Legend string  `json:"legend"`
	YAxis  AxisRef `json:"yAxis"`

	Color          string   `json:"color"`
	ColorOpacity   *float64 `json:"colorOpacity"`
	OutlineColor   string   `json:"outlineColor"`
	OutlineWidth   *float64 `json:"outlineWidth"`
	OutlineOpacity *float64 `json:"outlineOpacity"`

	Width         *float64  `json:"width"`
	Style         string    `json:"style"`
	Shape         string    `json:"shape"`
	Size          *float64  `json:"size"`
	Height        *float64  `json:"height"`
	Base          num.Value `json:"base"`
	Interpolation string    `json:"interpolation"`
	LODType       string    `json:"lod_type"`
	UseToolTip    *bool     `json:"useToolTip"`
	Visible       *bool     `json:"visible"`

	Elements []RawElement `json:"elements"`

	MinValue  float64  `json:"minValue"`
	MaxValue  float64  `json:"maxValue"`
	Colors    []string `json:"colors"`
	ShowLabel bool     `json:"showLabel"`
	Image     string   `json:"image"`
	Opacity   float64  `json:"opacity"`
}

// Payload is a plot description in the direct dialect. The legacy
// dialect is converted into a Payload before formatting.
type Payload struct {
	Format  string `json:"format"`
	Version string `json:"version"`

	Type  string `json:"type"`
	Title string `json:"title"`

	XAxis  RawAxis  `json:"xAxis"`
	YAxis  RawAxis  `json:"yAxis"`
	YAxisR *RawAxis `json:"yAxisR"`

	Data []RawItem `json:"data"`

	Focus  FocusSpec   `json:"focus"`
	Margin RawMargin   `json:"margin"`
	Range  *plot.Range `json:"range"`
	VRange *plot.Range `json:"vrange"`

	LODThreshold   int            `json:"lodThreshold"`
	Orientation    string         `json:"orientation"`
	ShowLegend     *bool          `json:"showLegend"`
	LegendPosition LegendPosition `json:"legendPosition"`
	LegendLayout   string         `json:"legendLayout"`
	UseToolTip     bool           `json:"useToolTip"`
	OmitCheckboxes bool           `json:"omitCheckboxes"`
	Width          float64        `json:"width"`
	Height         float64        `json:"height"`
	Timezone       string         `json:"timezone"`
	CategoryNames  []string       `json:"categoryNames"`
	DisplayMode    string         `json:"displayMode"`

	YIncludeZero     bool `json:"yIncludeZero"`
	YRIncludeZero    bool `json:"yRIncludeZero"`
	YPreventNegative bool `json:"yPreventNegative"`

	XCursor *plot.Cursor `json:"xCursor"`
	YCursor *plot.Cursor `json:"yCursor"`

	CustomStyles  Strings           `json:"customStyles"`
	ElementStyles map[string]string `json:"elementStyles"`
	Tips          []string          `json:"tips"`

	pointsLimit *PointsLimit
}

func (r *RawMargin) set(m *plot.Margin) {
	side := func(p *float64) float64 {
		if p == nil {
			return DefaultMargin
		}
		return *p
	}
	m.Left, m.Right = side(r.Left), side(r.Right)
	m.Top, m.Bottom = side(r.Top), side(r.Bottom)
}

// Dialect returns the dialect of a raw payload: an explicit format
// field wins, then a complete version marker, then the presence of a
// graphics_list, and the direct dialect otherwise.
func Dialect(raw []byte) (Versions, error) {
	var probe struct {
		Format       string          `json:"format"`
		Version      string          `json:"version"`
		GraphicsList json.RawMessage `json:"graphics_list"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", errors.Join(ErrInvalidPayload, err)
	}
	switch probe.Format {
	case "":
	case string(Direct), string(Legacy):
		return Versions(probe.Format), nil
	default:
		return "", fmt.Errorf("%w: format %q", ErrUnknownDialect, probe.Format)
	}
	if probe.Version == string(Complete) {
		return Complete, nil
	}
	if len(probe.GraphicsList) > 0 && string(probe.GraphicsList) != "null" {
		return Legacy, nil
	}
	return Direct, nil
}
