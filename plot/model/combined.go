// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"

	"cogentcore.org/plotscope/base/errors"
	"github.com/segmentio/encoding/json"
)

// DefaultCombinedHeight is the total height of combined plots that
// set none.
const DefaultCombinedHeight = 600

// CombinedPayload is a combined plot: several plots stacked vertically
// sharing the x axis, each taking a share of the height proportional
// to its weight.
type CombinedPayload struct {
	Type       string            `json:"type"`
	Title      string            `json:"plot_title"`
	XLabel     string            `json:"x_label"`
	InitWidth  float64           `json:"init_width"`
	InitHeight float64           `json:"init_height"`
	Weights    []float64         `json:"weights"`
	Plots      []json.RawMessage `json:"plots"`
}

// DecodeCombined decodes a combined plot payload.
func DecodeCombined(raw []byte) (*CombinedPayload, error) {
	c := &CombinedPayload{}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if c.Type != CombinedPlot {
		return nil, fmt.Errorf("%w: type %q is not %s", ErrInvalidPayload, c.Type, CombinedPlot)
	}
	return c, nil
}

// IsCombined returns whether raw is a combined plot payload.
func IsCombined(raw []byte) bool {
	var probe struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(raw, &probe) == nil && probe.Type == CombinedPlot
}

// Heights returns the pixel height of each child plot. Missing or
// non-positive weights count as 1.
func (c *CombinedPayload) Heights() []float64 {
	total := c.InitHeight
	if total <= 0 {
		total = DefaultCombinedHeight
	}
	ws := make([]float64, len(c.Plots))
	sum := 0.0
	for i := range ws {
		ws[i] = 1
		if i < len(c.Weights) && c.Weights[i] > 0 {
			ws[i] = c.Weights[i]
		}
		sum += ws[i]
	}
	for i := range ws {
		ws[i] = total * ws[i] / sum
	}
	return ws
}

// Child standardizes child plot i, sized to the combined width and
// its share of the height. The last child carries the shared x label.
// Child is safe for concurrent use with distinct i.
func (c *CombinedPayload) Child(i int, opts Options) (*Model, error) {
	if i < 0 || i >= len(c.Plots) {
		return nil, fmt.Errorf("model: combined plot has no child %d", i)
	}
	m, err := Standardize(c.Plots[i], opts)
	if err != nil {
		return nil, fmt.Errorf("combined plot child %d: %w", i, err)
	}
	if c.InitWidth > 0 {
		m.Width = c.InitWidth
	}
	m.Height = c.Heights()[i]
	if i == len(c.Plots)-1 && m.XAxis.Label == "" {
		m.XAxis.Label = c.XLabel
	}
	if i == 0 && m.Title == "" {
		m.Title = c.Title
	}
	return m, nil
}
