// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

// Layout holds the pixel margins around the plot area.
type Layout struct {
	Left, Right, Top, Bottom float64
}

// Mapping converts between axis space in [0,1] and pixels for the
// current focus, size and layout. The plot area spans
// [Left, Width-Right] horizontally and [Top, Height-Bottom] vertically,
// with y increasing upward. A Mapping is a plain value: rebuilding it
// from the same inputs gives the same mapping.
type Mapping struct {
	Focus         Focus
	Width, Height float64
	Layout        Layout
}

// NewMapping returns the mapping for the given focus, size and layout.
func NewMapping(focus Focus, width, height float64, layout Layout) Mapping {
	return Mapping{Focus: focus, Width: width, Height: height, Layout: layout}
}

// PlotWidth is the pixel width of the plot area.
func (m Mapping) PlotWidth() float64 {
	return m.Width - m.Layout.Left - m.Layout.Right
}

// PlotHeight is the pixel height of the plot area.
func (m Mapping) PlotHeight() float64 {
	return m.Height - m.Layout.Top - m.Layout.Bottom
}

// X maps an x position in axis space to a pixel column.
func (m Mapping) X(p float64) float64 {
	return affine(p, m.Focus.XL, m.Focus.XR, m.Layout.Left, m.Width-m.Layout.Right)
}

// Y maps a y position on the left axis to a pixel row.
func (m Mapping) Y(p float64) float64 {
	return affine(p, m.Focus.YL, m.Focus.YR, m.Height-m.Layout.Bottom, m.Layout.Top)
}

// YR maps a y position on the right axis to a pixel row.
func (m Mapping) YR(p float64) float64 {
	return affine(p, m.Focus.YLR, m.Focus.YRR, m.Height-m.Layout.Bottom, m.Layout.Top)
}

// InvX maps a pixel column to an x position in axis space.
func (m Mapping) InvX(px float64) float64 {
	return affine(px, m.Layout.Left, m.Width-m.Layout.Right, m.Focus.XL, m.Focus.XR)
}

// InvY maps a pixel row to a y position on the left axis.
func (m Mapping) InvY(py float64) float64 {
	return affine(py, m.Height-m.Layout.Bottom, m.Layout.Top, m.Focus.YL, m.Focus.YR)
}

// InvYR maps a pixel row to a y position on the right axis.
func (m Mapping) InvYR(py float64) float64 {
	return affine(py, m.Height-m.Layout.Bottom, m.Layout.Top, m.Focus.YLR, m.Focus.YRR)
}

// InPlot returns whether the pixel lies inside the plot area,
// extended by pad pixels on each side.
func (m Mapping) InPlot(px, py, pad float64) bool {
	return px >= m.Layout.Left-pad && px <= m.Width-m.Layout.Right+pad &&
		py >= m.Layout.Top-pad && py <= m.Height-m.Layout.Bottom+pad
}

func affine(v, from0, from1, to0, to1 float64) float64 {
	if from1 == from0 {
		return to0
	}
	return to0 + (v-from0)/(from1-from0)*(to1-to0)
}
