// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene() *Scene {
	s := NewScene(100, 50)
	s.Background = "white"
	s.ClipArea = Rect{X: 0, Y: 0, W: 50, H: 50}
	data := s.Layer("data")
	data.Clip = true
	data.Add(&Rect{ID: "r", X: 40, Y: 10, W: 50, H: 20, Style: Style{Fill: "#ff0000"}})
	labels := s.Layer("labels")
	labels.Add(&Text{ID: "t", X: 60, Y: 45, Text: "a<b", Style: Style{Fill: "black", FontSize: 10}})
	return s
}

func TestGroupOps(t *testing.T) {
	s := testScene()
	assert.Same(t, s.Layer("data"), s.Layer("data"))
	assert.NotNil(t, s.Root.Find("r"))
	assert.Equal(t, 4, s.Count())

	s.Layer("data").Add(&Line{ID: "tip_1"})
	s.Layer("data").Add(&Line{ID: "tip_2"})
	assert.True(t, s.Root.Remove("tip_1"))
	assert.False(t, s.Root.Remove("tip_1"))
	assert.NotNil(t, s.Root.Find("tip_2"))
	s.Layer("data").Clear()
	assert.Nil(t, s.Root.Find("r"))
}

func TestStyleCSS(t *testing.T) {
	st := Style{Fill: "#123456", FillOpacity: 0.5, Stroke: "black", StrokeWidth: 2, DashArray: "9,5"}
	assert.Equal(t, "fill:#123456;fill-opacity:0.5;stroke:black;stroke-width:2;stroke-dasharray:9,5;", st.CSS())
	st = Style{Stroke: "black"}
	assert.Equal(t, "fill:none;", st.CSS())
	st = Style{Fill: "black", FontSize: 12, Bold: true, Anchor: Middle}
	assert.Equal(t, "fill:black;font-size:12px;font-weight:bold;text-anchor:middle;", st.CSS())
}

func TestWriteSVG(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteSVG(&b, testScene()))
	out := b.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `<clipPath id="plotClip"`)
	assert.Contains(t, out, `clip-path="url(#plotClip)"`)
	assert.Contains(t, out, `id="r"`)
	assert.Contains(t, out, "fill:#ff0000")
	assert.Contains(t, out, "a&lt;b")
	assert.Contains(t, out, "</svg>")
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize(testScene(), 2)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())

	red := color.RGBA{255, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	assert.Equal(t, red, img.RGBAAt(90, 40))
	assert.Equal(t, white, img.RGBAAt(10, 10))
	// clipped outside the plot area
	assert.Equal(t, white, img.RGBAAt(140, 40))

	assert.Positive(t, darkPixels(img, image.Rect(110, 60, 200, 100)))
}

func TestRasterizeRotatedText(t *testing.T) {
	s := NewScene(60, 120)
	s.Background = "white"
	s.Layer("labels").Add(&Text{X: 30, Y: 60, Text: "rotated", Rotate: -90, Style: Style{Fill: "black", FontSize: 14, Anchor: Middle}})
	img, err := Rasterize(s, 1)
	require.NoError(t, err)
	assert.Positive(t, darkPixels(img, img.Bounds()))
}

func TestMeasureText(t *testing.T) {
	w1, err := MeasureText("abc", 12, false)
	require.NoError(t, err)
	w2, err := MeasureText("abcabc", 12, false)
	require.NoError(t, err)
	assert.Positive(t, w1)
	assert.InDelta(t, 2*w1, w2, 1)
}

func darkPixels(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R < 128 {
				n++
			}
		}
	}
	return n
}
