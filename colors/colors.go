// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors parses the CSS color strings that appear in plot
// payloads into color.RGBA values for the raster renderer.
package colors

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	// Black is the default stroke color for lines and constant lines.
	Black = color.RGBA{0, 0, 0, 255}

	// White is the background of exported images.
	White = color.RGBA{255, 255, 255, 255}

	// Transparent is fully transparent black.
	Transparent = color.RGBA{}
)

// FromString returns the color specified by the given CSS string:
// a hex color (#RGB, #RRGGBB, #RRGGBBAA), rgb(), rgba(), a standard
// color name, or none/transparent. An empty string is transparent.
func FromString(str string) (color.RGBA, error) {
	if len(str) == 0 {
		return Transparent, nil
	}
	lstr := strings.ToLower(strings.TrimSpace(str))
	switch {
	case lstr[0] == '#':
		return FromHex(lstr)
	case strings.HasPrefix(lstr, "rgba("):
		return parseFunc(lstr[5:], true)
	case strings.HasPrefix(lstr, "rgb("):
		return parseFunc(lstr[4:], false)
	}
	switch lstr {
	case "none", "transparent":
		return Transparent, nil
	}
	if c, ok := colornames.Map[lstr]; ok {
		return c, nil
	}
	return color.RGBA{}, errors.New("colors.FromString: unknown color: " + str)
}

// parseFunc parses the argument list of rgb( and rgba( forms.
// Alpha may be given as a fraction in [0,1] or as 0-255.
func parseFunc(args string, alpha bool) (color.RGBA, error) {
	args = strings.TrimSuffix(strings.TrimSpace(args), ")")
	parts := strings.Split(args, ",")
	want := 3
	if alpha {
		want = 4
	}
	if len(parts) != want {
		return color.RGBA{}, fmt.Errorf("colors.FromString: expected %d components, got %q", want, args)
	}
	var c [4]float64
	c[3] = 255
	for i, p := range parts {
		p = strings.TrimSpace(p)
		pct := strings.HasSuffix(p, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("colors.FromString: bad component %q: %w", p, err)
		}
		switch {
		case pct:
			v = v / 100 * 255
		case i == 3 && v <= 1:
			v *= 255
		}
		c[i] = min(max(v, 0), 255)
	}
	return premultiply(uint8(c[0]+0.5), uint8(c[1]+0.5), uint8(c[2]+0.5), uint8(c[3]+0.5)), nil
}

// FromHex parses a CSS hex color: #RGB, #RRGGBB or #RRGGBBAA.
func FromHex(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b, a int
	a = 255
	var err error
	switch len(hex) {
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b)
		r |= r << 4
		g |= g << 4
		b |= b << 4
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return color.RGBA{}, errors.New("colors.FromHex: could not process: " + hex)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colors.FromHex: could not process %q: %w", hex, err)
	}
	return premultiply(uint8(r), uint8(g), uint8(b), uint8(a)), nil
}

// SplitARGB converts a legacy #AARRGGBB color into a CSS #RRGGBB
// string and an opacity in [0,1]. Colors already in #RRGGBB form are
// returned unchanged with opacity 1.
func SplitARGB(argb string) (string, float64, error) {
	h := strings.TrimPrefix(argb, "#")
	switch len(h) {
	case 6:
		return "#" + strings.ToUpper(h), 1, nil
	case 8:
		a, err := strconv.ParseUint(h[:2], 16, 8)
		if err != nil {
			return "", 0, fmt.Errorf("colors.SplitARGB: %q: %w", argb, err)
		}
		return "#" + strings.ToUpper(h[2:]), float64(a) / 255, nil
	}
	return "", 0, errors.New("colors.SplitARGB: could not process: " + argb)
}

// WithOpacity returns c with its alpha multiplied by op in [0,1].
func WithOpacity(c color.RGBA, op float64) color.RGBA {
	op = min(max(op, 0), 1)
	return color.RGBA{
		R: uint8(float64(c.R)*op + 0.5),
		G: uint8(float64(c.G)*op + 0.5),
		B: uint8(float64(c.B)*op + 0.5),
		A: uint8(float64(c.A)*op + 0.5),
	}
}

// AsHex returns the color as a #RRGGBB string, ignoring alpha.
func AsHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}

func premultiply(r, g, b, a uint8) color.RGBA {
	return color.RGBAModel.Convert(color.NRGBA{r, g, b, a}).(color.RGBA)
}
