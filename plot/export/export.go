// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export saves rendered plot scenes as self-contained SVG and
// PNG artifacts, with fonts and styles inlined.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot/render"
	"github.com/anthonynsimon/bild/imgio"
	strip "github.com/grokify/html-strip-tags-go"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
)

// MIME types of the artifacts.
const (
	SVGMIME = "image/svg+xml"
	PNGMIME = "image/png"
)

// ErrNoScene is returned when there is no rendered scene to export.
var ErrNoScene = errors.New("export: no scene")

// DefaultName is the file name used for plots without a title.
const DefaultName = "plot"

// Options configure an export.
type Options struct {
	// Title is used for the file name; it defaults to the scene title.
	Title string

	// CustomStyles are extra CSS rules added to the document.
	CustomStyles []string

	// ElementStyles map selectors to CSS declarations.
	ElementStyles map[string]string

	// Minify minifies SVG output.
	Minify bool
}

// Artifact is an exported image.
type Artifact struct {
	Filename string
	MIME     string

	// DataURL is the base64 data URL of Bytes.
	DataURL string

	Bytes []byte
}

func newArtifact(name, ext, mime string, b []byte) *Artifact {
	return &Artifact{
		Filename: name + ext,
		MIME:     mime,
		DataURL:  "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b),
		Bytes:    b,
	}
}

// Filename returns the base file name for a plot title: the title
// without markup and surrounding space, or [DefaultName].
func Filename(title string) string {
	t := strings.TrimSpace(strings.ReplaceAll(strip.StripTags(title), "&nbsp;", " "))
	t = strings.NewReplacer("/", "_", "\\", "_").Replace(t)
	if t == "" {
		return DefaultName
	}
	return t
}

// prepare returns a shallow copy of s carrying the inlined fonts and
// styles and a plain text title.
func prepare(s *render.Scene, o Options) (*render.Scene, string, error) {
	if s == nil {
		return nil, "", ErrNoScene
	}
	c := *s
	c.Title = strings.ReplaceAll(strip.StripTags(s.Title), "&nbsp;", " ")
	c.Styles = append(append([]string{FontFaces()}, s.Styles...), Styles(o.CustomStyles, o.ElementStyles)...)
	title := o.Title
	if title == "" {
		title = c.Title
	}
	return &c, Filename(title), nil
}

// SVG exports the scene as an SVG document.
func SVG(s *render.Scene, o Options) (*Artifact, error) {
	c, name, err := prepare(s, o)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, c); err != nil {
		return nil, fmt.Errorf("export: writing svg: %w", err)
	}
	b := bytes.ReplaceAll(buf.Bytes(), []byte("&nbsp;"), []byte(" "))
	if o.Minify {
		m := minify.New()
		m.AddFunc("text/css", css.Minify)
		m.AddFunc(SVGMIME, svg.Minify)
		mb, err := m.Bytes(SVGMIME, b)
		if err != nil {
			return nil, fmt.Errorf("export: minifying svg: %w", err)
		}
		b = mb
	}
	return newArtifact(name, ".svg", SVGMIME, b), nil
}

// PNG exports the scene as a PNG image of scale times its size.
// A scale of 0 or less is 1.
func PNG(s *render.Scene, scale float64, o Options) (*Artifact, error) {
	if scale <= 0 {
		scale = 1
	}
	c, name, err := prepare(s, o)
	if err != nil {
		return nil, err
	}
	img, err := render.Rasterize(c, scale)
	if err != nil {
		return nil, fmt.Errorf("export: rasterizing: %w", err)
	}
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("export: encoding png: %w", err)
	}
	return newArtifact(name, ".png", PNGMIME, buf.Bytes()), nil
}
