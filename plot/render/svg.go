// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// FontFamily is the font family used for all text.
const FontFamily = "Latin Modern Sans"

// ClipID is the id of the plot-area clip path in SVG output.
const ClipID = "plotClip"

// errWriter keeps the first write error, since svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG writes the scene as a standalone SVG document.
func WriteSVG(w io.Writer, s *Scene) error {
	ew := &errWriter{w: w}
	sw := &svgWriter{canvas: svg.New(ew), clips: map[*Group]string{}}
	canvas := sw.canvas
	canvas.Start(iround(s.Width), iround(s.Height),
		fmt.Sprintf(`font-family="%s"`, FontFamily), `class="plot-svg"`)
	if s.Title != "" {
		canvas.Title(s.Title)
	}
	canvas.Def()
	if len(s.Styles) > 0 {
		canvas.Style("text/css", strings.Join(s.Styles, "\n"))
	}
	sw.clipPath(ClipID, s.ClipArea)
	s.Root.Walk(func(n Node) {
		if g, ok := n.(*Group); ok && g.Clip && g.ClipRect != nil {
			id := fmt.Sprintf("%s%d", ClipID, len(sw.clips)+1)
			sw.clips[g] = id
			sw.clipPath(id, *g.ClipRect)
		}
	})
	canvas.DefEnd()
	if s.Background != "" {
		canvas.Rect(0, 0, iround(s.Width), iround(s.Height), "fill:"+s.Background)
	}
	sw.group(s.Root)
	canvas.End()
	return ew.err
}

type svgWriter struct {
	canvas *svg.SVG

	// clips are the clip path ids of groups with their own clip rect.
	clips map[*Group]string
}

func (sw *svgWriter) clipPath(id string, c Rect) {
	sw.canvas.ClipPath(fmt.Sprintf(`id="%s"`, id))
	sw.canvas.Rect(iround(c.X), iround(c.Y), iround(c.W), iround(c.H))
	sw.canvas.ClipEnd()
}

func (sw *svgWriter) group(g *Group) {
	attrs := nodeAttrs(g.ID, g.Class)
	if g.X != 0 || g.Y != 0 {
		attrs = append(attrs, fmt.Sprintf(`transform="translate(%s,%s)"`, ftoa(g.X), ftoa(g.Y)))
	}
	if g.Clip {
		id := ClipID
		if cid, ok := sw.clips[g]; ok {
			id = cid
		}
		attrs = append(attrs, fmt.Sprintf(`clip-path="url(#%s)"`, id))
	}
	sw.canvas.Group(attrs...)
	for _, n := range g.Children {
		sw.node(n)
	}
	sw.canvas.Gend()
}

func (sw *svgWriter) node(n Node) {
	canvas := sw.canvas
	switch n := n.(type) {
	case *Group:
		sw.group(n)
	case *Rect:
		canvas.Rect(iround(n.X), iround(n.Y), iround(n.W), iround(n.H), styled(n.ID, n.Class, &n.Style)...)
	case *Line:
		canvas.Line(iround(n.X1), iround(n.Y1), iround(n.X2), iround(n.Y2), styled(n.ID, n.Class, &n.Style)...)
	case *Path:
		if len(n.Points) == 0 {
			return
		}
		canvas.Path(pathData(n.Points, n.Closed), styled(n.ID, n.Class, &n.Style)...)
	case *Circle:
		canvas.Circle(iround(n.CX), iround(n.CY), iround(n.R), styled(n.ID, n.Class, &n.Style)...)
	case *Text:
		attrs := styled(n.ID, n.Class, &n.Style)
		if n.Rotate != 0 {
			attrs = append(attrs, fmt.Sprintf(`transform="rotate(%s %s %s)"`, ftoa(n.Rotate), ftoa(n.X), ftoa(n.Y)))
		}
		canvas.Text(iround(n.X), iround(n.Y), n.Text, attrs...)
	case *Image:
		attrs := nodeAttrs(n.ID, "")
		if n.Opacity > 0 && n.Opacity < 1 {
			attrs = append(attrs, fmt.Sprintf(`opacity="%s"`, ftoa(n.Opacity)))
		}
		attrs = append(attrs, `preserveAspectRatio="none"`)
		canvas.Image(iround(n.X), iround(n.Y), iround(n.W), iround(n.H), n.Href, attrs...)
	}
}

// styled returns the svgo arguments for a node: attributes contain "="
// and the bare CSS string becomes the style attribute.
func styled(id, class string, st *Style) []string {
	return append(nodeAttrs(id, class), st.CSS())
}

func nodeAttrs(id, class string) []string {
	var attrs []string
	if id != "" {
		attrs = append(attrs, fmt.Sprintf(`id="%s"`, id))
	}
	if class != "" {
		attrs = append(attrs, fmt.Sprintf(`class="%s"`, class))
	}
	return attrs
}

func pathData(pts []Point, closed bool) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	if closed {
		b.WriteByte('Z')
	}
	return b.String()
}

func iround(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f))
}
