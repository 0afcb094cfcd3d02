// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"strings"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/colors"
	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// DefaultFontSize is the text size used when a text style has none.
const DefaultFontSize = 12

// Rasterize draws the scene into a new image of scale times its size.
// Dash arrays are not rendered.
func Rasterize(s *Scene, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(s.Width * scale))
	h := int(math.Ceil(s.Height * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: cannot rasterize a %gx%g scene", s.Width, s.Height)
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}
	r := &rasterizer{
		scene: s,
		dst:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
	}
	if c, ok := paint(s.Background, 0); ok {
		draw.Draw(r.dst, r.dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	}
	r.group(s.Root, 0, 0, r.dst.Bounds())
	return r.dst, r.err
}

type rasterizer struct {
	scene *Scene
	dst   *image.RGBA
	scale float64
	err   error
}

// paint parses a style color with its opacity.
func paint(c string, opacity float64) (color.RGBA, bool) {
	if c == "" || c == "none" {
		return color.RGBA{}, false
	}
	col, err := colors.FromString(c)
	if errors.Log(err) != nil {
		return color.RGBA{}, false
	}
	if opacity > 0 && opacity < 1 {
		col = colors.WithOpacity(col, opacity)
	}
	return col, col.A > 0
}

func (r *rasterizer) pt(x, y, tx, ty float64) Point {
	return Point{(x + tx) * r.scale, (y + ty) * r.scale}
}

func (r *rasterizer) group(g *Group, tx, ty float64, clip image.Rectangle) {
	tx += g.X
	ty += g.Y
	if g.Clip {
		c := r.scene.ClipArea
		if g.ClipRect != nil {
			c = *g.ClipRect
		}
		p0 := r.pt(c.X, c.Y, tx, ty)
		p1 := r.pt(c.X+c.W, c.Y+c.H, tx, ty)
		clip = clip.Intersect(image.Rect(int(math.Floor(p0.X)), int(math.Floor(p0.Y)), int(math.Ceil(p1.X)), int(math.Ceil(p1.Y))))
	}
	for _, n := range g.Children {
		r.node(n, tx, ty, clip)
	}
}

func (r *rasterizer) node(n Node, tx, ty float64, clip image.Rectangle) {
	switch n := n.(type) {
	case *Group:
		r.group(n, tx, ty, clip)
	case *Rect:
		pts := []Point{
			r.pt(n.X, n.Y, tx, ty), r.pt(n.X+n.W, n.Y, tx, ty),
			r.pt(n.X+n.W, n.Y+n.H, tx, ty), r.pt(n.X, n.Y+n.H, tx, ty),
		}
		r.shape(pts, true, &n.Style, clip)
	case *Line:
		pts := []Point{r.pt(n.X1, n.Y1, tx, ty), r.pt(n.X2, n.Y2, tx, ty)}
		r.shape(pts, false, &n.Style, clip)
	case *Path:
		pts := make([]Point, len(n.Points))
		for i, p := range n.Points {
			pts[i] = r.pt(p.X, p.Y, tx, ty)
		}
		r.shape(pts, n.Closed, &n.Style, clip)
	case *Circle:
		const segs = 24
		pts := make([]Point, segs)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / segs
			pts[i] = r.pt(n.CX+n.R*math.Cos(a), n.CY+n.R*math.Sin(a), tx, ty)
		}
		r.shape(pts, true, &n.Style, clip)
	case *Text:
		r.text(n, tx, ty, clip)
	case *Image:
		r.image(n, tx, ty, clip)
	}
}

func (r *rasterizer) shape(pts []Point, closed bool, st *Style, clip image.Rectangle) {
	if len(pts) == 0 {
		return
	}
	if closed {
		if c, ok := paint(st.Fill, st.FillOpacity); ok {
			fill(r.dst, [][]Point{pts}, c, clip)
		}
	}
	if !st.HasStroke() {
		return
	}
	c, ok := paint(st.Stroke, st.StrokeOpacity)
	if !ok {
		return
	}
	if closed {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	fill(r.dst, strokeQuads(pts, st.StrokeWidth*r.scale), c, clip)
}

// strokeQuads returns one quad per segment of the polyline, all with
// the same winding so overlaps do not cancel.
func strokeQuads(pts []Point, width float64) [][]Point {
	hw := max(width, 1) / 2
	var quads [][]Point
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		ex, ey := dx/l*hw/2, dy/l*hw/2
		quads = append(quads, []Point{
			{a.X + nx - ex, a.Y + ny - ey}, {b.X + nx + ex, b.Y + ny + ey},
			{b.X - nx + ex, b.Y - ny + ey}, {a.X - nx - ex, a.Y - ny - ey},
		})
	}
	return quads
}

// fill rasterizes the polygons within their bounding box, clipped.
func fill(dst *image.RGBA, polys [][]Point, c color.RGBA, clip image.Rectangle) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				return
			}
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 0) {
		return
	}
	bb := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
	bb = bb.Intersect(clip).Intersect(dst.Bounds())
	if bb.Empty() {
		return
	}
	z := vector.NewRasterizer(bb.Dx(), bb.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(bb.Min.X), float64(bb.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	z.Draw(dst, bb, image.NewUniform(c), image.Point{})
}

func (r *rasterizer) text(t *Text, tx, ty float64, clip image.Rectangle) {
	if t.Text == "" {
		return
	}
	c, ok := paint(t.Fill, t.FillOpacity)
	if !ok {
		return
	}
	size := t.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	face, err := Face(size*r.scale, t.Bold)
	if err != nil {
		r.err = err
		return
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	w := float64(font.MeasureString(face, t.Text)) / 64
	ax := 0.0
	switch t.Anchor {
	case Middle:
		ax = w / 2
	case End:
		ax = w
	}
	p := r.pt(t.X, t.Y, tx, ty)
	dst := r.dst.SubImage(clip).(*image.RGBA)
	src := image.NewUniform(c)
	if t.Rotate == 0 {
		d := font.Drawer{Dst: dst, Src: src, Face: face, Dot: fixed.Point26_6{X: fixed.Int26_6((p.X - ax) * 64), Y: fixed.Int26_6(p.Y * 64)}}
		d.DrawString(t.Text)
		return
	}
	m := face.Metrics()
	asc := m.Ascent.Ceil()
	tmp := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w))+1, asc+m.Descent.Ceil()))
	d := font.Drawer{Dst: tmp, Src: src, Face: face, Dot: fixed.P(0, asc)}
	d.DrawString(t.Text)
	rot := transform.Rotate(tmp, t.Rotate, &transform.RotationOptions{ResizeBounds: true})

	// place the rotated anchor point on p
	th := t.Rotate * math.Pi / 180
	vx := ax - float64(tmp.Bounds().Dx())/2
	vy := float64(asc) - float64(tmp.Bounds().Dy())/2
	rx := vx*math.Cos(th) - vy*math.Sin(th)
	ry := vx*math.Sin(th) + vy*math.Cos(th)
	rb := rot.Bounds()
	x0 := int(math.Round(p.X - (float64(rb.Dx())/2 + rx)))
	y0 := int(math.Round(p.Y - (float64(rb.Dy())/2 + ry)))
	draw.Draw(dst, image.Rect(x0, y0, x0+rb.Dx(), y0+rb.Dy()), rot, rb.Min, draw.Over)
}

func (r *rasterizer) image(n *Image, tx, ty float64, clip image.Rectangle) {
	src, err := DecodeDataURL(n.Href)
	if err != nil {
		slog.Error("render: cannot draw image", "id", n.ID, "err", err)
		return
	}
	p0 := r.pt(n.X, n.Y, tx, ty)
	p1 := r.pt(n.X+n.W, n.Y+n.H, tx, ty)
	rect := image.Rect(int(math.Round(p0.X)), int(math.Round(p0.Y)), int(math.Round(p1.X)), int(math.Round(p1.Y)))
	dst := r.dst.SubImage(clip).(*image.RGBA)
	if n.Opacity <= 0 || n.Opacity >= 1 {
		xdraw.BiLinear.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	xdraw.BiLinear.Scale(tmp, tmp.Bounds(), src, src.Bounds(), draw.Src, nil)
	mask := image.NewUniform(color.Alpha{A: uint8(n.Opacity * 255)})
	draw.DrawMask(dst, rect, tmp, image.Point{}, mask, image.Point{}, draw.Over)
}

// DecodeDataURL decodes a base64 image data URL.
func DecodeDataURL(url string) (image.Image, error) {
	_, data, ok := strings.Cut(url, ";base64,")
	if !ok || !strings.HasPrefix(url, "data:") {
		return nil, fmt.Errorf("render: not a base64 data URL")
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("render: decoding data URL: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decoding image: %w", err)
	}
	return img, nil
}
