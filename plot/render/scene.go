// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render holds the retained scene that plots draw into and
// the backends that turn a scene into SVG markup or a raster image.
package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Anchors are the horizontal text anchors.
type Anchors int32

const (
	Start Anchors = iota
	Middle
	End
)

func (a Anchors) String() string {
	switch a {
	case Middle:
		return "middle"
	case End:
		return "end"
	}
	return "start"
}

// Style is the paint of a node. Colors are CSS color strings, and an
// empty color or "none" paints nothing. Opacities are in [0,1], and 0
// means fully opaque; use an empty color to hide a paint.
type Style struct {
	Fill          string
	FillOpacity   float64
	Stroke        string
	StrokeOpacity float64
	StrokeWidth   float64
	DashArray     string

	FontSize float64
	Bold     bool
	Anchor   Anchors
}

// HasFill returns whether the style paints a fill.
func (s *Style) HasFill() bool { return s.Fill != "" && s.Fill != "none" }

// HasStroke returns whether the style paints a stroke.
func (s *Style) HasStroke() bool {
	return s.Stroke != "" && s.Stroke != "none" && s.StrokeWidth > 0
}

// CSS returns the style as an inline CSS declaration list.
func (s *Style) CSS() string {
	var b strings.Builder
	decl := func(k, v string) {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(v)
		b.WriteByte(';')
	}
	if s.HasFill() {
		decl("fill", s.Fill)
		if s.FillOpacity > 0 && s.FillOpacity < 1 {
			decl("fill-opacity", ftoa(s.FillOpacity))
		}
	} else {
		decl("fill", "none")
	}
	if s.HasStroke() {
		decl("stroke", s.Stroke)
		decl("stroke-width", ftoa(s.StrokeWidth))
		if s.StrokeOpacity > 0 && s.StrokeOpacity < 1 {
			decl("stroke-opacity", ftoa(s.StrokeOpacity))
		}
		if s.DashArray != "" {
			decl("stroke-dasharray", s.DashArray)
		}
	}
	if s.FontSize > 0 {
		decl("font-size", ftoa(s.FontSize)+"px")
		if s.Bold {
			decl("font-weight", "bold")
		}
		if s.Anchor != Start {
			decl("text-anchor", s.Anchor.String())
		}
	}
	return b.String()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Node is an element of a scene.
type Node interface {
	// NodeID returns the id of the node, which may be empty.
	NodeID() string
}

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Group is a container of nodes, translated by (X, Y). A clipped group
// is clipped to the plot area of its scene, or to ClipRect when set.
type Group struct {
	ID       string
	Class    string
	X, Y     float64
	Clip     bool
	ClipRect *Rect
	Children []Node
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	ID, Class  string
	X, Y, W, H float64
	Style
}

// Line is a straight segment.
type Line struct {
	ID, Class      string
	X1, Y1, X2, Y2 float64
	Style
}

// Path is a polyline, or a polygon when Closed.
type Path struct {
	ID, Class string
	Points    []Point
	Closed    bool
	Style
}

// Circle is a circle centered on (CX, CY).
type Circle struct {
	ID, Class string
	CX, CY, R float64
	Style
}

// Text is a single line of text with its baseline at Y. Rotate is in
// degrees, clockwise, around (X, Y).
type Text struct {
	ID, Class string
	X, Y      float64
	Text      string
	Rotate    float64
	Style
}

// Image is a raster image given as a data URL.
type Image struct {
	ID         string
	X, Y, W, H float64
	Href       string
	Opacity    float64
}

func (g *Group) NodeID() string  { return g.ID }
func (r *Rect) NodeID() string   { return r.ID }
func (l *Line) NodeID() string   { return l.ID }
func (p *Path) NodeID() string   { return p.ID }
func (c *Circle) NodeID() string { return c.ID }
func (t *Text) NodeID() string   { return t.ID }
func (i *Image) NodeID() string  { return i.ID }

// Add appends n to the group and returns it.
func (g *Group) Add(n Node) Node {
	g.Children = append(g.Children, n)
	return n
}

// Group returns the direct child group with the given id, creating it
// at the end of the group if needed.
func (g *Group) Group(id string) *Group {
	for _, c := range g.Children {
		if cg, ok := c.(*Group); ok && cg.ID == id {
			return cg
		}
	}
	cg := &Group{ID: id}
	g.Add(cg)
	return cg
}

// Find returns the first node with the given id in the group's subtree.
func (g *Group) Find(id string) Node {
	for _, c := range g.Children {
		if c.NodeID() == id {
			return c
		}
		if cg, ok := c.(*Group); ok {
			if n := cg.Find(id); n != nil {
				return n
			}
		}
	}
	return nil
}

// Remove deletes every node with the given id from the subtree and
// reports whether any was found.
func (g *Group) Remove(id string) bool {
	return g.RemoveFunc(func(n Node) bool { return n.NodeID() == id })
}

// RemoveFunc deletes every node of the subtree for which f is true.
func (g *Group) RemoveFunc(f func(n Node) bool) bool {
	found := false
	kept := g.Children[:0]
	for _, c := range g.Children {
		if f(c) {
			found = true
			continue
		}
		if cg, ok := c.(*Group); ok && cg.RemoveFunc(f) {
			found = true
		}
		kept = append(kept, c)
	}
	clear(g.Children[len(kept):])
	g.Children = kept
	return found
}

// Clear removes all children.
func (g *Group) Clear() {
	g.Children = nil
}

// Walk calls f for every node of the subtree in drawing order.
func (g *Group) Walk(f func(n Node)) {
	for _, c := range g.Children {
		f(c)
		if cg, ok := c.(*Group); ok {
			cg.Walk(f)
		}
	}
}

// Scene is a drawing of a plot: a tree of nodes plus the plot-area
// clip rectangle, the title and any CSS used by the SVG backend.
type Scene struct {
	Width, Height float64
	Title         string

	// ClipArea is the plot area used by clipped groups.
	ClipArea Rect

	// Background is the CSS fill behind the scene, or empty for none.
	Background string

	// Styles are CSS blocks emitted into the SVG defs.
	Styles []string

	Root *Group
}

// NewScene returns an empty scene of the given size.
func NewScene(width, height float64) *Scene {
	return &Scene{
		Width:    width,
		Height:   height,
		ClipArea: Rect{W: width, H: height},
		Root:     &Group{ID: "root"},
	}
}

// Layer returns the top-level group with the given id, creating it.
func (s *Scene) Layer(id string) *Group {
	return s.Root.Group(id)
}

// Count returns the number of nodes in the scene.
func (s *Scene) Count() int {
	n := 0
	s.Root.Walk(func(Node) { n++ })
	return n
}

// String summarizes the scene for debugging.
func (s *Scene) String() string {
	return fmt.Sprintf("Scene(%gx%g, %d nodes)", s.Width, s.Height, s.Count())
}
