// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"fmt"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/base/loop"
	"cogentcore.org/plotscope/plot/export"
	"cogentcore.org/plotscope/plot/model"
	"cogentcore.org/plotscope/plot/render"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Combined is a combined plot: child scopes stacked vertically, each
// rendering into its band of one shared scene.
type Combined struct {
	// ID is unique per combined plot.
	ID string

	opts  Options
	sched loop.Scheduler
	host  Host

	raw     []byte
	payload *model.CombinedPayload

	children []*Scope
	scenes   []*render.Scene
	scene    *render.Scene

	// settled is set once every child has rendered for the first time.
	settled   bool
	destroyed bool
}

// NewCombined returns an uninitialized combined plot whose children
// run on sched.
func NewCombined(sched loop.Scheduler, opts Options) *Combined {
	return &Combined{ID: "plot-" + uuid.NewString(), opts: opts, sched: sched}
}

// SetModelData sets the combined plot payload.
func (c *Combined) SetModelData(raw []byte) error {
	if c.destroyed {
		return ErrDestroyed
	}
	p, err := model.DecodeCombined(raw)
	if err != nil {
		return err
	}
	c.raw, c.payload = append([]byte(nil), raw...), p
	return nil
}

// Children returns the child scopes, top to bottom.
func (c *Combined) Children() []*Scope { return c.children }

// Scene returns the composed scene.
func (c *Combined) Scene() *render.Scene { return c.scene }

// Init standardizes all child plots concurrently, then initializes the
// child scopes in order on the calling loop. The composed scene is
// handed to the host once every child has rendered.
func (c *Combined) Init(host Host) error {
	switch {
	case c.destroyed:
		return ErrDestroyed
	case c.children != nil:
		return errors.New("scope: combined Init called twice")
	case c.payload == nil:
		return fmt.Errorf("%w: no model data", ErrNotReady)
	}
	c.host = host
	models, err := c.standardize()
	if err != nil {
		return err
	}
	n := len(models)
	c.children = make([]*Scope, n)
	c.scenes = make([]*render.Scene, n)
	for i, m := range models {
		ch := New(c.sched, c.opts)
		ch.load = c.childLoader(i)
		c.children[i] = ch
		ch.host = &childHost{c: c, i: i}
		ch.setState(Initializing)
		if err := ch.start(m); err != nil {
			return fmt.Errorf("combined plot child %d: %w", i, err)
		}
	}
	c.settled = true
	c.compose()
	if c.scene != nil {
		host.SizeChanged(int(c.scene.Width), true)
	}
	return nil
}

// standardize standardizes the child plots concurrently.
func (c *Combined) standardize() ([]*model.Model, error) {
	p := c.payload
	models := make([]*model.Model, len(p.Plots))
	var g errgroup.Group
	for i := range p.Plots {
		i := i
		g.Go(func() error {
			m, err := p.Child(i, c.opts.Model)
			models[i] = m
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}

func (c *Combined) childLoader(i int) func() (*model.Model, error) {
	return func() (*model.Model, error) { return c.payload.Child(i, c.opts.Model) }
}

// Update redraws every child.
func (c *Combined) Update() error {
	return c.each((*Scope).Update)
}

// UpdatePlot standardizes and redraws every child.
func (c *Combined) UpdatePlot() error {
	return c.each((*Scope).UpdatePlot)
}

// Destroy destroys every child and releases the scene.
func (c *Combined) Destroy() error {
	if c.destroyed {
		return ErrDestroyed
	}
	c.destroyed = true
	for _, ch := range c.children {
		if ch.Status() != Destroyed {
			errors.Log(ch.Destroy())
		}
	}
	c.scene = nil
	if ct := c.container(); ct != nil {
		ct.SetScene(nil)
	}
	return nil
}

func (c *Combined) container() Container {
	if c.host == nil {
		return nil
	}
	return c.host.Container()
}

func (c *Combined) each(f func(*Scope) error) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if !c.settled {
		return ErrNotReady
	}
	for i, ch := range c.children {
		if err := f(ch); err != nil {
			return fmt.Errorf("combined plot child %d: %w", i, err)
		}
	}
	return nil
}

// compose stacks the child scenes into one scene and hands it to the
// host. Each child keeps its own plot area clip.
func (c *Combined) compose() {
	if !c.settled || c.destroyed {
		return
	}
	w, h := 0.0, 0.0
	for _, s := range c.scenes {
		if s == nil {
			return
		}
		w = max(w, s.Width)
		h += s.Height
	}
	scene := render.NewScene(w, h)
	scene.Title = c.payload.Title
	y := 0.0
	for i, s := range c.scenes {
		g := scene.Root.Group(fmt.Sprintf("plot%d", i))
		g.Class = "plot-combined-child"
		g.Y = y
		clip := s.ClipArea
		for _, n := range s.Root.Children {
			if l, ok := n.(*render.Group); ok && l.Clip {
				cl := *l
				cl.ClipRect = &clip
				n = &cl
			}
			g.Add(n)
		}
		scene.Styles = append(scene.Styles, s.Styles...)
		y += s.Height
	}
	c.scene = scene
	if ct := c.container(); ct != nil && c.host.IsShowOutput() {
		ct.SetScene(scene)
	}
}

// SaveAsSVG exports the composed scene as SVG.
func (c *Combined) SaveAsSVG() (*export.Artifact, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	a, err := export.SVG(c.scene, c.exportOptions())
	if err != nil {
		return nil, err
	}
	return a, c.download(a)
}

// SaveAsPNG exports the composed scene as PNG at scale times its size.
func (c *Combined) SaveAsPNG(scale float64) (*export.Artifact, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	a, err := export.PNG(c.scene, scale, c.exportOptions())
	if err != nil {
		return nil, err
	}
	return a, c.download(a)
}

// ready composes the children of a combined plot whose host has not
// been shown yet, so that it can be exported.
func (c *Combined) ready() error {
	if c.destroyed {
		return ErrDestroyed
	}
	if !c.settled {
		return ErrNotReady
	}
	if c.scene == nil {
		for i, ch := range c.children {
			if c.scenes[i] == nil {
				c.scenes[i] = ch.exportScene()
			}
		}
		c.compose()
	}
	if c.scene == nil {
		return ErrNotReady
	}
	return nil
}

func (c *Combined) exportOptions() export.Options {
	o := export.Options{Title: c.payload.Title, Minify: c.opts.Minify}
	for _, ch := range c.children {
		o.CustomStyles = append(o.CustomStyles, ch.model.CustomStyles...)
		for k, v := range ch.model.ElementStyles {
			if o.ElementStyles == nil {
				o.ElementStyles = map[string]string{}
			}
			o.ElementStyles[k] = v
		}
	}
	return o
}

func (c *Combined) download(a *export.Artifact) error {
	if d, ok := c.host.(Downloader); ok {
		return d.Download(a)
	}
	return nil
}

// childHost embeds a child scope into its combined plot.
type childHost struct {
	c *Combined
	i int
}

func (h *childHost) IsShowOutput() bool {
	return h.c.host == nil || h.c.host.IsShowOutput()
}

// SizeChanged is reported once for the whole combined plot.
func (h *childHost) SizeChanged(width int, useMinWidth bool) {}

func (h *childHost) Container() Container { return h }

func (h *childHost) SetScene(s *render.Scene) {
	if s == nil {
		return
	}
	h.c.scenes[h.i] = s
	h.c.compose()
}

// UpdateMargin forwards to the combined host.
func (h *childHost) UpdateMargin() {
	if mu, ok := h.c.host.(MarginUpdater); ok {
		mu.UpdateMargin()
	}
}
