// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cycling provides a display box that shows one of its
// children at a time and moves to the next one periodically.
package cycling

import (
	"time"

	"cogentcore.org/plotscope/base/loop"
	"cogentcore.org/plotscope/plot/render"
	"cogentcore.org/plotscope/plot/scope"
)

// Child is a display shown by a [Box], such as a [scope.Scope].
type Child interface {
	Scene() *render.Scene
}

// Box shows its children one at a time, in order, changing every
// Period. Each box keeps its own position.
type Box struct {
	// Period is the time each child is shown. A zero period shows the
	// current child until the children change.
	Period time.Duration

	sched     loop.Scheduler
	container scope.Container
	children  []Child
	index     int
	timer     loop.Timer
}

// New returns a box drawing into c whose timer runs on sched.
func New(sched loop.Scheduler, period time.Duration, c scope.Container) *Box {
	return &Box{Period: period, sched: sched, container: c}
}

// Index returns the position of the shown child.
func (b *Box) Index() int { return b.index }

// Children returns the children.
func (b *Box) Children() []Child { return b.children }

// Running returns whether the box is cycling.
func (b *Box) Running() bool { return b.timer != nil }

// SetChildren replaces the children, stopping the cycle first, then
// draws and starts cycling again.
func (b *Box) SetChildren(cs ...Child) {
	b.Stop()
	b.children = cs
	if b.index >= len(cs) {
		b.index = 0
	}
	b.Start()
}

// Start draws the current child and starts cycling. A running cycle
// is replaced.
func (b *Box) Start() {
	b.Stop()
	b.draw()
	if b.Period <= 0 || len(b.children) == 0 {
		return
	}
	b.timer = b.sched.Every(b.Period, b.next)
}

// Stop stops cycling. The shown child stays.
func (b *Box) Stop() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Box) next() {
	if b.index >= len(b.children)-1 {
		b.index = 0
	} else {
		b.index++
	}
	b.draw()
}

// Render returns the shown child, or nil for an empty box.
func (b *Box) Render() Child {
	if b.index >= len(b.children) {
		return nil
	}
	return b.children[b.index]
}

// MinHeight returns the height of the tallest child, so the box does
// not change size as it cycles.
func (b *Box) MinHeight() float64 {
	h := 0.0
	for _, c := range b.children {
		if s := c.Scene(); s != nil {
			h = max(h, s.Height)
		}
	}
	return h
}

func (b *Box) draw() {
	c := b.Render()
	if c == nil || b.container == nil {
		return
	}
	b.container.SetScene(c.Scene())
}
