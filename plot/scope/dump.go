// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"slices"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/plots"
	"github.com/jinzhu/copier"
)

// DumpState is the view state of a scope kept across redisplays of
// the same plot.
type DumpState struct {
	Focus *plot.Focus `json:"focus,omitempty"`

	// Hidden are the series ids of hidden items.
	Hidden []string `json:"hidden,omitempty"`

	// Tips are the pinned tips.
	Tips []TipState `json:"tips,omitempty"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// TipState is a pinned tip in a [DumpState].
type TipState struct {
	Item  int `json:"item"`
	Index int `json:"index"`

	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	TargetX float64 `json:"targetx"`
	TargetY float64 `json:"targety"`
}

// DumpState returns the current view state.
func (sc *Scope) DumpState() (*DumpState, error) {
	if err := sc.check(); err != nil {
		return nil, err
	}
	f := sc.focus
	d := &DumpState{Focus: &f, Width: sc.model.Width, Height: sc.model.Height}
	for _, it := range sc.items {
		if s := it.Series(); !s.ShowItem {
			d.Hidden = append(d.Hidden, s.ID)
		}
	}
	for _, t := range sc.Tips() {
		if !t.Sticking || t.Ref.Sample != nil {
			continue
		}
		d.Tips = append(d.Tips, TipState{Item: t.Ref.Item, Index: t.Ref.Index, X: t.X, Y: t.Y, TargetX: t.TargetX, TargetY: t.TargetY})
	}
	return d, nil
}

// SetDumpState restores a view state saved by [Scope.DumpState]. It is
// applied at once to a ready scope, and by [Scope.Init] otherwise.
func (sc *Scope) SetDumpState(d *DumpState) error {
	if sc.state == Destroyed {
		return ErrDestroyed
	}
	c := &DumpState{}
	if err := copier.CopyWithOption(c, d, copier.Option{DeepCopy: true}); err != nil {
		return err
	}
	sc.dump = c
	if sc.state != Ready {
		return nil
	}
	sc.applyDump()
	return sc.Update()
}

// applyDump applies and forgets the stored view state.
func (sc *Scope) applyDump() {
	d := sc.dump
	if d == nil {
		return
	}
	sc.dump = nil
	if d.Width > 0 {
		sc.model.Width = d.Width
		errors.Log(sc.State.Set(WidthKey, d.Width))
	}
	if d.Height > 0 {
		sc.model.Height = d.Height
	}
	if d.Focus != nil {
		sc.setFocus(*d.Focus)
	}
	for _, it := range sc.items {
		s := it.Series()
		s.ShowItem = !slices.Contains(d.Hidden, s.ID)
	}
	for _, ts := range d.Tips {
		if ts.Item < 0 || ts.Item >= len(sc.items) || ts.Index < 0 || ts.Index >= len(sc.items[ts.Item].Series().Elements) {
			continue
		}
		ref := plots.ElementRef{Item: ts.Item, Index: ts.Index}
		t := &Tip{ID: ref.ID(sc.items[ts.Item]), Ref: ref, Sticking: true, X: ts.X, Y: ts.Y, TargetX: ts.TargetX, TargetY: ts.TargetY}
		if _, ok := sc.tips[t.ID]; ok {
			sc.clearTip(t.ID)
		}
		sc.addTip(t)
	}
}

// SetSize resizes the plot and reports the new width to the host.
func (sc *Scope) SetSize(width, height float64) error {
	if err := sc.check(); err != nil {
		return err
	}
	if width > 0 {
		sc.model.Width = width
		errors.Log(sc.State.Set(WidthKey, width))
	}
	if height > 0 {
		sc.model.Height = height
	}
	if err := sc.Update(); err != nil {
		return err
	}
	sc.host.SizeChanged(int(sc.model.Width), false)
	return nil
}
