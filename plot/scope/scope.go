// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scope provides the plot controller: it owns one standardized
// model with its axes and items, the focus, legend, cursor and tips,
// and renders the plot into a scene for its host.
//
// A Scope is not safe for concurrent use. All its methods, and the
// callbacks it schedules, must run on the loop given to [New].
package scope

import (
	"fmt"
	"time"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/base/loop"
	"cogentcore.org/plotscope/base/observe"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/axis"
	"cogentcore.org/plotscope/plot/export"
	"cogentcore.org/plotscope/plot/model"
	"cogentcore.org/plotscope/plot/plots"
	"cogentcore.org/plotscope/plot/render"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"golang.org/x/text/language"
)

// States are the lifecycle states of a [Scope].
type States int32

const (
	Uninitialized States = iota
	Initializing
	Ready
	Updating
	Destroyed
)

var stateNames = [...]string{"uninitialized", "initializing", "ready", "updating", "destroyed"}

func (s States) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("States(%d)", s)
	}
	return stateNames[s]
}

var (
	// ErrDestroyed is returned by operations on a destroyed scope.
	ErrDestroyed = errors.New("scope: destroyed")

	// ErrNotReady is returned by operations that need an initialized
	// scope, or model data, before they have been provided.
	ErrNotReady = errors.New("scope: not ready")

	// ErrUnknownTip is returned for tip operations on a tip that does
	// not exist.
	ErrUnknownTip = errors.New("scope: unknown tip")
)

// Keys published on [Scope.State].
const (
	FocusKey     = "focus"
	ZoomLevelKey = "zoomLevel"
	WidthKey     = "width"
	StateKey     = "state"
)

// Container is the surface a scope renders into.
type Container interface {
	// SetScene replaces the displayed scene.
	SetScene(s *render.Scene)
}

// Host is the display embedding a scope.
type Host interface {
	// IsShowOutput returns whether the plot is visible. Updates of
	// hidden plots are skipped.
	IsShowOutput() bool

	// SizeChanged is called with the plot width after layout.
	SizeChanged(width int, useMinWidth bool)

	// Container returns the surface to render into.
	Container() Container
}

// MarginUpdater is implemented by hosts that adjust their own margins
// after each render. UpdateMargin is called one loop tick after the
// render that requested it.
type MarginUpdater interface {
	UpdateMargin()
}

// Downloader is implemented by hosts that save exported artifacts.
type Downloader interface {
	Download(a *export.Artifact) error
}

// Options configure a scope.
type Options struct {
	Model model.Options

	// StepHintX and StepHintY are the desired pixel distances between
	// gridlines.
	StepHintX, StepHintY float64

	// Locale formats numeric labels.
	Locale language.Tag

	// Minify minifies exported SVG.
	Minify bool
}

// DefaultOptions returns the default scope options.
func DefaultOptions() Options {
	return Options{
		Model:     model.DefaultOptions(),
		StepHintX: 150,
		StepHintY: 75,
		Locale:    language.English,
	}
}

// TipFade is how long an unpinned tip fades before it is removed.
const TipFade = 300 * time.Millisecond

// Scope is the controller of one plot.
type Scope struct {
	// ID is unique per scope.
	ID string

	// State publishes the focus, zoom level, width and lifecycle state
	// to the host.
	State *observe.Map

	opts  Options
	sched loop.Scheduler
	host  Host
	state States

	raw []byte

	// load standardizes the model; nil means standardizing raw.
	load func() (*model.Model, error)

	model *model.Model
	items []plots.Item

	xAxis, yAxis, yAxisR *axis.Axis

	focus, defaultFocus plot.Focus
	layout              plot.Layout
	mapping             plot.Mapping
	scene               *render.Scene

	tips      map[string]*Tip
	tipOrder  []string
	tipTimers map[string]loop.Timer

	cursor    *cursorPos
	highlight string

	dump *DumpState

	marginTimer loop.Timer

	hasLOD, hasUnordered bool
	unorderedWarned      bool
}

// New returns an uninitialized scope whose deferred work runs on sched.
func New(sched loop.Scheduler, opts Options) *Scope {
	if opts.StepHintX <= 0 {
		opts.StepHintX = 150
	}
	if opts.StepHintY <= 0 {
		opts.StepHintY = 75
	}
	return &Scope{
		ID:        "plot-" + uuid.NewString(),
		State:     observe.New(FocusKey, ZoomLevelKey, WidthKey, StateKey),
		opts:      opts,
		sched:     sched,
		tips:      map[string]*Tip{},
		tipTimers: map[string]loop.Timer{},
	}
}

// Status returns the lifecycle state.
func (sc *Scope) Status() States { return sc.state }

func (sc *Scope) setState(s States) {
	sc.state = s
	errors.Log(sc.State.Set(StateKey, s.String()))
}

// Model returns the standardized model, or nil before [Scope.Init].
func (sc *Scope) Model() *model.Model { return sc.model }

// Items returns the plot items.
func (sc *Scope) Items() []plots.Item { return sc.items }

// Axes returns the x, left y and right y axes. The right axis is nil
// for plots without one.
func (sc *Scope) Axes() (x, y, yr *axis.Axis) { return sc.xAxis, sc.yAxis, sc.yAxisR }

// Focus returns the visible window in axis space.
func (sc *Scope) Focus() plot.Focus { return sc.focus }

// Mapping returns the current pixel mapping.
func (sc *Scope) Mapping() plot.Mapping { return sc.mapping }

// Scene returns the last rendered scene.
func (sc *Scope) Scene() *render.Scene { return sc.scene }

func (sc *Scope) check() error {
	switch sc.state {
	case Destroyed:
		return ErrDestroyed
	case Uninitialized, Initializing:
		return ErrNotReady
	}
	return nil
}

// SetModelData sets the payload the scope standardizes. It takes
// effect on the next [Scope.Init] or [Scope.UpdatePlot].
func (sc *Scope) SetModelData(raw []byte) error {
	if sc.state == Destroyed {
		return ErrDestroyed
	}
	if !json.Valid(raw) {
		return fmt.Errorf("%w: not JSON", model.ErrInvalidPayload)
	}
	sc.raw = append([]byte(nil), raw...)
	return nil
}

// UpdateModelData merges the top-level fields of partial into the
// payload. It takes effect on the next [Scope.UpdatePlot].
func (sc *Scope) UpdateModelData(partial []byte) error {
	if sc.state == Destroyed {
		return ErrDestroyed
	}
	if sc.raw == nil {
		return sc.SetModelData(partial)
	}
	var base, over map[string]json.RawMessage
	if err := json.Unmarshal(sc.raw, &base); err != nil {
		return errors.Join(model.ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(partial, &over); err != nil {
		return errors.Join(model.ErrInvalidPayload, err)
	}
	for k, v := range over {
		base[k] = v
	}
	b, err := json.Marshal(base)
	if err != nil {
		return err
	}
	sc.raw = b
	return nil
}

// Init standardizes the model data, applies the stored or default
// focus, lays out and renders the plot, and reports the width to the
// host. Init must be called once per scope.
func (sc *Scope) Init(host Host) error {
	switch {
	case sc.state == Destroyed:
		return ErrDestroyed
	case sc.state != Uninitialized:
		return fmt.Errorf("scope: Init called in state %v", sc.state)
	case sc.raw == nil && sc.load == nil:
		return fmt.Errorf("%w: no model data", ErrNotReady)
	}
	sc.host = host
	sc.setState(Initializing)
	m, err := sc.loadModel()
	if err != nil {
		sc.setState(Uninitialized)
		return err
	}
	return sc.start(m)
}

// start lays out and renders a scope in the initializing state with
// its standardized model.
func (sc *Scope) start(m *model.Model) error {
	if err := sc.setModel(m); err != nil {
		sc.setState(Uninitialized)
		return err
	}
	sc.setFocus(sc.defaultFocus)
	sc.applyDump()
	sc.setState(Ready)
	if err := sc.Update(); err != nil {
		return err
	}
	sc.host.SizeChanged(int(sc.model.Width), true)
	return nil
}

// standardize rebuilds the model, the items, the axes and the
// default focus from the payload.
func (sc *Scope) standardize() error {
	m, err := sc.loadModel()
	if err != nil {
		return err
	}
	return sc.setModel(m)
}

func (sc *Scope) loadModel() (*model.Model, error) {
	load := sc.load
	if load == nil {
		load = func() (*model.Model, error) { return model.Standardize(sc.raw, sc.opts.Model) }
	}
	return load()
}

// setModel makes m the model of the scope and rebuilds the items,
// the axes and the default focus.
func (sc *Scope) setModel(m *model.Model) error {
	items, err := m.Items()
	if err != nil {
		return err
	}
	sc.model, sc.items = m, items
	sc.xAxis, sc.yAxis, sc.yAxisR = m.Axes()
	for _, a := range []*axis.Axis{sc.xAxis, sc.yAxis, sc.yAxisR} {
		if a != nil {
			a.SetLocale(sc.opts.Locale)
		}
	}
	sc.hasLOD, sc.hasUnordered, sc.unorderedWarned = false, false, false
	sc.defaultFocus = sc.calcDefaultFocus()
	errors.Log(sc.State.Set(WidthKey, m.Width))
	return nil
}

// Update redraws the plot without standardizing again. It does
// nothing while the host hides the plot.
func (sc *Scope) Update() error {
	if err := sc.check(); err != nil {
		return err
	}
	if sc.host != nil && !sc.host.IsShowOutput() {
		return nil
	}
	sc.setState(Updating)
	sc.render()
	sc.setState(Ready)
	if c := sc.container(); c != nil {
		c.SetScene(sc.scene)
	}
	sc.updateMargin()
	return nil
}

// UpdatePlot standardizes the model data again, resets the focus to
// the default and redraws.
func (sc *Scope) UpdatePlot() error {
	if err := sc.check(); err != nil {
		return err
	}
	if err := sc.standardize(); err != nil {
		return err
	}
	sc.setFocus(sc.defaultFocus)
	sc.dropStaleTips()
	return sc.Update()
}

func (sc *Scope) container() Container {
	if sc.host == nil {
		return nil
	}
	return sc.host.Container()
}

// updateMargin asks a [MarginUpdater] host to update its margins one
// loop tick later. Requests made before the tick are merged.
func (sc *Scope) updateMargin() {
	mu, ok := sc.host.(MarginUpdater)
	if !ok || sc.marginTimer != nil {
		return
	}
	sc.marginTimer = sc.sched.AfterFunc(0, func() {
		sc.marginTimer = nil
		if sc.state != Destroyed {
			mu.UpdateMargin()
		}
	})
}

// Destroy stops all pending timers and releases the scene. No
// scheduled callback runs against the scope afterward.
func (sc *Scope) Destroy() error {
	if sc.state == Destroyed {
		return ErrDestroyed
	}
	if sc.marginTimer != nil {
		sc.marginTimer.Stop()
		sc.marginTimer = nil
	}
	for id, t := range sc.tipTimers {
		t.Stop()
		delete(sc.tipTimers, id)
	}
	if c := sc.container(); c != nil {
		c.SetScene(nil)
	}
	sc.scene = nil
	sc.items = nil
	sc.tips = map[string]*Tip{}
	sc.tipOrder = nil
	sc.setState(Destroyed)
	return nil
}

// SaveAsSVG exports the current scene, with legend and pinned tips,
// as SVG. The artifact is also passed to a [Downloader] host.
func (sc *Scope) SaveAsSVG() (*export.Artifact, error) {
	if err := sc.check(); err != nil {
		return nil, err
	}
	a, err := export.SVG(sc.exportScene(), sc.exportOptions())
	if err != nil {
		return nil, err
	}
	return a, sc.download(a)
}

// SaveAsPNG exports the current scene as PNG at scale times its size.
func (sc *Scope) SaveAsPNG(scale float64) (*export.Artifact, error) {
	if err := sc.check(); err != nil {
		return nil, err
	}
	a, err := export.PNG(sc.exportScene(), scale, sc.exportOptions())
	if err != nil {
		return nil, err
	}
	return a, sc.download(a)
}

// exportScene returns the current scene. A scope whose host has not
// been shown yet is rendered without passing the scene to the host.
func (sc *Scope) exportScene() *render.Scene {
	if sc.scene == nil && sc.model != nil {
		sc.render()
	}
	return sc.scene
}

func (sc *Scope) exportOptions() export.Options {
	return export.Options{
		Title:         sc.model.Title,
		CustomStyles:  sc.model.CustomStyles,
		ElementStyles: sc.model.ElementStyles,
		Minify:        sc.opts.Minify,
	}
}

func (sc *Scope) download(a *export.Artifact) error {
	if d, ok := sc.host.(Downloader); ok {
		return d.Download(a)
	}
	return nil
}
