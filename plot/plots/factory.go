// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"fmt"
	"log/slog"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
)

// DefaultLODThreshold is the element count from which series are
// decimated when no threshold is configured.
const DefaultLODThreshold = 1500

// ErrUnknownType is returned for series of a type with no item variant.
var ErrUnknownType = errors.New("plots: unknown item type")

// lodTypes are the item types that have a decimating variant.
var lodTypes = map[plot.ItemTypes]bool{
	plot.Line: true, plot.Area: true, plot.Bar: true, plot.Stem: true, plot.Point: true,
}

// HasLOD returns whether items of type t can be decimated.
func HasLOD(t plot.ItemTypes) bool { return lodTypes[t] }

// New returns the item drawing s. Series of a type with a decimating
// variant get it when they hold at least lodThreshold elements and
// their x values never decrease; otherwise a warning is logged and the
// plain variant is used. A threshold of 0 or less means
// [DefaultLODThreshold]. s.IsLOD records the choice.
func New(s *plot.Series, lodThreshold int) (Item, error) {
	if lodThreshold <= 0 {
		lodThreshold = DefaultLODThreshold
	}
	s.IsLOD = false
	if HasLOD(s.Type) && len(s.Elements) >= lodThreshold {
		if Monotonic(s.Elements) {
			s.IsLOD = true
		} else {
			slog.Warn("x values are not monotonic, LOD is disabled", "item", s.ID, "type", s.Type)
		}
	}
	return create(s, lodThreshold)
}

// Recreate returns the item variant recorded in s by an earlier [New]:
// the decimating variant when s.IsLOD is set, the plain one otherwise.
func Recreate(s *plot.Series, lodThreshold int) (Item, error) {
	if lodThreshold <= 0 {
		lodThreshold = DefaultLODThreshold
	}
	if s.IsLOD && !HasLOD(s.Type) {
		s.IsLOD = false
	}
	return create(s, lodThreshold)
}

type constructor func(s *plot.Series, threshold int) Item

type variantKey struct {
	typ   plot.ItemTypes
	isLOD bool
}

// variants maps (type, isLOD) to the item constructor.
var variants = map[variantKey]constructor{
	{plot.Line, false}:        func(s *plot.Series, _ int) Item { return NewLine(s) },
	{plot.Bar, false}:         func(s *plot.Series, _ int) Item { return NewBar(s) },
	{plot.Stem, false}:        func(s *plot.Series, _ int) Item { return NewStem(s) },
	{plot.Area, false}:        func(s *plot.Series, _ int) Item { return NewArea(s) },
	{plot.Point, false}:       func(s *plot.Series, _ int) Item { return NewPoint(s) },
	{plot.ConstLine, false}:   func(s *plot.Series, _ int) Item { return NewConstLine(s) },
	{plot.ConstBand, false}:   func(s *plot.Series, _ int) Item { return NewConstBand(s) },
	{plot.Text, false}:        func(s *plot.Series, _ int) Item { return NewText(s) },
	{plot.TreeMapNode, false}: func(s *plot.Series, _ int) Item { return NewTreeMapNode(s) },
	{plot.HeatMap, false}:     func(s *plot.Series, _ int) Item { return NewHeatMap(s) },
	{plot.Raster, false}:      func(s *plot.Series, _ int) Item { return NewRaster(s) },
	{plot.Line, true}:         func(s *plot.Series, t int) Item { return NewLineLOD(s, t) },
	{plot.Bar, true}:          func(s *plot.Series, t int) Item { return NewBarLOD(s, t) },
	{plot.Stem, true}:         func(s *plot.Series, t int) Item { return NewStemLOD(s, t) },
	{plot.Area, true}:         func(s *plot.Series, t int) Item { return NewAreaLOD(s, t) },
	{plot.Point, true}:        func(s *plot.Series, t int) Item { return NewPointLOD(s, t) },
}

func create(s *plot.Series, threshold int) (Item, error) {
	c, ok := variants[variantKey{s.Type, s.IsLOD}]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, s.Type)
	}
	return c(s, threshold), nil
}

// Monotonic returns whether the x values of els never decrease.
// Elements without an x are ignored.
func Monotonic(els []plot.Element) bool {
	prev := -1
	for i := range els {
		if els[i].X.IsNone() {
			continue
		}
		if prev >= 0 && els[i].X.Less(els[prev].X) {
			return false
		}
		prev = i
	}
	return true
}
