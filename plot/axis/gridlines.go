// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"log/slog"
	"math"

	"cogentcore.org/plotscope/plot/num"
)

// maxSteps bounds the step search.
const maxSteps = 1 << 20

// numFixs returns the fraction digits to use for each candidate step of
// the 1, 2.5, 5 decade sequence starting at 1e-6.
func numFixs(t Types) []int {
	lo := 0
	if t == Log {
		lo = 1
	}
	fixs := make([]int, 0, 54)
	for i := 0; i < 18; i++ {
		f := max(6-i, lo)
		mid := f
		if i <= 6 {
			mid = f + 1
		}
		fixs = append(fixs, f, mid, f)
	}
	return fixs
}

// SetGridlines chooses a step for the visible part [left, right] of the
// axis (fractions of the axis span) such that the number of gridlines is
// closest to count, then computes gridline positions and labels.
// marginLeft and marginRight are fractions of the span reserved on either
// side, used only to size time labels. Calling it with right < left is
// reported and leaves the axis unchanged.
func (a *Axis) SetGridlines(left, right, count, marginLeft, marginRight float64) {
	if right < left {
		slog.Error("axis: cannot set right coord < left coord", "left", left, "right", right)
		return
	}
	a.pctL = left
	a.pctR = right
	a.pctSpan = right - left
	if a.Type.IsTime() {
		a.marginValL = a.valSpan.MulFloat(marginLeft)
		a.marginValR = a.valSpan.MulFloat(marginRight)
	}
	if a.Type != Category {
		a.setSteps(a.visibleSpan(), count)
	}
	a.setLinesAndLabels(left, right)
}

// visibleSpan is the value span between the visible bounds.
func (a *Axis) visibleSpan() float64 {
	return a.valSpan.MulFloat(a.pctSpan).Float64()
}

// setSteps walks the candidate steps in order while the distance
// between the resulting count and the desired count keeps shrinking.
// The distance is unimodal along the sequence, so the first step that
// does not improve ends the search, and ties keep the earlier step.
func (a *Axis) setSteps(span, count float64) {
	if count <= 0 || math.IsNaN(count) {
		slog.Error("axis: missing gridline count, using 1")
		count = 1
	}
	best := 0
	bestDiff := math.Inf(1)
	for i := 0; i < maxSteps; i++ {
		step := a.interval(i)
		if math.IsInf(step, 0) || step <= 0 {
			break
		}
		diff := math.Abs(span/step - count)
		if !(diff < bestDiff) {
			break
		}
		best, bestDiff = i, diff
	}
	a.step = a.interval(best)
	a.fixed = 0
	if best < len(a.fixs) {
		a.fixed = a.fixs[best]
	}
}

// interval returns candidate step i, extending the sequence as needed.
func (a *Axis) interval(i int) float64 {
	for i >= len(a.intervals) {
		n := len(a.intervals)
		if a.Type.IsTime() {
			a.intervals = a.units.addIntervals(n, a.intervals)
			continue
		}
		bs := 1e-6
		if n > 0 {
			bs = a.intervals[n-1] / 5 * 10
		}
		a.intervals = append(a.intervals, bs, 2.5*bs, 5*bs)
	}
	return a.intervals[i]
}

func (a *Axis) setLinesAndLabels(left, right float64) {
	lines := a.calcLines(left, right)
	span := a.valSpan.Sub(a.marginValL.Add(a.marginValR)).MulFloat(a.pctSpan)
	labels, common := a.calcLabels(lines, span)
	a.gridlines = lines
	a.gridlineLabels = labels
	switch {
	case common == "":
		a.labelWithCommon = a.Label
	case a.Label != "":
		a.labelWithCommon = a.Label + " " + common
	default:
		a.labelWithCommon = common
	}
}

func (a *Axis) calcLines(left, right float64) []float64 {
	if a.Type == Category {
		return a.categoryAxisLines(left, right)
	}
	return a.defaultAxisLines(left, right)
}

func (a *Axis) categoryAxisLines(left, right float64) []float64 {
	lo := a.Percent(a.Value(left))
	hi := a.Percent(a.Value(right))
	var lines []float64
	for _, p := range a.categoryLines {
		if p >= lo && p <= hi {
			lines = append(lines, p)
		}
	}
	return lines
}

// defaultAxisLines starts at the first multiple of the step at or above
// the left value and walks right in whole steps.
func (a *Axis) defaultAxisLines(left, right float64) []float64 {
	step := num.Float(a.step)
	limit := a.Value(right).AddFloat(1e-12)
	value := a.Value(left)
	if value.IsBig() {
		value = value.Div(step).Ceil().Mul(step)
	} else {
		value = a.normalizeValue(num.Float(math.Ceil(value.Float64()/a.step)*a.step), a.step)
	}
	var lines []float64
	for !limit.Less(value) && len(lines) < maxSteps {
		lines = append(lines, a.Percent(value))
		value = a.normalizeValue(value.Add(step), a.step)
	}
	return lines
}
