// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"math"
	"strconv"
	"strings"

	"cogentcore.org/plotscope/plot/num"
	"golang.org/x/text/number"
)

func pow(base, v float64) float64 {
	return math.Pow(base, v)
}

// calcLabels formats the gridlines at lines for a visible value span.
// Colliding time labels are regenerated at a finer unit, and time
// labels spanning an hour or more have their shared leading part
// moved out into the returned common string.
func (a *Axis) calcLabels(lines []float64, span num.Value) ([]string, string) {
	labels := make([]string, len(lines))
	for i, p := range lines {
		labels[i] = a.String(p, span)
	}
	if !a.Type.IsTime() {
		return labels, ""
	}
	if a.shouldRelabel(labels, span) {
		return a.relabel(lines, span)
	}
	if span.Cmp(num.Float(a.units.hour)) < 0 || len(labels) < 2 {
		return labels, ""
	}
	return commonPart(labels)
}

// String returns the gridline label at pct for a visible value span.
func (a *Axis) String(pct float64, span num.Value) string {
	switch a.Type {
	case Category:
		return a.categoryLabel(pct)
	case Time, NanoTime:
		return a.timeString(pct, span)
	case Log:
		return a.formatNumber(a.Pow(pct), a.fixed)
	}
	v := a.Value(pct).Float64()
	if math.Abs(v) < a.step*1e-6 {
		v = 0
	}
	return a.formatNumber(v, a.fixed)
}

func (a *Axis) formatNumber(v float64, fixed int) string {
	return a.printer.Sprintf("%v", number.Decimal(v, number.Scale(fixed)))
}

func (a *Axis) categoryLabel(pct float64) string {
	for i, p := range a.categoryLines {
		if math.Abs(p-pct) < 1e-9 {
			return a.categoryLabels[i]
		}
	}
	return ""
}

// TipValueString formats a data value on this axis for a tooltip.
// Time values show the full date, log values show the power with the
// exponent in parentheses, and numbers use the gridline precision
// unless full is set.
func (a *Axis) TipValueString(v num.Value, full bool) string {
	if v.IsNone() {
		return ""
	}
	switch a.Type {
	case Time, NanoTime:
		return a.timeTipString(v)
	case Log:
		return strconv.FormatFloat(pow(a.Base, v.Float64()), 'f', a.fixed, 64) +
			" (" + a.fixedString(v, full) + ")"
	}
	return a.fixedString(v, full)
}

func (a *Axis) fixedString(v num.Value, full bool) string {
	if full || v.IsBig() {
		return v.String()
	}
	return strconv.FormatFloat(v.Float64(), 'f', a.fixed, 64)
}

// commonPart finds the longest run of leading whitespace-separated
// tokens shared by all labels, short of the whole first label, and
// strips it from each. The returned common part has its first comma
// removed.
func commonPart(labels []string) ([]string, string) {
	tokens := strings.Fields(labels[0])
	common := ""
	for k := 1; k < len(tokens); k++ {
		prefix := strings.Join(tokens[:k], " ")
		all := true
		for _, l := range labels {
			if !strings.HasPrefix(l, prefix+" ") {
				all = false
				break
			}
		}
		if !all {
			break
		}
		common = prefix
	}
	if common == "" {
		return labels, ""
	}
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = strings.TrimSpace(strings.Replace(l, common, "", 1))
	}
	return out, strings.TrimSpace(strings.Replace(common, ",", "", 1))
}
