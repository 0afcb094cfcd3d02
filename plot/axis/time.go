// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"fmt"
	"math"
	"time"

	"cogentcore.org/plotscope/plot/num"
	"github.com/shopspring/decimal"
)

// units are the calendar thresholds of a time axis, in axis units:
// milliseconds for [Time] and nanoseconds for [NanoTime].
// Months are 30 days and years are 365 days.
type units struct {
	unit, second, minute, hour, day, month, year float64
}

func unitsFor(t Types) units {
	u := 1.0
	if t == NanoTime {
		u = 1e6
	}
	return units{
		unit:   u,
		second: 1000 * u,
		minute: 1000 * 60 * u,
		hour:   1000 * 60 * 60 * u,
		day:    1000 * 60 * 60 * 24 * u,
		month:  1000 * 60 * 60 * 24 * 30 * u,
		year:   1000 * 60 * 60 * 24 * 365 * u,
	}
}

// addIntervals appends the next candidate time steps. The sequence
// starts at 1 and 5 and then grows additively by an amount that
// depends on the calendar band of the previous step.
func (u units) addIntervals(n int, intervals []float64) []float64 {
	if n == 0 {
		return append(intervals, 1, 5)
	}
	prev := intervals[n-1]
	var next float64
	switch {
	case prev < u.unit:
		next = prev + 5
	case prev == u.unit:
		next = prev + 4*u.unit
	case prev < u.second:
		next = prev + 5*u.unit
	case prev == u.second:
		next = prev + 4*u.second
	case prev < u.minute:
		next = prev + 5*u.second
	case prev == u.minute:
		next = prev + 4*u.minute
	case prev < u.hour:
		next = prev + 5*u.minute
	case prev < u.day:
		next = prev + u.hour
	case prev < u.month:
		next = prev + u.day
	case prev < u.year:
		next = prev + 10*u.day
	default:
		next = prev + u.year
	}
	return append(intervals, next)
}

// normalizeValue snaps gridline values on a [Time] axis with steps
// longer than a day to the nearest day, month or year boundary in the
// axis timezone.
func (a *Axis) normalizeValue(v num.Value, step float64) num.Value {
	u := a.units
	if a.Type != Time || step <= u.day {
		return v
	}
	ms := v.Float64()
	t := time.UnixMilli(int64(math.Floor(ms))).In(a.Timezone)
	var start, next time.Time
	switch {
	case step <= u.month:
		start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, a.Timezone)
		next = start.AddDate(0, 0, 1)
	case step <= u.year:
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, a.Timezone)
		next = start.AddDate(0, 1, 0)
	default:
		start = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, a.Timezone)
		next = start.AddDate(1, 0, 0)
	}
	s := float64(start.UnixMilli())
	e := float64(next.UnixMilli())
	if e-ms > ms-s {
		return num.Float(s)
	}
	return num.Float(e)
}

var (
	billion = decimal.NewFromInt(1_000_000_000)
	million = decimal.NewFromInt(1_000_000)
)

// instant converts an axis value to a time and the nanoseconds within
// its second.
func (a *Axis) instant(v num.Value) (time.Time, int64) {
	if a.Type == NanoTime {
		d := v.Decimal().Round(0)
		nanos := d.Mod(billion).IntPart()
		if nanos < 0 {
			nanos += 1_000_000_000
		}
		return time.Unix(0, d.IntPart()).In(a.Timezone), nanos
	}
	ms := math.Ceil(v.Float64()*1000) / 1000
	whole := math.Floor(ms)
	micros := math.Round((ms - whole) * 1000)
	t := time.UnixMilli(int64(whole)).Add(time.Duration(micros) * time.Microsecond).In(a.Timezone)
	return t, int64(t.Nanosecond())
}

// timeString formats the gridline at pct with a layout chosen by
// comparing the visible span against the calendar thresholds.
func (a *Axis) timeString(pct float64, span num.Value) string {
	u := a.units
	v := a.Value(pct)
	t, nanos := a.instant(v)
	lte := func(limit float64) bool { return span.Cmp(num.Float(limit)) <= 0 }
	switch {
	case a.Type == Time && lte(u.second):
		return t.Format(".000")
	case a.Type == Time && lte(u.minute):
		return t.Format("04:05.000")
	case lte(u.hour):
		if a.Type != NanoTime {
			return t.Format("15:04:05")
		}
		ms := v.Decimal().Div(million).Round(0)
		if ms.LessThan(decimal.NewFromFloat(u.second)) {
			return fmt.Sprintf(".%09d", nanos)
		}
		return t.Format("15:04:05") + fmt.Sprintf(".%09d", nanos)
	case lte(u.day):
		return t.Format("2006 Jan 02, 15:04")
	case lte(u.month):
		return t.Format("2006 Jan 02")
	case lte(u.year):
		return t.Format("2006 Jan")
	}
	return t.Format("2006")
}

// shouldRelabel reports whether time labels collide at a span above
// one second (one unit for nanotime).
func (a *Axis) shouldRelabel(labels []string, span num.Value) bool {
	u := a.units
	above := (a.Type == Time && span.Cmp(num.Float(u.second)) > 0) ||
		(a.Type == NanoTime && span.Cmp(num.Float(u.unit)) > 0)
	return above && !unique(labels)
}

// relabel regenerates labels one calendar unit finer than span.
func (a *Axis) relabel(lines []float64, span num.Value) ([]string, string) {
	u := a.units
	lte := func(limit float64) bool { return span.Cmp(num.Float(limit)) <= 0 }
	var s float64
	switch {
	case a.Type == NanoTime && lte(u.second):
		s = u.unit
	case lte(u.minute):
		s = u.second
	case lte(u.hour):
		s = u.minute
	case lte(u.day):
		s = u.hour
	case lte(u.month):
		s = u.day
	case lte(u.year):
		s = u.month
	default:
		s = u.year
	}
	fine := num.Float(s - 1)
	if a.Type == NanoTime {
		fine = fine.ToBig()
	}
	return a.calcLabels(lines, fine)
}

func unique(labels []string) bool {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return false
		}
		seen[l] = true
	}
	return true
}

// timeTipString is the full date and time of v, down to milliseconds
// for [Time] and nanoseconds for [NanoTime].
func (a *Axis) timeTipString(v num.Value) string {
	t, nanos := a.instant(v)
	if a.Type == NanoTime {
		return t.Format("2006 Jan 02 Mon, 15:04:05") + fmt.Sprintf(".%09d", nanos)
	}
	return t.Format("2006 Jan 02 Mon, 15:04:05 .000")
}
