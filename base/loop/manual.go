// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loop

import (
	"slices"
	"time"
)

// Manual is a [Scheduler] driven explicitly by the caller, for tests
// and for batch rendering where no real time passes. Posted functions
// run on [Manual.Flush]; timers fire on [Manual.Advance].
type Manual struct {
	now    time.Duration
	queue  []func()
	timers []*manualTimer
	seq    int
}

// NewManual returns a new [Manual] scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	m       *Manual
	at      time.Duration
	period  time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.m.timers = slices.DeleteFunc(t.m.timers, func(o *manualTimer) bool { return o == t })
	return true
}

func (m *Manual) Post(f func()) {
	m.queue = append(m.queue, f)
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	return m.add(d, 0, f)
}

func (m *Manual) Every(d time.Duration, f func()) Timer {
	return m.add(d, d, f)
}

func (m *Manual) add(d, period time.Duration, f func()) *manualTimer {
	m.seq++
	t := &manualTimer{m: m, at: m.now + d, period: period, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of queued functions plus active timers.
func (m *Manual) Pending() int {
	return len(m.queue) + len(m.timers)
}

// Flush runs posted functions until the queue is empty, including
// functions posted while flushing.
func (m *Manual) Flush() {
	for len(m.queue) > 0 {
		f := m.queue[0]
		m.queue = m.queue[1:]
		f()
	}
}

// Advance moves virtual time forward by d, firing every timer that
// comes due in order of due time, and flushing posted functions after
// each firing.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	m.Flush()
	for {
		t := m.next(end)
		if t == nil {
			break
		}
		m.now = t.at
		if t.period > 0 {
			t.at += t.period
		} else {
			t.fired = true
			m.timers = slices.DeleteFunc(m.timers, func(o *manualTimer) bool { return o == t })
		}
		t.f()
		m.Flush()
	}
	m.now = end
}

func (m *Manual) next(end time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.at > end {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
