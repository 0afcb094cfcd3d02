// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loop provides a single-threaded event loop on which all
// plot state is mutated, with cancellable one-shot and repeating timers.
// Functions posted to a loop run one at a time in the order posted,
// so code running on the loop never needs locking.
package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {

	// Stop cancels the timer. It returns false if the timer had
	// already fired (for one-shot timers) or was already stopped.
	// When Stop is called on the loop, the callback is guaranteed
	// not to run afterward.
	Stop() bool
}

// Scheduler is the interface used by plot components to defer work.
type Scheduler interface {

	// Post runs f on the loop after everything already posted.
	Post(f func())

	// AfterFunc runs f on the loop once, after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer

	// Every runs f on the loop every d until the timer is stopped.
	Every(d time.Duration, f func()) Timer
}

// Loop is a [Scheduler] backed by a goroutine that runs posted
// functions serially. The zero value is not usable; use [New].
type Loop struct {
	queue chan func()

	mu      sync.Mutex
	pending []func()
}

// New returns a new [Loop]. Call [Loop.Run] to start processing.
func New() *Loop {
	return &Loop{queue: make(chan func(), 64)}
}

// Run processes posted functions until the context is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.queue:
			f()
			l.drain()
		}
	}
}

// drain runs functions that overflowed the queue.
func (l *Loop) drain() {
	l.mu.Lock()
	over := l.pending
	l.pending = nil
	l.mu.Unlock()
	for _, f := range over {
		f()
	}
}

func (l *Loop) Post(f func()) {
	select {
	case l.queue <- f:
	default:
		l.mu.Lock()
		l.pending = append(l.pending, f)
		l.mu.Unlock()
	}
}

func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &timer{}
	t.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.fire() {
				f()
			}
		})
	})
	return t
}

func (l *Loop) Every(d time.Duration, f func()) Timer {
	t := &ticker{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				l.Post(func() {
					if !t.stopped.Load() {
						f()
					}
				})
			}
		}
	}()
	return t
}

type timer struct {
	t     *time.Timer
	state atomic.Int32 // 0 pending, 1 fired, 2 stopped
}

func (t *timer) fire() bool {
	return t.state.CompareAndSwap(0, 1)
}

func (t *timer) Stop() bool {
	t.t.Stop()
	return t.state.CompareAndSwap(0, 2)
}

type ticker struct {
	ticker  *time.Ticker
	done    chan struct{}
	stopped atomic.Bool
}

func (t *ticker) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.ticker.Stop()
	close(t.done)
	return true
}
