// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualAfterFunc(t *testing.T) {
	m := NewManual()
	var got []string
	m.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	stopped := m.AfterFunc(15*time.Millisecond, func() { got = append(got, "x") })
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	m.Advance(5 * time.Millisecond)
	assert.Empty(t, got)
	m.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 0, m.Pending())
}

func TestManualEvery(t *testing.T) {
	m := NewManual()
	n := 0
	tm := m.Every(time.Second, func() { n++ })
	m.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, n)
	tm.Stop()
	m.Advance(5 * time.Second)
	assert.Equal(t, 3, n)
}

func TestManualPostFromTimer(t *testing.T) {
	m := NewManual()
	var got []int
	m.AfterFunc(time.Millisecond, func() {
		got = append(got, 1)
		m.Post(func() { got = append(got, 2) })
	})
	m.Post(func() { got = append(got, 0) })
	m.Advance(time.Millisecond)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestLoopStopBeforeFire(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	fired := make(chan struct{}, 1)
	done := make(chan struct{})
	l.Post(func() {
		tm := l.AfterFunc(time.Millisecond, func() { fired <- struct{}{} })
		tm.Stop()
		close(done)
	})
	<-done
	time.Sleep(20 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	default:
	}
}

func TestLoopOrder(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	out := make(chan int, 3)
	for i := 0; i < 3; i++ {
		i := i
		l.Post(func() { out <- i })
	}
	assert.Equal(t, 0, <-out)
	assert.Equal(t, 1, <-out)
	assert.Equal(t, 2, <-out)
}
