// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package observe provides an observable key-value map that forwards
// changes of a declared set of keys to subscribers, typically the
// channel back to the host that embeds a plot.
package observe

import (
	"fmt"
	"slices"
)

// Change is a single forwarded update.
type Change struct {
	Key   string
	Value any
}

// Map is an observable map. Only keys declared with [New] can be set;
// every successful [Map.Set] is forwarded to all subscribers, unless
// the map is locked, in which case the value is stored silently.
// A Map is not safe for concurrent use; it belongs to one event loop.
type Map struct {
	keys   []string
	values map[string]any
	subs   map[int]func(Change)
	nextID int
	locks  int
}

// New returns a new [Map] accepting the given keys.
func New(keys ...string) *Map {
	return &Map{
		keys:   slices.Clone(keys),
		values: make(map[string]any, len(keys)),
		subs:   map[int]func(Change){},
	}
}

// Keys returns the declared keys in declaration order.
func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

// Has returns whether key is declared.
func (m *Map) Has(key string) bool {
	return slices.Contains(m.keys, key)
}

// Set stores value under key and notifies subscribers.
// It returns an error if key was not declared.
func (m *Map) Set(key string, value any) error {
	if !m.Has(key) {
		return fmt.Errorf("observe.Map: key %q is not forwarded", key)
	}
	m.values[key] = value
	if m.locks > 0 {
		return nil
	}
	ch := Change{Key: key, Value: value}
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		m.subs[id](ch)
	}
	return nil
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Subscribe registers fn to receive changes, in subscription order.
// The returned function removes the subscription.
func (m *Map) Subscribe(fn func(Change)) (cancel func()) {
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() { delete(m.subs, id) }
}

// Lock suppresses forwarding until the matching [Map.Unlock].
// Locks nest.
func (m *Map) Lock() {
	m.locks++
}

// Unlock releases one [Map.Lock].
func (m *Map) Unlock() {
	if m.locks > 0 {
		m.locks--
	}
}

// Snapshot returns a copy of all stored values.
func (m *Map) Snapshot() map[string]any {
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
