/*
 * MIT License
 *
 * Copyright (c) 2026 FairGo Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package event implements the named-subscriber publish mechanism spec
// section 4.6 requires of the property store: subscribing twice under the
// same name replaces the previous subscription instead of delivering
// twice. Grounded on no direct teacher equivalent; kept in the same small,
// mutex-guarded style as atomic/value.go.
package event

import "sync"

// Kind distinguishes the two events a successful property Set emits.
type Kind uint8

const (
	KindTyped Kind = iota
	KindStringified
)

// Event is what a subscriber receives. For KindTyped, Value carries the
// original typed value; for KindStringified, Text carries its stringified
// form. Type names the declared value type in both cases.
type Event struct {
	Key   string
	Kind  Kind
	Type  string
	Value interface{}
	Text  string
}

// Handler is a subscriber callback, invoked synchronously on the
// publisher's goroutine.
type Handler func(Event)

// Manager is a named-subscriber event bus. Publish calls every current
// handler in subscription order; re-subscribing under an existing name
// replaces that handler in place rather than adding a second delivery.
type Manager struct {
	mu    sync.Mutex
	order []string
	subs  map[string]Handler
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{subs: make(map[string]Handler)}
}

// Subscribe registers h under name, replacing any handler already
// registered under that name.
func (m *Manager) Subscribe(name string, h Handler) error {
	if name == "" {
		return ErrEmptySubscriberName.Error(nil)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.subs[name]; !exists {
		m.order = append(m.order, name)
	}
	m.subs[name] = h
	return nil
}

// Unsubscribe removes name's handler, if any.
func (m *Manager) Unsubscribe(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.subs[name]; !exists {
		return
	}
	delete(m.subs, name)

	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Publish invokes every current subscriber with ev, in subscription order.
// Handlers run synchronously on the caller's goroutine, matching spec
// section 5's "subscribers' callbacks run on the setter's thread".
func (m *Manager) Publish(ev Event) {
	m.mu.Lock()
	handlers := make([]Handler, 0, len(m.order))
	for _, name := range m.order {
		handlers = append(handlers, m.subs[name])
	}
	m.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Len reports the current subscriber count, mainly for tests.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}
