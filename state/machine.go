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

package state

import (
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Hooks holds the user- and device-supplied callbacks the machine thread
// invokes exactly once on each entry to the associated state. A nil hook
// is a no-op. EnterRunning is special: per spec section 4.1/5, the
// Running-state contract (PreRun, then Run or ConditionalRun, then
// PostRun) executes on a separate worker thread, not the machine thread,
// so EnterRunning only starts that work and returns a channel the worker
// sends its terminal error on when it returns; the machine thread does
// not block on it until a Stop request leaving Running is processed.
type Hooks struct {
	Init         func() error
	BindFinal    func() error
	ConnectFinal func() error
	InitTask     func() error
	EnterRunning func() <-chan error
	ResetTask    func() error
	Reset        func() error
	Teardown     func() error
}

// StateMachine drains a request queue of Transitions and invokes hooks,
// publishing every state reached onto a Queue external callers wait on
// via WaitForState. Exactly one goroutine may run RunStateMachine at a
// time.
type StateMachine struct {
	hooks Hooks
	log   *logrus.Entry

	current atomic.Uint32
	reqCh   chan Transition

	interrupted atomic.Bool
	runningDone <-chan error

	queue *Queue
	errs  *multierror.Error
}

// New returns a StateMachine in Idle, with an empty request queue of the
// given capacity and a Queue of the given state-arrival history depth.
func New(hooks Hooks, log *logrus.Entry, requestCapacity, queueCapacity int) *StateMachine {
	if requestCapacity <= 0 {
		requestCapacity = 32
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	m := &StateMachine{
		hooks: hooks,
		log:   log,
		reqCh: make(chan Transition, requestCapacity),
		queue: NewQueue(queueCapacity),
	}
	m.current.Store(uint32(Idle))
	return m
}

// CurrentState returns the state last reached.
func (m *StateMachine) CurrentState() State {
	return State(m.current.Load())
}

// Queue exposes the state-arrival Queue for WaitForState/WaitFor.
func (m *StateMachine) Queue() *Queue { return m.queue }

// NewStatePending reports whether a transition request is waiting to be
// processed, or the machine has been interrupted; the flag the Running
// worker thread polls to know when to return.
func (m *StateMachine) NewStatePending() bool {
	return len(m.reqCh) > 0 || m.interrupted.Load()
}

// Interrupted reports whether a fatal signal has been observed.
func (m *StateMachine) Interrupted() bool {
	return m.interrupted.Load()
}

// Interrupt sets the global interruption flag and requests End, the
// translation spec section 7 requires of SIGINT/SIGTERM. End is enqueued
// only when the current state is Idle or Error; from any other state the
// request is rejected and only the flag is set.
func (m *StateMachine) Interrupt() {
	m.interrupted.Store(true)
	_ = m.ChangeState(End)
}

// ChangeStateOrThrow validates tr against the current state and enqueues
// it; an illegal request is rejected immediately and the machine is
// never touched.
func (m *StateMachine) ChangeStateOrThrow(tr Transition) error {
	cur := m.CurrentState()
	if _, ok := Next(cur, tr); !ok {
		return ErrInvalidTransition.Error(fmt.Errorf("%s not allowed from %s", tr, cur))
	}

	select {
	case m.reqCh <- tr:
		return nil
	default:
		return ErrQueueClosed.Error(fmt.Errorf("request queue full"))
	}
}

// ChangeState is ChangeStateOrThrow reporting acceptance as a bool.
func (m *StateMachine) ChangeState(tr Transition) bool {
	return m.ChangeStateOrThrow(tr) == nil
}

// WaitForState blocks until state arrives or Error is observed.
func (m *StateMachine) WaitForState(target State, timeoutMs int) error {
	return m.queue.WaitForState(target, timeoutMs)
}

// Errors returns the accumulated errors returned by state hooks, each of
// which moved the machine into Error, or nil if none occurred.
func (m *StateMachine) Errors() error {
	if m.errs == nil {
		return nil
	}
	return m.errs.ErrorOrNil()
}

// RunStateMachine is the machine thread: it consumes requests until
// Exiting is reached, applying one transition at a time and never
// starting a later state's hook before the current one's has returned.
func (m *StateMachine) RunStateMachine() error {
	for tr := range m.reqCh {
		m.apply(tr)
		if m.CurrentState() == Exiting {
			m.queue.Close()
			return m.Errors()
		}
	}
	return m.Errors()
}

func (m *StateMachine) apply(tr Transition) {
	cur := m.CurrentState()

	if cur == Running && tr == Stop && m.runningDone != nil {
		if err := <-m.runningDone; err != nil {
			m.fail(err)
			return
		}
	}

	to, ok := Next(cur, tr)
	if !ok {
		m.log.WithFields(logrus.Fields{"from": cur.String(), "transition": tr.String()}).
			Error("transition not allowed in current state")
		return
	}

	m.setState(to)
	m.log.WithFields(logrus.Fields{"from": cur.String(), "to": to.String(), "transition": tr.String()}).
		Info("state transition")

	if err := m.runHook(to); err != nil {
		m.fail(err)
		return
	}

	if IsAutoPending(to) {
		m.apply(Auto)
	}
}

func (m *StateMachine) fail(err error) {
	m.errs = multierror.Append(m.errs, err)
	m.log.WithError(err).Error("state hook failed, entering Error")
	m.setState(Error)
	m.drainRequests()
}

func (m *StateMachine) drainRequests() {
	for {
		select {
		case <-m.reqCh:
		default:
			return
		}
	}
}

func (m *StateMachine) setState(s State) {
	m.current.Store(uint32(s))
	m.queue.Push(Entry{State: s})
}

func call(fn func() error) error {
	if fn == nil {
		return nil
	}
	return fn()
}

func (m *StateMachine) runHook(to State) error {
	switch to {
	case InitializingDevice:
		return call(m.hooks.Init)
	case Bound:
		return call(m.hooks.BindFinal)
	case DeviceReady:
		return call(m.hooks.ConnectFinal)
	case InitializingTask:
		return call(m.hooks.InitTask)
	case Running:
		if m.hooks.EnterRunning == nil {
			ch := make(chan error, 1)
			ch <- nil
			m.runningDone = ch
		} else {
			m.runningDone = m.hooks.EnterRunning()
		}
		return nil
	case ResettingTask:
		return call(m.hooks.ResetTask)
	case ResettingDevice:
		return call(m.hooks.Reset)
	case Exiting:
		return call(m.hooks.Teardown)
	}
	return nil
}
