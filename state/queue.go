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
	"sync"
	"time"
)

// Entry is one state arrival recorded on a Queue: the state reached, and
// an optional caller-defined signal carried alongside it.
type Entry struct {
	State  State
	Signal interface{}
}

// Queue is the bounded FIFO of state arrivals spec section 4.1 describes:
// the only synchronization primitive external code uses to rendezvous
// with the state machine. Push is called by the machine on every
// transition; WaitFor/WaitForState are called by external waiters, which
// block until a matching entry arrives, an arbitrary predicate is
// satisfied, a timeout elapses, or the Error state is observed.
type Queue struct {
	mu   sync.Mutex
	cond *sync.Cond

	items    []Entry
	capacity int
	closed   bool
}

// NewQueue returns an empty Queue holding at most capacity recent
// entries; once full, Push drops the oldest entry to make room for the
// newest, since a waiter only ever needs the freshest arrival.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 16
	}
	q := &Queue{capacity: capacity}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push records a state arrival and wakes every waiter.
func (q *Queue) Push(e Entry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	if len(q.items) >= q.capacity {
		q.items = q.items[1:]
	}
	q.items = append(q.items, e)
	q.cond.Broadcast()
}

// Close unblocks every current and future waiter with ErrQueueClosed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

func (q *Queue) last() (Entry, bool) {
	if len(q.items) == 0 {
		return Entry{}, false
	}
	return q.items[len(q.items)-1], true
}

// WaitForState blocks until target is the most recently arrived state,
// the Error state arrives instead (reported as ErrInterrupted, unless
// target itself is Error), the queue closes, or timeoutMs elapses.
// timeoutMs < 0 waits forever.
func (q *Queue) WaitForState(target State, timeoutMs int) error {
	return q.WaitFor(func(e Entry) (bool, error) {
		if e.State == target {
			return true, nil
		}
		if e.State == Error && target != Error {
			return true, ErrInterrupted.Error(nil)
		}
		return false, nil
	}, timeoutMs)
}

// WaitFor blocks until pred reports a match (or an error to abort with)
// against the most recently arrived entry, the queue closes, or
// timeoutMs elapses. pred is re-evaluated against the latest entry every
// time a new one is pushed.
func (q *Queue) WaitFor(pred func(Entry) (bool, error), timeoutMs int) error {
	var deadline time.Time
	hasDeadline := timeoutMs >= 0
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if e, ok := q.last(); ok {
			if match, err := pred(e); match {
				return err
			}
		}
		if q.closed {
			return ErrQueueClosed.Error(nil)
		}
		if hasDeadline {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return ErrWaitTimeout.Error(fmt.Errorf("no matching state after %dms", timeoutMs))
			}
			q.waitWithTimeout(remaining)
		} else {
			q.cond.Wait()
		}
	}
}

// waitWithTimeout is sync.Cond.Wait bounded by d: a timer broadcasts if
// no other waker fires first. Must be called with q.mu held.
func (q *Queue) waitWithTimeout(d time.Duration) {
	timer := time.AfterFunc(d, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer timer.Stop()
	q.cond.Wait()
}
