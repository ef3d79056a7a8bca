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

// Package semaphore provides a context-embedding, weighted worker-count
// limiter: the bounded-concurrency primitive the shared-memory
// allocator uses to serialize concurrent region/segment creation
// (spec section 4.3's "concurrent allocations ... are serialized by the
// allocator"). A Semaphore is itself a context.Context, cancelled by
// DeferMain, so a caller that stores one in place of a plain
// context.Value loses nothing.
package semaphore

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// Semaphore bounds how many concurrent workers may hold it. A weight of
// -1 means unlimited: NewWorker/NewWorkerTry/WaitAll become no-ops.
type Semaphore interface {
	context.Context

	// NewWorker blocks until a slot is free or the Semaphore's context is
	// done, whichever comes first.
	NewWorker() error
	// NewWorkerTry acquires a slot without blocking, reporting success.
	NewWorkerTry() bool
	// DeferWorker releases a slot acquired by NewWorker/NewWorkerTry.
	DeferWorker()
	// WaitAll blocks until every currently held slot has been released.
	WaitAll() error
	// Weighted returns the configured capacity, or -1 if unlimited.
	Weighted() int64
	// DeferMain cancels the Semaphore's context and releases resources.
	DeferMain()
}

type weighted struct {
	ctx    context.Context
	cancel context.CancelFunc
	weight int64
	sem    *semaphore.Weighted
}

// New returns a Semaphore bounding concurrent workers to weight, or
// unlimited if weight <= 0... a weight of exactly -1 is the documented
// "unlimited" sentinel; 0 or any other non-positive value is clamped to
// -1 as well, since a semaphore nobody can ever acquire is never useful.
func New(ctx context.Context, weight int64) Semaphore {
	if ctx == nil {
		ctx = context.Background()
	}
	if weight <= 0 {
		weight = -1
	}

	cctx, cancel := context.WithCancel(ctx)
	w := &weighted{ctx: cctx, cancel: cancel, weight: weight}
	if weight > 0 {
		w.sem = semaphore.NewWeighted(weight)
	}
	return w
}

func (w *weighted) Deadline() (deadline time.Time, ok bool) { return w.ctx.Deadline() }

func (w *weighted) Done() <-chan struct{} { return w.ctx.Done() }

func (w *weighted) Err() error { return w.ctx.Err() }

func (w *weighted) Value(key any) any { return w.ctx.Value(key) }

func (w *weighted) Weighted() int64 { return w.weight }

func (w *weighted) NewWorker() error {
	if w.sem == nil {
		return nil
	}
	return w.sem.Acquire(w.ctx, 1)
}

func (w *weighted) NewWorkerTry() bool {
	if w.sem == nil {
		return true
	}
	return w.sem.TryAcquire(1)
}

func (w *weighted) DeferWorker() {
	if w.sem == nil {
		return
	}
	w.sem.Release(1)
}

// WaitAll acquires the full capacity (blocking until every outstanding
// worker has released its slot) and immediately releases it again.
func (w *weighted) WaitAll() error {
	if w.sem == nil {
		return nil
	}
	if err := w.sem.Acquire(w.ctx, w.weight); err != nil {
		return err
	}
	w.sem.Release(w.weight)
	return nil
}

func (w *weighted) DeferMain() { w.cancel() }

var maxSimultaneous atomic.Int64

func init() {
	maxSimultaneous.Store(int64(runtime.NumCPU()))
}

// MaxSimultaneous returns the process-wide default weight new callers
// should use when they have no more specific bound of their own.
func MaxSimultaneous() int64 {
	return maxSimultaneous.Load()
}

// SetSimultaneous sets the process-wide default weight and returns it;
// an invalid (non-positive) value is ignored and the current value is
// returned instead.
func SetSimultaneous(n int64) int64 {
	if n <= 0 {
		return maxSimultaneous.Load()
	}
	maxSimultaneous.Store(n)
	return n
}
