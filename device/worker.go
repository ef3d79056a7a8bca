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

package device

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/fairgo/state"
	libtsp "github.com/nabbar/fairgo/transport"
)

// enterRunning implements state.Hooks.EnterRunning: it starts the worker
// thread and returns immediately with the channel the worker will send
// its terminal error on, per spec section 4.1/5; the Running-state
// contract runs off the machine thread so the machine can still process
// an early Stop request.
func (d *Device) enterRunning() <-chan error {
	done := make(chan error, 1)
	go d.runWorker(done)
	return done
}

// runWorker drives PreRun, then the data-handler loops alongside Run or
// ConditionalRun, then PostRun, and finally requests Stop itself if
// nothing else has by the time every handler and Run/ConditionalRun has
// returned on its own.
func (d *Device) runWorker(done chan<- error) {
	if err := d.callHook(d.hooks.PreRun); err != nil {
		done <- err
		return
	}

	d.mu.Lock()
	names := make([]string, 0, len(d.handlers))
	for name, hs := range d.handlers {
		if len(hs) > 0 {
			names = append(names, name)
		}
	}
	d.mu.Unlock()

	var wg sync.WaitGroup
	var active int32
	for _, name := range names {
		atomic.AddInt32(&active, 1)
		wg.Add(1)
		go func(chName string) {
			defer wg.Done()
			defer atomic.AddInt32(&active, -1)
			d.driveChannel(chName)
		}(name)
	}

	var runErr error
	switch {
	case d.hooks.Run != nil:
		runErr = d.hooks.Run(d)
	case d.hooks.ConditionalRun != nil:
		for !d.machine.NewStatePending() {
			cont, err := d.hooks.ConditionalRun(d)
			if err != nil {
				runErr = err
				break
			}
			if !cont {
				break
			}
		}
	default:
		for atomic.LoadInt32(&active) > 0 && !d.machine.NewStatePending() {
			time.Sleep(10 * time.Millisecond)
		}
	}

	wg.Wait()

	if runErr == nil {
		runErr = d.callHook(d.hooks.PostRun)
	}

	if runErr == nil && !d.machine.NewStatePending() {
		d.machine.ChangeState(state.Stop)
	}

	done <- runErr
}

func (d *Device) callHook(fn func(d *Device) error) error {
	if fn == nil {
		return nil
	}
	return fn(d)
}

// driveChannel polls sub-socket 0 of the named channel and fans each
// message out to its registered handlers, dropping any that return
// false; it returns once no handler is left, a receive fails outright,
// or the machine has a transition pending.
func (d *Device) driveChannel(name string) {
	for {
		if d.machine.NewStatePending() {
			return
		}

		d.mu.Lock()
		ch := d.channels[name]
		hs := append([]DataHandler(nil), d.handlers[name]...)
		d.mu.Unlock()
		if ch == nil || len(hs) == 0 {
			return
		}

		msg, r := ch.Receive(0, 100)
		switch {
		case r == libtsp.ResultTimeout || r == libtsp.ResultInterrupted:
			continue
		case r < 0:
			d.log.WithFields(map[string]interface{}{"channel": name}).Warn("channel receive failed")
			return
		}

		keep := make([]DataHandler, 0, len(hs))
		for _, h := range hs {
			if h(msg) {
				keep = append(keep, h)
			}
		}

		d.mu.Lock()
		d.handlers[name] = keep
		d.mu.Unlock()

		if len(keep) == 0 {
			return
		}
	}
}
