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

package shmem

import (
	"sync"

	"github.com/nabbar/fairgo/region"
)

// ackThread is the per-socket acknowledgement thread spec section 5
// describes: it drains descriptors the peer has released and invokes the
// owning region's Ack, which in turn runs the user's release callback.
// Started when the socket is created, stopped on Close.
type ackThread struct {
	mu      sync.Mutex
	regions map[string]region.Region

	queue chan Descriptor
	done  chan struct{}
	wg    sync.WaitGroup
}

func newAckThread() *ackThread {
	a := &ackThread{
		regions: make(map[string]region.Region),
		queue:   make(chan Descriptor, 256),
		done:    make(chan struct{}),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *ackThread) register(segment string, r region.Region) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.regions[segment] = r
}

func (a *ackThread) enqueue(d Descriptor) {
	select {
	case a.queue <- d:
	case <-a.done:
	}
}

func (a *ackThread) run() {
	defer a.wg.Done()
	for {
		select {
		case d := <-a.queue:
			a.mu.Lock()
			r, ok := a.regions[d.Segment]
			a.mu.Unlock()
			if ok {
				r.Ack(d.Offset, d.Size, nil)
			}
		case <-a.done:
			return
		}
	}
}

func (a *ackThread) stop() {
	close(a.done)
	a.wg.Wait()
}
