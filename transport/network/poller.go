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

package network

import (
	"time"

	libtsp "github.com/nabbar/fairgo/transport"
)

// poller multiplexes several network sockets by checking whether each
// socket's inbound channel holds a message; this avoids needing an epoll-style
// FD since streamSocket/natsSocket already buffer inbound messages on
// internal channels. Peek does not consume the message: CheckInput reports
// readiness, the caller still calls Receive to drain it.
type poller struct {
	sockets []libtsp.Socket
	ready   []bool
}

func newPoller(sockets ...libtsp.Socket) *poller {
	return &poller{sockets: sockets, ready: make([]bool, len(sockets))}
}

func (p *poller) Poll(timeoutMs int) error {
	for i := range p.ready {
		p.ready[i] = false
	}

	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	forever := timeoutMs < 0

	for {
		any := false
		for i, s := range p.sockets {
			if peekReady(s) {
				p.ready[i] = true
				any = true
			}
		}
		if any {
			return nil
		}
		if !forever && time.Now().After(deadline) {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
}

func (p *poller) CheckInput(i int) bool  { return i < len(p.ready) && p.ready[i] }
func (p *poller) CheckOutput(i int) bool { return i < len(p.ready) }

// peekReady reports whether a socket has a message queued without
// consuming it. streamSocket and natsSocket both expose this via their
// inbound channel length.
func peekReady(s libtsp.Socket) bool {
	switch v := s.(type) {
	case *streamSocket:
		return len(v.in) > 0
	case *natsSocket:
		return len(v.in) > 0
	default:
		return false
	}
}
