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
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	libmsg "github.com/nabbar/fairgo/message"
	libtsp "github.com/nabbar/fairgo/transport"
	libtag "github.com/nabbar/fairgo/transport/tag"
)

// natsSocket implements transport.Socket for the broadcast socket types
// (pub, sub, xpub, xsub) on top of a shared NATS connection: a channel's
// address authority becomes the subject name. xpub/xsub behave like
// pub/sub here since subscription-forwarding (the extra "x" semantics) has
// no NATS equivalent and no SPEC_FULL.md scenario exercises it directly.
type natsSocket struct {
	tag     libtag.Tag
	typ     libtsp.SockType
	mth     libtsp.Method
	addr    libtsp.Address
	subject string

	stats libtsp.Stats

	nc  *nats.Conn
	sub *nats.Subscription

	mu   sync.Mutex
	in   chan *nats.Msg
	done chan struct{}
	once sync.Once
}

func newNatsSocket(t libtag.Tag, typ libtsp.SockType, m libtsp.Method, addr libtsp.Address, nc *nats.Conn) *natsSocket {
	subject := strings.NewReplacer("/", ".", ":", "_").Replace(addr.Authority)

	return &natsSocket{
		tag:     t,
		typ:     typ,
		mth:     m,
		addr:    addr,
		subject: subject,
		nc:      nc,
		in:      make(chan *nats.Msg, 256),
		done:    make(chan struct{}),
	}
}

func (s *natsSocket) Transport() libtag.Tag     { return s.tag }
func (s *natsSocket) Type() libtsp.SockType     { return s.typ }
func (s *natsSocket) Method() libtsp.Method     { return s.mth }
func (s *natsSocket) Address() libtsp.Address   { return s.addr }
func (s *natsSocket) Stats() *libtsp.Stats      { return &s.stats }
func (s *natsSocket) FD() int                   { return -1 }

// Bind and Connect are both no-ops beyond subscribing where relevant: NATS
// has no listen/dial distinction, publishers just publish and subscribers
// subscribe regardless of bind-or-connect method.
func (s *natsSocket) Bind() error    { return s.attach() }
func (s *natsSocket) Connect() error { return s.attach() }

func (s *natsSocket) attach() error {
	if s.typ != libtsp.Sub && s.typ != libtsp.XSub {
		return nil
	}

	sub, err := s.nc.Subscribe(s.subject, func(m *nats.Msg) {
		select {
		case s.in <- m:
		case <-s.done:
		}
	})
	if err != nil {
		return ErrListen.Error(err)
	}

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()
	return nil
}

func (s *natsSocket) Send(msg libmsg.Message, timeoutMs int) libtsp.Result {
	return s.SendParts([]libmsg.Message{msg}, timeoutMs)
}

// SendParts concatenates parts with a NUL separator: NATS has no native
// multipart framing, and publish subjects carry whole payloads.
func (s *natsSocket) SendParts(parts []libmsg.Message, timeoutMs int) libtsp.Result {
	if s.typ != libtsp.Pub && s.typ != libtsp.XPub {
		return libtsp.ResultError
	}
	if len(parts) == 0 {
		return libtsp.ResultError
	}
	if parts[0].Transport() != s.tag {
		return libtsp.ResultError
	}

	total := 0
	var joined []byte
	for i, p := range parts {
		if i > 0 {
			joined = append(joined, 0)
		}
		joined = append(joined, p.Data()...)
		total += len(p.Data())
	}

	if err := s.nc.Publish(s.subject, joined); err != nil {
		return libtsp.ResultError
	}

	s.stats.AddSent(total)
	return libtsp.Result(total)
}

func (s *natsSocket) Receive(timeoutMs int) (libmsg.Message, libtsp.Result) {
	msgs, r := s.ReceiveParts(timeoutMs)
	if r < 0 {
		return nil, r
	}
	return msgs[0], r
}

func (s *natsSocket) ReceiveParts(timeoutMs int) ([]libmsg.Message, libtsp.Result) {
	var timeoutCh <-chan time.Time
	if timeoutMs > 0 {
		t := time.NewTimer(time.Duration(timeoutMs) * time.Millisecond)
		defer t.Stop()
		timeoutCh = t.C
	}

	if timeoutMs == 0 {
		select {
		case <-s.done:
		default:
			if len(s.in) == 0 {
				return nil, libtsp.ResultTimeout
			}
		}
	}

	select {
	case m := <-s.in:
		parts := strings.Split(string(m.Data), "\x00")
		out := make([]libmsg.Message, len(parts))
		total := 0
		for i, p := range parts {
			out[i] = libmsg.NewFromBytes(s.tag, []byte(p), nil, nil)
			total += len(p)
		}
		s.stats.AddRecv(total)
		return out, libtsp.Result(total)

	case <-timeoutCh:
		return nil, libtsp.ResultTimeout

	case <-s.done:
		return nil, libtsp.ResultInterrupted
	}
}

func (s *natsSocket) Close() error {
	s.once.Do(func() {
		close(s.done)

		s.mu.Lock()
		sub := s.sub
		s.mu.Unlock()

		if sub != nil {
			_ = sub.Unsubscribe()
		}
	})
	return nil
}
