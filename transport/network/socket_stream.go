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
	"net"
	"sync"
	"sync/atomic"
	"time"

	libmsg "github.com/nabbar/fairgo/message"
	libtsp "github.com/nabbar/fairgo/transport"
	libtag "github.com/nabbar/fairgo/transport/tag"
)

// streamSocket implements transport.Socket for the connection-oriented
// socket types (pair, push, pull, req, rep, dealer, router) over TCP or
// Unix-domain streams. Grounded on the teacher's socket/client and
// socket/server test packages: ErrorFilter on teardown, DefaultBufferSize
// buffered I/O.
type streamSocket struct {
	tag  libtag.Tag
	typ  libtsp.SockType
	mth  libtsp.Method
	addr libtsp.Address
	opt  libtsp.Options

	stats libtsp.Stats

	mu       sync.Mutex
	ln       net.Listener
	peers    []*peerConn
	rrIndex  uint64

	in    chan inboundParts
	errc  chan error
	done  chan struct{}
	once  sync.Once
}

func newStreamSocket(t libtag.Tag, typ libtsp.SockType, m libtsp.Method, addr libtsp.Address, opt libtsp.Options) *streamSocket {
	return &streamSocket{
		tag:  t,
		typ:  typ,
		mth:  m,
		addr: addr,
		opt:  opt,
		in:   make(chan inboundParts, 64),
		errc: make(chan error, 8),
		done: make(chan struct{}),
	}
}

func (s *streamSocket) Transport() libtag.Tag    { return s.tag }
func (s *streamSocket) Type() libtsp.SockType    { return s.typ }
func (s *streamSocket) Method() libtsp.Method    { return s.mth }
func (s *streamSocket) Address() libtsp.Address  { return s.addr }
func (s *streamSocket) Stats() *libtsp.Stats     { return &s.stats }
func (s *streamSocket) FD() int                  { return -1 }

func netNetwork(a libtsp.Address) string {
	if a.Scheme == libtsp.SchemeIPC {
		return "unix"
	}
	return "tcp"
}

func (s *streamSocket) Bind() error {
	ln, err := net.Listen(netNetwork(s.addr), s.addr.Authority)
	if err != nil {
		return ErrListen.Error(err)
	}

	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	go s.acceptLoop(ln)
	return nil
}

func (s *streamSocket) acceptLoop(ln net.Listener) {
	for {
		c, err := ln.Accept()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.errc <- libtsp.ErrorFilter(err)
			}
			return
		}
		s.addPeer(c.RemoteAddr().String(), c)
	}
}

func (s *streamSocket) Connect() error {
	c, err := net.Dial(netNetwork(s.addr), s.addr.Authority)
	if err != nil {
		return ErrDial.Error(err)
	}
	s.addPeer(s.addr.Authority, c)
	return nil
}

func (s *streamSocket) addPeer(id string, c net.Conn) {
	p := newPeerConn(id, c)

	s.mu.Lock()
	s.peers = append(s.peers, p)
	s.stats.AddPeer()
	s.mu.Unlock()

	go p.recvLoop(s.in, s.errc)
}

func (s *streamSocket) removePeer(p *peerConn) {
	s.mu.Lock()
	for i, q := range s.peers {
		if q == p {
			s.peers = append(s.peers[:i], s.peers[i+1:]...)
			s.stats.RemovePeer()
			break
		}
	}
	s.mu.Unlock()
	_ = p.close()
}

// pickTarget selects the peer a push/dealer/req send goes to: round-robin
// over currently connected peers. pair expects exactly one.
func (s *streamSocket) pickTarget() (*peerConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.peers) == 0 {
		return nil, ErrNoPeer.Error(nil)
	}

	idx := atomic.AddUint64(&s.rrIndex, 1) % uint64(len(s.peers))
	return s.peers[idx], nil
}

func (s *streamSocket) targetByIdentity(id []byte) (*peerConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.peers {
		if p.id == string(id) {
			return p, nil
		}
	}
	return nil, ErrRouterUnknownIdentity.Error(nil)
}

func (s *streamSocket) Send(msg libmsg.Message, timeoutMs int) libtsp.Result {
	r := s.SendParts([]libmsg.Message{msg}, timeoutMs)
	return r
}

// SendParts does not apply timeoutMs: it waits until the frames are written
// to the chosen peer or the write fails.
func (s *streamSocket) SendParts(parts []libmsg.Message, timeoutMs int) libtsp.Result {
	if len(parts) == 0 {
		return libtsp.ResultError
	}
	if parts[0].Transport() != s.tag {
		return libtsp.ResultError
	}

	raw := make([][]byte, len(parts))
	total := 0
	for i, p := range parts {
		raw[i] = p.Data()
		total += len(raw[i])
	}

	var target *peerConn
	var err error

	if s.typ == libtsp.Router {
		if len(raw) < 2 {
			return libtsp.ResultError
		}
		target, err = s.targetByIdentity(raw[0])
		raw = raw[1:]
	} else {
		target, err = s.pickTarget()
	}
	if err != nil {
		return libtsp.ResultError
	}

	if err := target.send(raw); err != nil {
		s.removePeer(target)
		return libtsp.ResultError
	}

	s.stats.AddSent(total)
	return libtsp.Result(total)
}

func (s *streamSocket) Receive(timeoutMs int) (libmsg.Message, libtsp.Result) {
	msgs, r := s.ReceiveParts(timeoutMs)
	if r < 0 {
		return nil, r
	}
	if len(msgs) == 0 {
		return libmsg.New(s.tag, 0), libtsp.Result(0)
	}
	return msgs[0], r
}

func (s *streamSocket) ReceiveParts(timeoutMs int) ([]libmsg.Message, libtsp.Result) {
	var timer *time.Timer
	var timeoutCh <-chan time.Time

	if timeoutMs > 0 {
		timer = time.NewTimer(time.Duration(timeoutMs) * time.Millisecond)
		timeoutCh = timer.C
		defer timer.Stop()
	}

	if timeoutMs == 0 {
		select {
		case <-s.done:
		default:
			if len(s.in) == 0 && len(s.errc) == 0 {
				return nil, libtsp.ResultTimeout
			}
		}
	}

	select {
	case ip := <-s.in:
		total := 0
		out := make([]libmsg.Message, len(ip.parts))
		for i, raw := range ip.parts {
			out[i] = libmsg.NewFromBytes(s.tag, raw, nil, nil)
			total += len(raw)
		}

		if s.typ == libtsp.Router {
			idMsg := libmsg.NewFromBytes(s.tag, []byte(ip.from.id), nil, nil)
			out = append([]libmsg.Message{idMsg}, out...)
		}

		s.stats.AddRecv(total)
		return out, libtsp.Result(total)

	case err := <-s.errc:
		_ = err
		return nil, libtsp.ResultError

	case <-timeoutCh:
		return nil, libtsp.ResultTimeout

	case <-s.done:
		return nil, libtsp.ResultInterrupted
	}
}

func (s *streamSocket) Close() error {
	s.once.Do(func() {
		close(s.done)

		s.mu.Lock()
		ln := s.ln
		peers := s.peers
		s.peers = nil
		s.mu.Unlock()

		if ln != nil {
			_ = ln.Close()
		}
		for _, p := range peers {
			_ = p.close()
		}
	})
	return nil
}
