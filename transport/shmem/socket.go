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
	"strconv"
	"strings"
	"sync"

	libmsg "github.com/nabbar/fairgo/message"
	libtsp "github.com/nabbar/fairgo/transport"
	libtag "github.com/nabbar/fairgo/transport/tag"
)

// Socket implements transport.Socket for the shared-memory transport: the
// payload is carved from the factory's default data segment, and only the
// resulting Descriptor crosses the wire, over a companion network-transport
// socket (spec section 4.3's "small control messages ... carrying the
// descriptors"). A second, always-paired control socket carries release
// acknowledgements back in the opposite direction regardless of the
// primary socket's own directionality, so ack delivery does not depend on
// whether the primary type is push/pull, req/rep, or pair.
type Socket struct {
	tag  libtag.Tag
	typ  libtsp.SockType
	mth  libtsp.Method
	addr libtsp.Address

	stats libtsp.Stats

	f       *Factory
	ctrl    libtsp.Socket
	ackSock libtsp.Socket
	ack     *ackThread

	mu       sync.Mutex
	segments map[string]*DataSegment
}

func ackAddress(addr libtsp.Address) (libtsp.Address, error) {
	switch addr.Scheme {
	case libtsp.SchemeTCP:
		host, port, err := splitHostPort(addr.Authority)
		if err != nil {
			return libtsp.Address{}, err
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return libtsp.Address{}, err
		}
		return libtsp.Address{Scheme: libtsp.SchemeTCP, Authority: host + ":" + strconv.Itoa(p+1)}, nil
	case libtsp.SchemeIPC:
		return libtsp.Address{Scheme: libtsp.SchemeIPC, Authority: addr.Authority + ".ack"}, nil
	default:
		return libtsp.Address{Scheme: addr.Scheme, Authority: addr.Authority + "-ack"}, nil
	}
}

func splitHostPort(authority string) (host, port string, err error) {
	i := strings.LastIndex(authority, ":")
	if i < 0 {
		return authority, "0", nil
	}
	return authority[:i], authority[i+1:], nil
}

func newSocket(f *Factory, typ libtsp.SockType, m libtsp.Method, addr libtsp.Address) (*Socket, error) {
	nf := f.netFactory

	ctrl, err := nf.NewSocket(typ, m, addr, libtsp.Options{})
	if err != nil {
		return nil, err
	}

	ackAddr, err := ackAddress(addr)
	if err != nil {
		_ = ctrl.Close()
		return nil, err
	}

	ack, err := nf.NewSocket(libtsp.Pair, m, ackAddr, libtsp.Options{})
	if err != nil {
		_ = ctrl.Close()
		return nil, err
	}

	s := &Socket{
		tag:      f.tag,
		typ:      typ,
		mth:      m,
		addr:     addr,
		f:        f,
		ctrl:     ctrl,
		ackSock:  ack,
		ack:      newAckThread(),
		segments: make(map[string]*DataSegment),
	}
	s.ack.register(f.pool.Name(), f.poolRegion)

	go s.ackRecvLoop()

	return s, nil
}

func (s *Socket) ackRecvLoop() {
	for {
		m, r := s.ackSock.Receive(100)
		if r == libtsp.ResultInterrupted {
			return
		}
		if r < 0 {
			continue
		}
		if d, ok := DecodeDescriptor(m.Data()); ok {
			s.ack.enqueue(d)
		}
	}
}

func (s *Socket) Transport() libtag.Tag    { return s.tag }
func (s *Socket) Type() libtsp.SockType    { return s.typ }
func (s *Socket) Method() libtsp.Method    { return s.mth }
func (s *Socket) Address() libtsp.Address  { return s.addr }
func (s *Socket) Stats() *libtsp.Stats     { return &s.stats }
func (s *Socket) FD() int                  { return -1 }

func (s *Socket) Bind() error    { return nil } // ctrl/ackSock already bound in newSocket
func (s *Socket) Connect() error { return nil } // already connected in newSocket

func (s *Socket) Send(msg libmsg.Message, timeoutMs int) libtsp.Result {
	return s.SendParts([]libmsg.Message{msg}, timeoutMs)
}

func (s *Socket) SendParts(parts []libmsg.Message, timeoutMs int) libtsp.Result {
	total := 0
	descs := make([]Descriptor, 0, len(parts))

	for _, p := range parts {
		off, err := s.f.poolRegion.Carve(p.GetSize())
		if err != nil {
			return libtsp.ResultError
		}
		copy(s.f.pool.Bytes()[off:off+p.GetSize()], p.Data())

		descs = append(descs, Descriptor{
			Segment: s.f.pool.Name(),
			Path:    s.f.pool.path,
			Offset:  off,
			Size:    p.GetSize(),
			Align:   p.Align(),
		})
		total += p.GetSize()
	}

	wire := make([]libmsg.Message, len(descs))
	for i, d := range descs {
		wire[i] = libmsg.NewFromBytes(s.tag, d.Encode(), nil, nil)
	}

	if r := s.ctrl.SendParts(wire, timeoutMs); r < 0 {
		return r
	}

	s.stats.AddSent(total)
	return libtsp.Result(total)
}

func (s *Socket) Receive(timeoutMs int) (libmsg.Message, libtsp.Result) {
	msgs, r := s.ReceiveParts(timeoutMs)
	if r < 0 {
		return nil, r
	}
	return msgs[0], r
}

func (s *Socket) ReceiveParts(timeoutMs int) ([]libmsg.Message, libtsp.Result) {
	wire, r := s.ctrl.ReceiveParts(timeoutMs)
	if r < 0 {
		return nil, r
	}

	out := make([]libmsg.Message, 0, len(wire))
	total := 0

	for _, w := range wire {
		d, ok := DecodeDescriptor(w.Data())
		if !ok {
			return nil, libtsp.ResultError
		}

		seg, err := s.resolveSegment(d)
		if err != nil {
			return nil, libtsp.ResultError
		}

		slice := seg.Bytes()[d.Offset : d.Offset+d.Size]
		ackSock := s.ackSock
		desc := d

		msg := libmsg.NewFromBytes(s.tag, slice, func(_ []byte, _ interface{}) {
			ackMsg := libmsg.NewFromBytes(s.tag, desc.Encode(), nil, nil)
			ackSock.Send(ackMsg, libtsp.TimeoutNoBlock)
		}, nil)

		out = append(out, msg)
		total += d.Size
	}

	s.stats.AddRecv(total)
	return out, libtsp.Result(total)
}

func (s *Socket) resolveSegment(d Descriptor) (*DataSegment, error) {
	if d.Segment == s.f.pool.Name() {
		return s.f.pool, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seg, ok := s.segments[d.Segment]; ok {
		return seg, nil
	}

	seg, err := OpenDataSegment(d.Segment, d.Path)
	if err != nil {
		return nil, err
	}
	s.segments[d.Segment] = seg
	return seg, nil
}

func (s *Socket) Close() error {
	s.ack.stop()
	_ = s.ackSock.Close()

	s.mu.Lock()
	for _, seg := range s.segments {
		_ = seg.Close()
	}
	s.segments = nil
	s.mu.Unlock()

	return s.ctrl.Close()
}
