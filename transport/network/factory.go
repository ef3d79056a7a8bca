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

// Package network implements the network transport: a message-queuing
// socket library (NATS) backs the broadcast socket types, raw framed
// TCP/Unix streams back the connection-oriented ones, per spec section 4.3.
package network

import (
	"github.com/nats-io/nats.go"

	libmsg "github.com/nabbar/fairgo/message"
	libreg "github.com/nabbar/fairgo/region"
	libtsp "github.com/nabbar/fairgo/transport"
	libtag "github.com/nabbar/fairgo/transport/tag"
)

// Factory implements transport.Factory for the network transport.
type Factory struct {
	tag libtag.Tag
	nc  *nats.Conn
}

// New connects to the given NATS server (used only by pub/sub-family
// sockets; stream sockets never touch it) and returns a ready Factory. An
// empty url connects to the default local server.
func New(url string) (*Factory, error) {
	if url == "" {
		url = nats.DefaultURL
	}

	nc, err := nats.Connect(url)
	if err != nil {
		return nil, ErrDial.Error(err)
	}

	return &Factory{tag: libtag.Next(), nc: nc}, nil
}

func (f *Factory) Tag() libtag.Tag   { return f.tag }
func (f *Factory) Kind() libtag.Kind { return libtag.KindNetwork }

func (f *Factory) NewMessage(size int) (libmsg.Message, error) {
	return libmsg.New(f.tag, size), nil
}

func (f *Factory) NewSocket(t libtsp.SockType, m libtsp.Method, addr libtsp.Address, opt libtsp.Options) (libtsp.Socket, error) {
	switch t {
	case libtsp.Pub, libtsp.Sub, libtsp.XPub, libtsp.XSub:
		s := newNatsSocket(f.tag, t, m, addr, f.nc)
		if m == libtsp.Bind {
			return s, s.Bind()
		}
		return s, s.Connect()

	case libtsp.Pair, libtsp.Push, libtsp.Pull, libtsp.Req, libtsp.Rep, libtsp.Dealer, libtsp.Router:
		s := newStreamSocket(f.tag, t, m, addr, opt)
		if m == libtsp.Bind {
			return s, s.Bind()
		}
		return s, s.Connect()

	default:
		return nil, ErrUnsupportedType.Error(nil)
	}
}

func (f *Factory) NewPoller(sockets ...libtsp.Socket) (libtsp.Poller, error) {
	return newPoller(sockets...), nil
}

// NewRegion allocates an UnmanagedRegion on this transport. The network
// sockets do not call Ack when a message is sent; a carved sub-range is
// released, and the release callback runs, only when Ack is called on the
// region.
func (f *Factory) NewRegion(opt libreg.Options) (libreg.Region, error) {
	return libreg.New(f.tag, opt)
}

func (f *Factory) Close() error {
	f.nc.Close()
	return nil
}
