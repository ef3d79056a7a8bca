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

package transport

// SockType is the socket pattern a Channel's sub-sockets speak, enumerated
// in spec section 4.2.
type SockType uint8

const (
	Pair SockType = iota
	Pub
	Sub
	XPub
	XSub
	Push
	Pull
	Req
	Rep
	Dealer
	Router
)

func (s SockType) String() string {
	switch s {
	case Pair:
		return "pair"
	case Pub:
		return "pub"
	case Sub:
		return "sub"
	case XPub:
		return "xpub"
	case XSub:
		return "xsub"
	case Push:
		return "push"
	case Pull:
		return "pull"
	case Req:
		return "req"
	case Rep:
		return "rep"
	case Dealer:
		return "dealer"
	case Router:
		return "router"
	default:
		return "unknown"
	}
}

// ParseSockType maps a configuration string onto a SockType.
func ParseSockType(s string) (SockType, error) {
	switch s {
	case "pair":
		return Pair, nil
	case "pub":
		return Pub, nil
	case "sub":
		return Sub, nil
	case "xpub":
		return XPub, nil
	case "xsub":
		return XSub, nil
	case "push":
		return Push, nil
	case "pull":
		return Pull, nil
	case "req":
		return Req, nil
	case "rep":
		return Rep, nil
	case "dealer":
		return Dealer, nil
	case "router":
		return Router, nil
	default:
		return 0, ErrInvalidSocketType.Error(nil)
	}
}

// Method is how a socket attaches to its address.
type Method uint8

const (
	Bind Method = iota
	Connect
)

func (m Method) String() string {
	if m == Bind {
		return "bind"
	}
	return "connect"
}

// ParseMethod maps a configuration string onto a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "bind":
		return Bind, nil
	case "connect":
		return Connect, nil
	default:
		return 0, ErrInvalidMethod.Error(nil)
	}
}

// ConnState names a point in a stream connection's lifecycle; the
// transport/network sockets do not use it. Grounded on the teacher's socket.ConnState enumeration
// (socket/basic_test.go TC-BS-006..022).
type ConnState uint8

const (
	ConnectionDial ConnState = iota
	ConnectionNew
	ConnectionRead
	ConnectionCloseRead
	ConnectionHandler
	ConnectionWrite
	ConnectionCloseWrite
	ConnectionClose
)

func (c ConnState) String() string {
	switch c {
	case ConnectionDial:
		return "Dial Connection"
	case ConnectionNew:
		return "New Connection"
	case ConnectionRead:
		return "Read Incoming Stream"
	case ConnectionCloseRead:
		return "Close Incoming Stream"
	case ConnectionHandler:
		return "Run HandlerFunc"
	case ConnectionWrite:
		return "Write Outgoing Steam"
	case ConnectionCloseWrite:
		return "Close Outgoing Stream"
	case ConnectionClose:
		return "Close Connection"
	default:
		return "Unknown Connection State"
	}
}

// DefaultBufferSize is the default read/write buffer size for raw-stream
// sockets, matching the teacher's socket.DefaultBufferSize constant.
const DefaultBufferSize = 32 * 1024

// EOL delimits line-framed protocols over raw streams.
const EOL = byte('\n')
