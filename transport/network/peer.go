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
	"bufio"
	"net"
	"sync"

	libtsp "github.com/nabbar/fairgo/transport"
)

// inboundParts is one reassembled multipart group together with the peer it
// arrived on, queued for the socket's Receive loop.
type inboundParts struct {
	parts [][]byte
	from  *peerConn
}

// peerConn wraps one raw-stream connection with framed, serialized I/O. A
// stream socket (pair/push/pull/req/rep/dealer/router) holds one or more of
// these; the identity used by router/dealer framing is the remote address
// string of an accepted connection, or the dialed address of a connected one.
type peerConn struct {
	id       string
	conn     net.Conn
	r        *bufio.Reader
	wMu      sync.Mutex
	w        *bufio.Writer
	closed   bool
	closeMu  sync.Mutex
}

func newPeerConn(id string, c net.Conn) *peerConn {
	return &peerConn{
		id:   id,
		conn: c,
		r:    bufio.NewReaderSize(c, libtsp.DefaultBufferSize),
		w:    bufio.NewWriterSize(c, libtsp.DefaultBufferSize),
	}
}

func (p *peerConn) send(parts [][]byte) error {
	p.wMu.Lock()
	defer p.wMu.Unlock()
	return writeParts(p.w, parts)
}

func (p *peerConn) recvLoop(out chan<- inboundParts, errc chan<- error) {
	for {
		parts, err := readParts(p.r)
		if err != nil {
			errc <- err
			return
		}
		out <- inboundParts{parts: parts, from: p}
	}
}

func (p *peerConn) close() error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.conn.Close()
}
