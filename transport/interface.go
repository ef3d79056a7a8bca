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

// Package transport defines the neutral Socket/TransportFactory/Poller
// contract shared by the network and shared-memory implementations in
// transport/network and transport/shmem.
package transport

import (
	"time"

	libmsg "github.com/nabbar/fairgo/message"
	libreg "github.com/nabbar/fairgo/region"
	libtsp "github.com/nabbar/fairgo/transport/tag"
)

// Result is the signed transfer outcome spec section 4.2 mandates: positive
// values are bytes transferred, negative values are one of the codes below.
type Result int64

const (
	ResultSuccess     Result = 0
	ResultError       Result = -1
	ResultTimeout     Result = -2
	ResultInterrupted Result = -3
)

// Timeout semantics for Send/Receive: -1 blocks until completion or
// interruption; 0 never blocks; a positive value bounds the wait in
// milliseconds.
const (
	TimeoutBlock    = -1
	TimeoutNoBlock  = 0
)

// Options tunes a Socket, mapping the neutral names spec section 4.3 lists
// onto whatever the concrete transport's library calls them.
type Options struct {
	Linger         time.Duration
	SendHWM        int
	RecvHWM        int
	SendBufSize    int
	RecvBufSize    int
	SendKernelSize int
	RecvKernelSize int
}

// Socket is one endpoint of a channel in one transport.
type Socket interface {
	Transport() libtsp.Tag
	Type() SockType
	Method() Method
	Address() Address

	Bind() error
	Connect() error
	Close() error

	Send(msg libmsg.Message, timeoutMs int) Result
	Receive(timeoutMs int) (libmsg.Message, Result)

	// SendParts/ReceiveParts implement the multipart contract of section
	// 4.2: all parts transfer atomically from the caller's point of view.
	SendParts(parts []libmsg.Message, timeoutMs int) Result
	ReceiveParts(timeoutMs int) ([]libmsg.Message, Result)

	Stats() *Stats

	// FD exposes a poll-able descriptor for Poller implementations that
	// need one; shared-memory sockets return a synthetic event descriptor.
	FD() int
}

// Factory produces Messages, Sockets, Pollers and UnmanagedRegions for one
// transport kind.
type Factory interface {
	Tag() libtsp.Tag
	Kind() libtsp.Kind

	NewMessage(size int) (libmsg.Message, error)
	NewSocket(t SockType, m Method, addr Address, opt Options) (Socket, error)
	NewPoller(sockets ...Socket) (Poller, error)
	NewRegion(opt libreg.Options) (libreg.Region, error)

	Close() error
}

// Poller multiplexes readiness across several sockets.
type Poller interface {
	Poll(timeoutMs int) error
	CheckInput(i int) bool
	CheckOutput(i int) bool
}
