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

import "sync/atomic"

// Stats holds the byte/message counters spec section 3 requires on every
// Socket, in both directions.
type Stats struct {
	bytesSent     atomic.Int64
	bytesRecv     atomic.Int64
	msgSent       atomic.Int64
	msgRecv       atomic.Int64
	peers         atomic.Int64
}

func (s *Stats) AddSent(n int) {
	s.bytesSent.Add(int64(n))
	s.msgSent.Add(1)
}

func (s *Stats) AddRecv(n int) {
	s.bytesRecv.Add(int64(n))
	s.msgRecv.Add(1)
}

func (s *Stats) SetPeers(n int) { s.peers.Store(int64(n)) }
func (s *Stats) AddPeer()       { s.peers.Add(1) }
func (s *Stats) RemovePeer()    { s.peers.Add(-1) }

func (s *Stats) BytesSent() int64 { return s.bytesSent.Load() }
func (s *Stats) BytesRecv() int64 { return s.bytesRecv.Load() }
func (s *Stats) MsgSent() int64   { return s.msgSent.Load() }
func (s *Stats) MsgRecv() int64   { return s.msgRecv.Load() }
func (s *Stats) Peers() int64     { return s.peers.Load() }
