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

// Package tag gives every transport implementation a small, comparable
// identity so messages and sockets can be checked for transport mismatch
// without either side importing the other's package (which would cycle
// through message <-> transport <-> network/shmem).
package tag

import "sync/atomic"

// Tag identifies one concrete transport instance (one NewTransport call).
// The zero Tag is never issued by a real factory and is used as "no
// transport" in tests and defaults.
type Tag uint64

// None is the zero value, meaning "not bound to any transport".
const None Tag = 0

// Kind names the wire-level family a transport belongs to.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNetwork
	KindShmem
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "zeromq"
	case KindShmem:
		return "shmem"
	default:
		return "unknown"
	}
}

var counter uint64

// Next returns a fresh, process-unique Tag. Factories call this once at
// construction; every Message and Socket they create carries the result.
func Next() Tag {
	return Tag(atomic.AddUint64(&counter, 1))
}
