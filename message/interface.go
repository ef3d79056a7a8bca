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

// Package message defines the opaque byte-buffer type that moves across every
// channel in the runtime. A Message is a handle with single ownership: once it
// is handed to a socket's Send, the caller must not touch it again.
package message

import (
	libtsp "github.com/nabbar/fairgo/transport/tag"
)

// FuncFree is called when a Message built from a user-owned buffer is
// released, so the caller can recycle or free its backing storage. hint is
// whatever opaque value the caller passed to New.
type FuncFree func(ptr []byte, hint interface{})

// Message is an opaque byte buffer with size, optional user deallocator,
// alignment and an originating transport tag.
//
// User code holds a Message through this interface; the implementing type
// is not exported. Copy returns a brand-new Message with its own
// backing array; it never aliases the source's buffer.
type Message interface {
	// Data returns the current buffer. The slice is valid until the Message
	// is sent or closed; callers must not retain it past either point.
	Data() []byte

	// GetSize returns the current used size, which may be smaller than the
	// capacity of the underlying allocation after SetUsedSize.
	GetSize() int

	// SetUsedSize resizes the message in place. It never reallocates; n must
	// not exceed the original allocation size. Copies made after this call
	// inherit the new size.
	SetUsedSize(n int) error

	// Transport reports the tag of the transport that created this Message.
	// Send on a Socket from a different transport must fail.
	Transport() libtsp.Tag

	// Align reports the alignment requested at creation, 0 if none.
	Align() int

	// Copy returns an independent Message with the same bytes, size and
	// transport tag as the receiver.
	Copy() Message

	// Closed reports whether Close has already run.
	Closed() bool

	// Close releases the buffer, invoking the deallocator if one was
	// supplied at creation. Close is idempotent.
	Close() error
}

// New allocates a Message of size n on the given transport. The returned
// buffer is zero-valued.
func New(t libtsp.Tag, n int) Message {
	return newMessage(t, make([]byte, n), nil, nil, 0)
}

// NewFromBytes wraps an existing, user-owned buffer without copying it. free,
// if non-nil, is invoked exactly once when the Message is closed, receiving
// hint back unchanged.
func NewFromBytes(t libtsp.Tag, buf []byte, free FuncFree, hint interface{}) Message {
	return newMessage(t, buf, free, hint, 0)
}

// NewAligned allocates a Message of size n aligned to align bytes. align of 0
// or 1 behaves like New.
func NewAligned(t libtsp.Tag, n int, align int) Message {
	return newMessage(t, allocAligned(n, align), nil, nil, align)
}
