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

package message

import (
	"sync"
	"sync/atomic"
	"unsafe"

	libtsp "github.com/nabbar/fairgo/transport/tag"
)

type msg struct {
	mu     sync.Mutex
	buf    []byte
	used   int
	align  int
	tr     libtsp.Tag
	free   FuncFree
	hint   interface{}
	closed atomic.Bool
}

func newMessage(t libtsp.Tag, buf []byte, free FuncFree, hint interface{}, align int) Message {
	return &msg{
		buf:   buf,
		used:  len(buf),
		align: align,
		tr:    t,
		free:  free,
		hint:  hint,
	}
}

func (m *msg) Data() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Load() {
		return nil
	}

	return m.buf[:m.used]
}

func (m *msg) GetSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.used
}

func (m *msg) SetUsedSize(n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Load() {
		return ErrClosed.Error(nil)
	} else if n < 0 || n > len(m.buf) {
		return ErrInvalidSize.Error(nil)
	}

	m.used = n
	return nil
}

func (m *msg) Transport() libtsp.Tag {
	return m.tr
}

func (m *msg) Align() int {
	return m.align
}

func (m *msg) Copy() Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, m.used)
	copy(cp, m.buf[:m.used])

	return &msg{
		buf:   cp,
		used:  m.used,
		align: m.align,
		tr:    m.tr,
	}
}

func (m *msg) Closed() bool {
	return m.closed.Load()
}

func (m *msg) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.free != nil {
		m.free(m.buf, m.hint)
	}

	m.buf = nil
	return nil
}

// allocAligned returns a slice of size n whose first byte sits on an `align`
// byte boundary. align <= 1 is a no-op fast path.
func allocAligned(n, align int) []byte {
	if align <= 1 {
		return make([]byte, n)
	}

	raw := make([]byte, n+align)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	off := 0

	if r := int(addr % uintptr(align)); r != 0 {
		off = align - r
	}

	return raw[off : off+n]
}
