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

package region

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nabbar/fairgo/duration"
	libtsp "github.com/nabbar/fairgo/transport/tag"
)

type freeRange struct {
	off, size int
}

type carved struct {
	off, size int
	hint      interface{}
}

type region struct {
	mu sync.Mutex

	id   string
	tr   libtsp.Tag
	buf  []byte
	free []freeRange
	live map[int]*carved // keyed by offset

	flags  uint32
	linger duration.Duration

	onRelease ReleaseFunc
	onBulk    BulkReleaseFunc

	pendingAcks []Ack
}

func newRegion(t libtsp.Tag, opt Options) (Region, error) {
	if opt.Size <= 0 {
		return nil, ErrInvalidSize.Error(nil)
	}

	buf := make([]byte, opt.Size)
	if opt.Zero {
		for i := range buf {
			buf[i] = 0
		}
	}
	if opt.Lock {
		if err := lockMemory(buf); err != nil {
			return nil, ErrLockFailed.Error(err)
		}
	}

	return newRegionOverBuffer(t, buf, opt)
}

// NewOverBuffer builds a Region whose carve/ack accounting runs over an
// already-allocated buffer instead of a freshly made one; the hook
// transport/shmem uses to get zero-copy carving over a memory-mapped data
// segment while still reusing this package's allocator, linger, and
// acknowledgement bookkeeping.
func NewOverBuffer(t libtsp.Tag, buf []byte, opt Options) (Region, error) {
	if len(buf) == 0 {
		return nil, ErrInvalidSize.Error(nil)
	}
	return newRegionOverBuffer(t, buf, opt)
}

func newRegionOverBuffer(t libtsp.Tag, buf []byte, opt Options) (Region, error) {
	id := opt.ID
	if id == "" {
		id = uuid.NewString()
	}

	linger := opt.Linger
	if linger <= 0 {
		linger = DefaultLinger
	}

	return &region{
		id:        id,
		tr:        t,
		buf:       buf,
		free:      []freeRange{{off: 0, size: len(buf)}},
		live:      make(map[int]*carved),
		flags:     opt.Flags,
		linger:    linger,
		onRelease: opt.OnRelease,
		onBulk:    opt.OnBulkRelease,
	}, nil
}

func (r *region) ID() string              { return r.id }
func (r *region) Size() int               { return len(r.buf) }
func (r *region) Flags() uint32           { return r.flags }
func (r *region) Transport() libtsp.Tag   { return r.tr }
func (r *region) Base() []byte            { return r.buf }

func (r *region) Carve(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidSize.Error(nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.free {
		if f.size < n {
			continue
		}

		off := f.off
		if f.size == n {
			r.free = append(r.free[:i], r.free[i+1:]...)
		} else {
			r.free[i] = freeRange{off: f.off + n, size: f.size - n}
		}

		r.live[off] = &carved{off: off, size: n}
		return off, nil
	}

	return 0, ErrRegionFull.Error(nil)
}

func (r *region) Ack(offset, size int, hint interface{}) {
	r.mu.Lock()

	c, ok := r.live[offset]
	if !ok || c.size != size {
		r.mu.Unlock()
		return
	}
	delete(r.live, offset)

	r.free = append(r.free, freeRange{off: offset, size: size})
	sort.Slice(r.free, func(i, j int) bool { return r.free[i].off < r.free[j].off })
	r.free = coalesce(r.free)

	ack := Ack{Offset: offset, Size: size}
	r.pendingAcks = append(r.pendingAcks, ack)
	rel, bulk := r.onRelease, r.onBulk
	id, flags := r.id, r.flags
	acks := append([]Ack(nil), r.pendingAcks...)
	r.pendingAcks = r.pendingAcks[:0]
	r.mu.Unlock()

	if bulk != nil {
		bulk(id, acks)
	} else if rel != nil {
		for _, a := range acks {
			rel(id, a.Offset, a.Size, hint, flags)
		}
	}
}

func (r *region) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.live)
}

func (r *region) Close(ctx context.Context) (int, error) {
	deadline := time.Now().Add(r.linger.Time())

	for {
		if r.Pending() == 0 {
			return 0, nil
		}

		if time.Now().After(deadline) {
			return r.Pending(), nil
		}

		select {
		case <-ctx.Done():
			return r.Pending(), ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func coalesce(in []freeRange) []freeRange {
	if len(in) < 2 {
		return in
	}

	out := make([]freeRange, 0, len(in))
	cur := in[0]

	for _, f := range in[1:] {
		if cur.off+cur.size == f.off {
			cur.size += f.size
		} else {
			out = append(out, cur)
			cur = f
		}
	}

	return append(out, cur)
}
