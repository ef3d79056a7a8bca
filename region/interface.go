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

// Package region implements UnmanagedRegion: a large contiguous buffer
// allocated once, from which zero-copy messages are carved. A region tracks
// which sub-ranges are still in flight and runs an acknowledgement callback,
// on the creator side, as the reader finishes with each one.
package region

import (
	"context"
	"time"

	"github.com/nabbar/fairgo/duration"
	libtsp "github.com/nabbar/fairgo/transport/tag"
)

// DefaultLinger is how long Close waits for outstanding acknowledgements
// before giving up, matching the 500ms default from the C++ original.
const DefaultLinger = duration.Duration(500 * time.Millisecond)

// ReleaseFunc is invoked once per acknowledged sub-range, on the creator
// side, with the descriptor that was freed.
type ReleaseFunc func(id string, offset, size int, hint interface{}, flags uint32)

// BulkReleaseFunc is the batched form of ReleaseFunc; preferred when set,
// the core calls it with everything that arrived since the last flush.
type BulkReleaseFunc func(id string, acks []Ack)

// Ack is one acknowledged sub-range.
type Ack struct {
	Offset int
	Size   int
}

// Options configures a new Region.
type Options struct {
	// ID, if empty, is generated.
	ID string
	// Size is the total region size in bytes.
	Size int
	// Flags is opaque to the core; carried back on every ReleaseFunc call.
	Flags uint32
	// Lock requests the region be mlock'd into RAM.
	Lock bool
	// Zero requests the region be zeroed at creation.
	Zero bool
	// Linger bounds how long Close waits for pending acks; 0 means
	// DefaultLinger.
	Linger duration.Duration

	OnRelease     ReleaseFunc
	OnBulkRelease BulkReleaseFunc
}

// Region is a bulk-allocated, zero-copy shared area.
type Region interface {
	// ID returns the region's session-unique identifier.
	ID() string
	// Size returns the total allocated volume.
	Size() int
	// Flags returns the opaque flags passed at creation.
	Flags() uint32
	// Transport returns the owning transport's tag.
	Transport() libtsp.Tag
	// Base exposes the backing buffer. Callers must confine writes to the
	// [offset, offset+size) ranges returned by Carve.
	Base() []byte

	// Carve reserves a sub-range of n bytes and returns its offset. It fails
	// if the region has no contiguous free space of that size.
	Carve(n int) (offset int, err error)

	// Ack records that the reader has released the [offset, size) sub-range
	// carved earlier; hint flows back unchanged to the release callback.
	Ack(offset, size int, hint interface{})

	// Pending returns the number of carved sub-ranges not yet acknowledged.
	Pending() int

	// Close waits up to the configured linger for outstanding acks, then
	// releases the region. It returns the number of sub-ranges that were
	// still unacknowledged when the wait ended.
	Close(ctx context.Context) (unacked int, err error)
}

// New allocates a Region of the requested size on the given transport.
func New(t libtsp.Tag, opt Options) (Region, error) {
	return newRegion(t, opt)
}
