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

package shmem

import (
	"os"
	"sync"

	"github.com/bits-and-blooms/bitset"
	mmap "github.com/xujiajun/mmap-go"
)

const pageSize = 4096

// SegmentOptions configures a new data segment, mirroring the
// --shm-zero-segment-on-creation / --shm-mlock-segment-on-creation CLI
// flags in spec section 6.
type SegmentOptions struct {
	Zero bool
	Lock bool
}

// DataSegment is one memory-mapped file backing zero-copy allocations for
// one shared-memory session. Free space is tracked page-by-page in a
// bitset, a sequential-fit strategy: the allocator scans for the first run
// of free pages large enough for the request (spec section 4.3 names this
// as an alternative to the red-black-tree best-fit variant; see DESIGN.md
// for why sequential-fit was chosen here).
type DataSegment struct {
	name string
	path string

	file *os.File
	mm   mmap.MMap

	mu    sync.Mutex
	pages *bitset.BitSet
	total uint
}

// CreateDataSegment allocates (or truncates and reopens) the backing file
// at path, sized to size bytes rounded up to a whole number of pages, and
// maps it into the process.
func CreateDataSegment(name, path string, size int, opt SegmentOptions) (*DataSegment, error) {
	if size <= 0 {
		return nil, ErrInvalidSize.Error(nil)
	}

	pages := (size + pageSize - 1) / pageSize
	total := pages * pageSize

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, ErrSegmentCreate.Error(err)
	}
	if err := f.Truncate(int64(total)); err != nil {
		_ = f.Close()
		return nil, ErrSegmentCreate.Error(err)
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		_ = f.Close()
		return nil, ErrSegmentMap.Error(err)
	}

	if opt.Zero {
		for i := range m {
			m[i] = 0
		}
	}
	if opt.Lock {
		if err := lockMemory(m); err != nil {
			_ = m.Unmap()
			_ = f.Close()
			return nil, ErrSegmentMap.Error(err)
		}
	}

	return &DataSegment{
		name:  name,
		path:  path,
		file:  f,
		mm:    m,
		pages: bitset.New(uint(pages)),
		total: uint(pages),
	}, nil
}

// OpenDataSegment maps an existing segment file read-write without
// altering its allocator state; used by a receiving process that already
// knows a segment's path from a descriptor it received.
func OpenDataSegment(name, path string) (*DataSegment, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o600)
	if err != nil {
		return nil, ErrSegmentCreate.Error(err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, ErrSegmentCreate.Error(err)
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		_ = f.Close()
		return nil, ErrSegmentMap.Error(err)
	}

	pages := uint(st.Size() / pageSize)
	return &DataSegment{name: name, path: path, file: f, mm: m, pages: bitset.New(pages), total: pages}, nil
}

func (d *DataSegment) Name() string  { return d.name }
func (d *DataSegment) Bytes() []byte { return d.mm }

// Alloc reserves the first run of free pages covering n bytes and returns
// its byte offset.
func (d *DataSegment) Alloc(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidSize.Error(nil)
	}

	need := uint((n + pageSize - 1) / pageSize)

	d.mu.Lock()
	defer d.mu.Unlock()

	run := uint(0)
	start := uint(0)
	for i := uint(0); i < d.total; i++ {
		if !d.pages.Test(i) {
			if run == 0 {
				start = i
			}
			run++
			if run == need {
				for j := start; j < start+need; j++ {
					d.pages.Set(j)
				}
				return int(start * pageSize), nil
			}
		} else {
			run = 0
		}
	}

	return 0, ErrSegmentFull.Error(nil)
}

// Free releases the pages covering [offset, offset+n).
func (d *DataSegment) Free(offset, n int) {
	first := uint(offset / pageSize)
	need := uint((n + pageSize - 1) / pageSize)

	d.mu.Lock()
	defer d.mu.Unlock()

	for j := first; j < first+need; j++ {
		d.pages.Clear(j)
	}
}

func (d *DataSegment) Close() error {
	if err := d.mm.Unmap(); err != nil {
		return err
	}
	return d.file.Close()
}
