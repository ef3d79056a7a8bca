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

// Package shmem implements the shared-memory transport: devices on the
// same host exchange only small Descriptors over a companion
// transport/network socket, while the actual payload lives in a
// memory-mapped data segment so a receiving device reads the sender's
// bytes without a copy, per spec section 4.3.
package shmem

import (
	"context"
	"os"

	libmsg "github.com/nabbar/fairgo/message"
	libreg "github.com/nabbar/fairgo/region"
	libsem "github.com/nabbar/fairgo/semaphore"
	libtsp "github.com/nabbar/fairgo/transport"
	"github.com/nabbar/fairgo/transport/network"
	libtag "github.com/nabbar/fairgo/transport/tag"

	"github.com/google/uuid"
)

// FactoryOptions configures a shared-memory Factory, mirroring the
// --shm-segment-size, --shm-zero-segment-on-creation and
// --shm-mlock-segment-on-creation CLI flags of spec section 6.
type FactoryOptions struct {
	Session     string
	Dir         string
	SegmentSize int
	Zero        bool
	Lock        bool
	NatsURL     string
}

// Factory implements transport.Factory for the shared-memory transport.
// Every Socket it creates carves per-message payloads from one default
// data segment (pool); NewRegion allocates a dedicated segment instead, for
// callers that want a standalone UnmanagedRegion.
type Factory struct {
	tag libtag.Tag

	netFactory *network.Factory
	control    *ControlSegment

	pool       *DataSegment
	poolRegion libreg.Region

	// regionSem serializes concurrent NewRegion calls against this
	// Factory: spec section 4.3 requires concurrent allocations to the
	// same session's segments be serialized by the allocator.
	regionSem libsem.Semaphore
}

// New opens the default data segment and the companion network factory a
// shared-memory Factory needs; opt.SegmentSize defaults to 64MiB.
func New(opt FactoryOptions) (*Factory, error) {
	if opt.SegmentSize <= 0 {
		opt.SegmentSize = 64 << 20
	}
	if opt.Session == "" {
		opt.Session = uuid.NewString()
	}
	if opt.Dir == "" {
		opt.Dir = os.TempDir()
	}

	ctrl, err := OpenControl(opt.Dir, opt.Session)
	if err != nil {
		return nil, err
	}

	nf, err := network.New(opt.NatsURL)
	if err != nil {
		return nil, err
	}

	t := libtag.Next()
	poolName := Name(opt.Session, KindSegment, "default")
	poolPath := ctrl.SegmentPath("default")

	pool, err := CreateDataSegment(poolName, poolPath, opt.SegmentSize, SegmentOptions{Zero: opt.Zero, Lock: opt.Lock})
	if err != nil {
		_ = nf.Close()
		return nil, err
	}
	ctrl.RegisterSegment(poolName, poolPath)

	poolRegion, err := libreg.NewOverBuffer(t, pool.Bytes(), libreg.Options{ID: poolName, Zero: false})
	if err != nil {
		_ = pool.Close()
		_ = nf.Close()
		return nil, err
	}

	return &Factory{
		tag:        t,
		netFactory: nf,
		control:    ctrl,
		pool:       pool,
		poolRegion: poolRegion,
		regionSem:  libsem.New(context.Background(), 1),
	}, nil
}

func (f *Factory) Tag() libtag.Tag   { return f.tag }
func (f *Factory) Kind() libtag.Kind { return libtag.KindShmem }

func (f *Factory) NewMessage(size int) (libmsg.Message, error) {
	return libmsg.New(f.tag, size), nil
}

func (f *Factory) NewSocket(t libtsp.SockType, m libtsp.Method, addr libtsp.Address, _ libtsp.Options) (libtsp.Socket, error) {
	return newSocket(f, t, m, addr)
}

func (f *Factory) NewPoller(sockets ...libtsp.Socket) (libtsp.Poller, error) {
	return f.netFactory.NewPoller(sockets...)
}

// NewRegion allocates a dedicated data segment of opt.Size bytes and wraps
// it in a Region, for a device that wants a standalone UnmanagedRegion
// rather than relying on the factory's shared default segment.
func (f *Factory) NewRegion(opt libreg.Options) (libreg.Region, error) {
	if err := f.regionSem.NewWorker(); err != nil {
		return nil, err
	}
	defer f.regionSem.DeferWorker()

	if opt.ID == "" {
		opt.ID = uuid.NewString()
	}

	path := f.control.RegionPath(opt.ID)
	seg, err := CreateDataSegment(Name(f.control.session, KindRegion, opt.ID), path, opt.Size, SegmentOptions{Zero: opt.Zero, Lock: opt.Lock})
	if err != nil {
		return nil, err
	}
	f.control.RegisterRegion(opt.ID, path)

	r, err := libreg.NewOverBuffer(f.tag, seg.Bytes(), opt)
	if err != nil {
		_ = seg.Close()
		return nil, err
	}

	return &regionOverSegment{Region: r, seg: seg}, nil
}

func (f *Factory) Close() error {
	f.regionSem.DeferMain()
	_ = f.pool.Close()
	_ = f.netFactory.Close()
	return f.control.Cleanup()
}

// regionOverSegment closes the backing DataSegment once the wrapped
// Region's own linger-bounded Close returns, so a caller dropping an
// UnmanagedRegion also unmaps and stops tracking its file.
type regionOverSegment struct {
	libreg.Region
	seg *DataSegment
}

func (r *regionOverSegment) Close(ctx context.Context) (int, error) {
	unacked, err := r.Region.Close(ctx)
	if cerr := r.seg.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return unacked, err
}
