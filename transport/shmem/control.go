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
	"path/filepath"
	"sync"
)

// ControlSegment holds the per-session metadata spec section 4.3 describes:
// the set of data segments and regions currently in use, plus an event
// counter incremented on every registration. The registry lives in this
// process only: nothing of it is written to disk or shared with other
// processes.
type ControlSegment struct {
	session string
	dir     string

	mu       sync.Mutex
	segments map[string]string // name -> path
	regions  map[string]string
	events   int64
}

// OpenControl creates dir if needed and returns an empty in-process control
// segment for the session; no control file is created.
func OpenControl(dir, session string) (*ControlSegment, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, ErrSegmentCreate.Error(err)
	}

	return &ControlSegment{
		session:  session,
		dir:      dir,
		segments: make(map[string]string),
		regions:  make(map[string]string),
	}, nil
}

func (c *ControlSegment) SegmentPath(name string) string {
	return filepath.Join(c.dir, Name(c.session, KindSegment, name))
}

func (c *ControlSegment) RegionPath(id string) string {
	return filepath.Join(c.dir, Name(c.session, KindRegion, id))
}

func (c *ControlSegment) RegisterSegment(name, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.segments[name] = path
	c.events++
}

func (c *ControlSegment) RegisterRegion(id, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regions[id] = path
	c.events++
}

func (c *ControlSegment) LookupSegment(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.segments[name]
	return p, ok
}

func (c *ControlSegment) Events() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events
}

// Cleanup removes the segment and region files registered with this
// ControlSegment and forgets them. Files of the session that were not
// registered here, such as those left by another process, are not removed.
func (c *ControlSegment) Cleanup() error {
	c.mu.Lock()
	paths := make([]string, 0, len(c.segments)+len(c.regions))
	for _, p := range c.segments {
		paths = append(paths, p)
	}
	for _, p := range c.regions {
		paths = append(paths, p)
	}
	c.segments = make(map[string]string)
	c.regions = make(map[string]string)
	c.mu.Unlock()

	var firstErr error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
