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
	"encoding/binary"
)

// Descriptor is what actually crosses the network transport's control
// channel for a shared-memory message: the segment it lives in (plus the
// path needed to map it if the receiving process has not seen it before),
// its offset and size within that segment, and the alignment the sender
// carved it with. Spec section 4.3 ("A message descriptor contains...").
type Descriptor struct {
	Segment string
	Path    string
	Offset  int
	Size    int
	Align   int
}

func putString(buf []byte, s string) []byte {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(s)))
	buf = append(buf, l[:]...)
	return append(buf, s...)
}

func getString(buf []byte) (string, []byte, bool) {
	if len(buf) < 4 {
		return "", nil, false
	}
	n := int(binary.BigEndian.Uint32(buf[:4]))
	buf = buf[4:]
	if len(buf) < n {
		return "", nil, false
	}
	return string(buf[:n]), buf[n:], true
}

// Encode serializes a Descriptor to a compact wire form.
func (d Descriptor) Encode() []byte {
	buf := make([]byte, 0, len(d.Segment)+len(d.Path)+24)
	buf = putString(buf, d.Segment)
	buf = putString(buf, d.Path)

	var tail [20]byte
	binary.BigEndian.PutUint64(tail[0:8], uint64(d.Offset))
	binary.BigEndian.PutUint64(tail[8:16], uint64(d.Size))
	binary.BigEndian.PutUint32(tail[16:20], uint32(d.Align))

	return append(buf, tail[:]...)
}

// DecodeDescriptor parses the wire form Encode produces.
func DecodeDescriptor(buf []byte) (Descriptor, bool) {
	segment, rest, ok := getString(buf)
	if !ok {
		return Descriptor{}, false
	}
	path, rest, ok := getString(rest)
	if !ok {
		return Descriptor{}, false
	}
	if len(rest) < 20 {
		return Descriptor{}, false
	}

	return Descriptor{
		Segment: segment,
		Path:    path,
		Offset:  int(binary.BigEndian.Uint64(rest[0:8])),
		Size:    int(binary.BigEndian.Uint64(rest[8:16])),
		Align:   int(binary.BigEndian.Uint32(rest[16:20])),
	}, true
}
