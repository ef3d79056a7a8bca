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

package network

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Each frame on a raw stream connection is a 1-byte continuation flag (1 if
// more parts follow in this message, 0 if this is the last) followed by a
// 4-byte big-endian length and the payload. Multipart sends write one frame
// per part so the receiver can reassemble the group atomically: it either
// reads a complete run down to the flag-0 frame or the connection breaks,
// in which case the partial parts are discarded and Result_error is raised.
const (
	flagMore = byte(1)
	flagLast = byte(0)
)

func writeFrame(w *bufio.Writer, payload []byte, more bool) error {
	flag := flagLast
	if more {
		flag = flagMore
	}
	if err := w.WriteByte(flag); err != nil {
		return err
	}

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return w.Flush()
}

func readFrame(r *bufio.Reader) (payload []byte, more bool, err error) {
	flag, err := r.ReadByte()
	if err != nil {
		return nil, false, err
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, false, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])

	payload = make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, false, err
		}
	}

	return payload, flag == flagMore, nil
}

// readParts reads one complete multipart group.
func readParts(r *bufio.Reader) ([][]byte, error) {
	var parts [][]byte
	for {
		p, more, err := readFrame(r)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
		if !more {
			return parts, nil
		}
	}
}

// writeParts writes one complete multipart group.
func writeParts(w *bufio.Writer, parts [][]byte) error {
	for i, p := range parts {
		if err := writeFrame(w, p, i < len(parts)-1); err != nil {
			return err
		}
	}
	return nil
}
