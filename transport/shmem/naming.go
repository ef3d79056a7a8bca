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

// Package shmem implements the shared-memory transport: large payloads are
// carved from memory-mapped data segments and referenced by descriptor;
// small control messages carrying those descriptors travel over the
// network transport, per spec section 4.3.
package shmem

import (
	"fmt"
	"hash/fnv"
	"os"
)

// Kind is the artefact category encoded into a shared-memory name.
type Kind string

const (
	KindControl Kind = "mng"
	KindSegment Kind = "m"
	KindRegion  Kind = "r"
)

// Name derives the on-disk identifier fmq_<hash(session,uid)>_<kind>_<id>
// from a session name and the effective user id, per spec section 6.
func Name(session string, kind Kind, id string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(session))
	_, _ = fmt.Fprintf(h, "%d", os.Geteuid())

	return fmt.Sprintf("fmq_%x_%s_%s", h.Sum64(), kind, id)
}
