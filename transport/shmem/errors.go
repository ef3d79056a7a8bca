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
	"fmt"

	liberr "github.com/nabbar/fairgo/errors"
)

const (
	ErrSegmentFull liberr.CodeError = iota + liberr.MinPkgShmem
	ErrSegmentCreate
	ErrSegmentMap
	ErrDescriptorUnknown
	ErrInvalidSize
)

func init() {
	if liberr.ExistInMapMessage(ErrSegmentFull) {
		panic(fmt.Errorf("error code collision with package transport/shmem"))
	}
	liberr.RegisterIdFctMessage(ErrSegmentFull, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrSegmentFull:
		return "data segment has no contiguous free space for this allocation"
	case ErrSegmentCreate:
		return "unable to create or map a data segment file"
	case ErrSegmentMap:
		return "unable to memory-map a data segment file"
	case ErrDescriptorUnknown:
		return "message descriptor references an unknown segment or region"
	case ErrInvalidSize:
		return "requested allocation size must be positive"
	}

	return liberr.NullMessage
}
