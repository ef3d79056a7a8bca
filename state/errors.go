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

package state

import (
	"fmt"

	liberr "github.com/nabbar/fairgo/errors"
)

const (
	ErrInvalidTransition liberr.CodeError = iota + liberr.MinPkgState
	ErrQueueClosed
	ErrWaitTimeout
	ErrInterrupted
	ErrHookFailed
)

func init() {
	if liberr.ExistInMapMessage(ErrInvalidTransition) {
		panic(fmt.Errorf("error code collision with package state"))
	}
	liberr.RegisterIdFctMessage(ErrInvalidTransition, getMessage)
	liberr.RegisterIdFctMessage(ErrQueueClosed, getMessage)
	liberr.RegisterIdFctMessage(ErrWaitTimeout, getMessage)
	liberr.RegisterIdFctMessage(ErrInterrupted, getMessage)
	liberr.RegisterIdFctMessage(ErrHookFailed, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrInvalidTransition:
		return "transition not allowed in current state"
	case ErrQueueClosed:
		return "state queue is closed"
	case ErrWaitTimeout:
		return "timed out waiting for state"
	case ErrInterrupted:
		return "wait interrupted by error state"
	case ErrHookFailed:
		return "state hook returned an error"
	}

	return liberr.NullMessage
}
