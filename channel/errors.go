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

package channel

import (
	"fmt"

	liberr "github.com/nabbar/fairgo/errors"
)

const (
	ErrInvalidName liberr.CodeError = iota + liberr.MinPkgChannel
	ErrInvalidMethod
	ErrInvalidAddress
	ErrNegativeTunable
	ErrInvalidSockType
	ErrNoSubSocket
	ErrSubSocketIndex
	ErrFrozen
)

func init() {
	if liberr.ExistInMapMessage(ErrInvalidName) {
		panic(fmt.Errorf("error code collision with package channel"))
	}
	liberr.RegisterIdFctMessage(ErrInvalidName, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrInvalidName:
		return "channel name must not be empty"
	case ErrInvalidMethod:
		return "channel method must be 'bind' or 'connect'"
	case ErrInvalidAddress:
		return "channel address must be tcp://, ipc://, inproc:// or verbs:// with a non-empty authority"
	case ErrNegativeTunable:
		return "channel tunables (hwm, buffer sizes, rate-logging interval) must be non-negative"
	case ErrInvalidSockType:
		return "channel socket type is not one of the recognized patterns"
	case ErrNoSubSocket:
		return "channel has no sub-sockets to send or receive on"
	case ErrSubSocketIndex:
		return "sub-socket index out of range"
	case ErrFrozen:
		return "channel identities are frozen once the device has bound"
	}

	return liberr.NullMessage
}
