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

package transport

import (
	"fmt"

	liberr "github.com/nabbar/fairgo/errors"
)

const (
	ErrInvalidAddress liberr.CodeError = iota + liberr.MinPkgTransport
	ErrInvalidSocketType
	ErrInvalidMethod
	ErrTransportMismatch
	ErrUnknownTransport
)

func init() {
	if liberr.ExistInMapMessage(ErrInvalidAddress) {
		panic(fmt.Errorf("error code collision with package transport"))
	}
	liberr.RegisterIdFctMessage(ErrInvalidAddress, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrInvalidAddress:
		return "channel address must be tcp://, ipc://, inproc:// or verbs:// with a non-empty authority"
	case ErrInvalidSocketType:
		return "unknown socket type"
	case ErrInvalidMethod:
		return "method must be 'bind' or 'connect'"
	case ErrTransportMismatch:
		return "message transport tag does not match socket transport"
	case ErrUnknownTransport:
		return "no transport factory registered under this name"
	}

	return liberr.NullMessage
}

// ErrorFilter drops noise produced by a local, intentional socket close so
// callers do not have to special-case it on every Read/Write. Grounded on
// the teacher's socket.ErrorFilter behavior (filters "use of closed network
// connection" exactly, but not errors that merely mention it in passing
// alongside other context).
func ErrorFilter(err error) error {
	if err == nil {
		return nil
	}

	if err.Error() == "use of closed network connection" {
		return nil
	}

	return err
}
