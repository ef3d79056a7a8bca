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

import "strings"

// Scheme is the address family accepted by channel addresses.
type Scheme string

const (
	SchemeTCP    Scheme = "tcp"
	SchemeIPC    Scheme = "ipc"
	SchemeInproc Scheme = "inproc"
	SchemeVerbs  Scheme = "verbs"
)

// Address is a parsed channel endpoint, e.g. "tcp://127.0.0.1:5555" or
// "ipc:///tmp/fmq-s1-1".
type Address struct {
	Scheme    Scheme
	Authority string
}

func (a Address) String() string {
	return string(a.Scheme) + "://" + a.Authority
}

// ParseAddress validates and splits a channel address per spec section 4.2:
// it must match tcp://, ipc://, inproc://, or verbs:// and carry a
// non-empty authority.
func ParseAddress(raw string) (Address, error) {
	for _, s := range []Scheme{SchemeTCP, SchemeIPC, SchemeInproc, SchemeVerbs} {
		prefix := string(s) + "://"
		if strings.HasPrefix(raw, prefix) {
			authority := strings.TrimPrefix(raw, prefix)
			if authority == "" {
				return Address{}, ErrInvalidAddress.Error(nil)
			}
			return Address{Scheme: s, Authority: authority}, nil
		}
	}

	return Address{}, ErrInvalidAddress.Error(nil)
}
