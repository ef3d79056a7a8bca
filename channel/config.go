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

// Package channel implements the named, validated socket group devices
// configure and bind: one Channel owns an ordered list of sub-sockets so a
// single logical name can fan out to several peers, per spec section 4.2.
package channel

import (
	"github.com/nabbar/fairgo/duration"
	libtsp "github.com/nabbar/fairgo/transport"
)

// Config is a channel's declared configuration, validated once at the
// transition into Initialized.
type Config struct {
	Name          string
	Type          libtsp.SockType
	Method        libtsp.Method
	Address       string
	TransportName string
	NumSubSockets int

	RateLoggingInterval duration.Duration

	Options libtsp.Options
}

// Validate enforces spec section 4.2's rules: method, address syntax,
// non-negative tunables, and a recognized socket type.
func (c Config) Validate() error {
	if c.Name == "" {
		return ErrInvalidName.Error(nil)
	}
	if c.Method != libtsp.Bind && c.Method != libtsp.Connect {
		return ErrInvalidMethod.Error(nil)
	}
	if _, err := libtsp.ParseAddress(c.Address); err != nil {
		return ErrInvalidAddress.Error(err)
	}

	switch c.Type {
	case libtsp.Pair, libtsp.Pub, libtsp.Sub, libtsp.XPub, libtsp.XSub,
		libtsp.Push, libtsp.Pull, libtsp.Req, libtsp.Rep, libtsp.Dealer, libtsp.Router:
	default:
		return ErrInvalidSockType.Error(nil)
	}

	if c.Options.Linger < 0 || c.Options.SendHWM < 0 || c.Options.RecvHWM < 0 ||
		c.Options.SendBufSize < 0 || c.Options.RecvBufSize < 0 ||
		c.Options.SendKernelSize < 0 || c.Options.RecvKernelSize < 0 ||
		c.RateLoggingInterval < 0 {
		return ErrNegativeTunable.Error(nil)
	}

	return nil
}
