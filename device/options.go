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

package device

import (
	"fmt"
	"strings"

	liblog "github.com/nabbar/fairgo/logger"
	"github.com/nabbar/fairgo/transport/network"
	"github.com/nabbar/fairgo/transport/shmem"
	libtsp "github.com/nabbar/fairgo/transport"
	"github.com/prometheus/client_golang/prometheus"
)

// Options configures the device's identity, default transport and
// logging, mirroring the command-line surface of cmd/fairmqd.
type Options struct {
	ID               string
	DefaultTransport string // "zeromq" (default) or "shmem"
	Control          ControlMode
	Session          string

	Level liblog.Level
	Color bool

	NatsURL string
	Shmem   shmem.FactoryOptions

	Metrics prometheus.Registerer
}

// buildTransport constructs the factory backing opt.DefaultTransport,
// registered under the "default" name every channel resolves to when its
// config leaves TransportName blank.
func buildTransport(opt Options) (libtsp.Factory, error) {
	switch strings.ToLower(opt.DefaultTransport) {
	case "", "zeromq":
		return network.New(opt.NatsURL)
	case "shmem":
		so := opt.Shmem
		if so.Session == "" {
			so.Session = opt.Session
		}
		if so.NatsURL == "" {
			so.NatsURL = opt.NatsURL
		}
		return shmem.New(so)
	default:
		return nil, ErrUnknownTransport.Error(fmt.Errorf("transport kind %q", opt.DefaultTransport))
	}
}
