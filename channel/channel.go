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
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	errpool "github.com/nabbar/fairgo/errors/pool"
	libmsg "github.com/nabbar/fairgo/message"
	libtsp "github.com/nabbar/fairgo/transport"
)

// Channel is a named, validated group of sub-sockets built against one
// transport.Factory. Binding or connecting opens every sub-socket; both
// are idempotent, re-entering from an already-open Channel is a no-op.
type Channel struct {
	cfg Config
	log *logrus.Entry

	mu      sync.Mutex
	opened  bool
	frozen  atomic.Bool
	sockets []libtsp.Socket
	metrics *metricSet

	stopRate chan struct{}
}

// New validates cfg and returns an unopened Channel. NumSubSockets
// defaults to 1 if unset.
func New(cfg Config, log *logrus.Entry, reg prometheus.Registerer) (*Channel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.NumSubSockets <= 0 {
		cfg.NumSubSockets = 1
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Channel{
		cfg:     cfg,
		log:     log.WithField("channel", cfg.Name),
		metrics: newMetricSet(reg),
	}, nil
}

func (c *Channel) Name() string           { return c.cfg.Name }
func (c *Channel) Config() Config         { return c.cfg }
func (c *Channel) NumSubSockets() int     { return c.cfg.NumSubSockets }

// Freeze forbids further reconfiguration, called once the owning device
// enters Bound per spec section 4.5's "After Bound, channel identities are
// frozen."
func (c *Channel) Freeze() { c.frozen.Store(true) }

func (c *Channel) checkNotFrozen() error {
	if c.frozen.Load() {
		return ErrFrozen.Error(nil)
	}
	return nil
}

// Reconfigure replaces the channel's configuration in place, as
// device.AddChannel does when a caller redefines an existing channel name
// before the device binds. Rejected once Freeze has been called.
func (c *Channel) Reconfigure(cfg Config) error {
	if err := c.checkNotFrozen(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.NumSubSockets <= 0 {
		cfg.NumSubSockets = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opened {
		return ErrFrozen.Error(fmt.Errorf("channel %q already open", c.cfg.Name))
	}
	c.cfg = cfg
	return nil
}

// Open creates every sub-socket against factory and binds or connects it
// per the channel's configured method. Calling Open again is a no-op.
func (c *Channel) Open(factory libtsp.Factory) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opened {
		return nil
	}

	addr, err := libtsp.ParseAddress(c.cfg.Address)
	if err != nil {
		return err
	}

	sockets := make([]libtsp.Socket, 0, c.cfg.NumSubSockets)
	for i := 0; i < c.cfg.NumSubSockets; i++ {
		s, err := factory.NewSocket(c.cfg.Type, c.cfg.Method, addr, c.cfg.Options)
		if err != nil {
			for _, opened := range sockets {
				_ = opened.Close()
			}
			return err
		}
		sockets = append(sockets, s)
	}

	c.sockets = sockets
	c.opened = true
	c.log.WithFields(logrus.Fields{
		"type": c.cfg.Type.String(), "method": c.cfg.Method.String(),
		"address": c.cfg.Address, "subSockets": len(sockets),
	}).Info("channel opened")

	if c.cfg.RateLoggingInterval > 0 {
		c.startRateLogging()
	}

	return nil
}

func (c *Channel) startRateLogging() {
	c.stopRate = make(chan struct{})
	ticker := time.NewTicker(c.cfg.RateLoggingInterval.Time())

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.logRates()
			case <-c.stopRate:
				return
			}
		}
	}()
}

func (c *Channel) logRates() {
	c.mu.Lock()
	sockets := append([]libtsp.Socket(nil), c.sockets...)
	c.mu.Unlock()

	for i, s := range sockets {
		st := s.Stats()
		c.log.WithFields(logrus.Fields{
			"subSocket": i, "bytesSent": st.BytesSent(), "bytesRecv": st.BytesRecv(),
			"msgSent": st.MsgSent(), "msgRecv": st.MsgRecv(), "peers": st.Peers(),
		}).Info("channel rate")
	}
}

// Send transmits msg on the i-th sub-socket.
func (c *Channel) Send(i int, msg libmsg.Message, timeoutMs int) libtsp.Result {
	s, err := c.subSocket(i)
	if err != nil {
		return libtsp.ResultError
	}

	r := s.Send(msg, timeoutMs)
	if r > 0 {
		c.metrics.observeSend(c.cfg.Name, strconv.Itoa(i), int(r))
	}
	return r
}

// Receive reads the next message off the i-th sub-socket.
func (c *Channel) Receive(i int, timeoutMs int) (libmsg.Message, libtsp.Result) {
	s, err := c.subSocket(i)
	if err != nil {
		return nil, libtsp.ResultError
	}

	m, r := s.Receive(timeoutMs)
	if r > 0 {
		c.metrics.observeRecv(c.cfg.Name, strconv.Itoa(i), int(r))
	}
	return m, r
}

// SendParts/ReceiveParts carry the multipart atomicity guarantee of spec
// section 4.2 through to the i-th sub-socket.
func (c *Channel) SendParts(i int, parts []libmsg.Message, timeoutMs int) libtsp.Result {
	s, err := c.subSocket(i)
	if err != nil {
		return libtsp.ResultError
	}

	r := s.SendParts(parts, timeoutMs)
	if r > 0 {
		c.metrics.observeSend(c.cfg.Name, strconv.Itoa(i), int(r))
	}
	return r
}

func (c *Channel) ReceiveParts(i int, timeoutMs int) ([]libmsg.Message, libtsp.Result) {
	s, err := c.subSocket(i)
	if err != nil {
		return nil, libtsp.ResultError
	}

	parts, r := s.ReceiveParts(timeoutMs)
	if r > 0 {
		c.metrics.observeRecv(c.cfg.Name, strconv.Itoa(i), int(r))
	}
	return parts, r
}

func (c *Channel) subSocket(i int) (libtsp.Socket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.sockets) == 0 {
		return nil, ErrNoSubSocket.Error(nil)
	}
	if i < 0 || i >= len(c.sockets) {
		return nil, ErrSubSocketIndex.Error(fmt.Errorf("index %d, have %d sub-sockets", i, len(c.sockets)))
	}
	return c.sockets[i], nil
}

// Sockets exposes the ordered sub-socket list, for Poller construction.
func (c *Channel) Sockets() []libtsp.Socket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]libtsp.Socket(nil), c.sockets...)
}

// Close stops rate logging and closes every sub-socket. Every sub-socket is
// given a chance to close even if an earlier one fails; the returned error
// combines all failures, not just the first.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopRate != nil {
		close(c.stopRate)
		c.stopRate = nil
	}

	errs := errpool.New()
	for _, s := range c.sockets {
		errs.Add(s.Close())
	}
	c.opened = false
	return errs.Error()
}
