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

// Package device wires the channel, transport and state packages together
// into the runnable unit spec section 4.5 describes: a named set of
// channels bound to transports, a lifecycle state machine, and a control
// driver that feeds it transition requests.
package device

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/fairgo/channel"
	liblog "github.com/nabbar/fairgo/logger"
	libmsg "github.com/nabbar/fairgo/message"
	"github.com/nabbar/fairgo/properties"
	"github.com/nabbar/fairgo/state"
	libtsp "github.com/nabbar/fairgo/transport"
)

// DataHandler is a per-channel callback registered through OnData. It
// returns false once it no longer wants to be driven, letting the worker
// thread retire handlers independently of PreRun/PostRun.
type DataHandler func(msg libmsg.Message) bool

// Device is one FairMQ-style runtime unit: an id, a logger, a property
// store, a set of named channels resolved against one or more transport
// factories, and the state machine driving them through their lifecycle.
type Device struct {
	id    string
	opt   Options
	log   liblog.Logger
	hooks Hooks

	props   *properties.Store
	machine *state.StateMachine

	tmu        sync.Mutex
	transports map[string]libtsp.Factory

	mu             sync.Mutex
	channels       map[string]*channel.Channel
	handlers       map[string][]DataHandler
	channelsFrozen bool

	metrics prometheus.Registerer
}

// New builds a Device in the Idle state. The returned Device has not
// started its state machine; call Run to drive it.
func New(opt Options, hooks Hooks) (*Device, error) {
	if opt.ID == "" {
		return nil, ErrMissingID.Error(nil)
	}

	tf, err := buildTransport(opt)
	if err != nil {
		return nil, err
	}

	return newDevice(opt, hooks, tf)
}

// newDevice is New with the default transport factory taken as a
// parameter instead of built from opt, so tests can substitute an
// in-memory Factory without dialing the network transport's NATS
// connection.
func newDevice(opt Options, hooks Hooks, tf libtsp.Factory) (*Device, error) {
	log, err := liblog.NewFrom(context.Background(), liblog.Options{
		Level:        opt.Level,
		DisableColor: !opt.Color,
	})
	if err != nil {
		return nil, err
	}
	log.AddField("device", opt.ID)

	metrics := opt.Metrics
	if metrics == nil {
		metrics = prometheus.DefaultRegisterer
	}

	d := &Device{
		id:         opt.ID,
		opt:        opt,
		log:        log,
		hooks:      hooks,
		props:      properties.New(),
		transports: map[string]libtsp.Factory{"default": tf},
		channels:   make(map[string]*channel.Channel),
		handlers:   make(map[string][]DataHandler),
		metrics:    metrics,
	}

	// FAIRMQ_PATH and DDS_SESSION_ID are external-interface conventions:
	// surface whatever the environment provides through the property
	// store so hooks and a dds control driver can read them uniformly.
	if v, ok := os.LookupEnv("FAIRMQ_PATH"); ok {
		_ = d.props.Set("FAIRMQ_PATH", v)
	}
	if v, ok := os.LookupEnv("DDS_SESSION_ID"); ok {
		_ = d.props.Set("DDS_SESSION_ID", v)
	}
	if opt.Session != "" {
		_ = d.props.Set("session", opt.Session)
	}

	d.machine = state.New(state.Hooks{
		Init:         d.wrapHook(hooks.Init),
		BindFinal:    d.bindFinal,
		ConnectFinal: d.connectFinal,
		InitTask:     d.wrapHook(hooks.InitTask),
		EnterRunning: d.enterRunning,
		ResetTask:    d.wrapHook(hooks.ResetTask),
		Reset:        d.wrapHook(hooks.Reset),
		Teardown:     d.teardown,
	}, log.Entry().WithField("component", "state"), 32, 64)

	return d, nil
}

func (d *Device) wrapHook(fn func(d *Device) error) func() error {
	if fn == nil {
		return nil
	}
	return func() error { return fn(d) }
}

// ID returns the device's configured identity.
func (d *Device) ID() string { return d.id }

// Logger returns the device's logger, for hooks that want to emit
// structured fields of their own.
func (d *Device) Logger() liblog.Logger { return d.log }

// Properties returns the device's property store.
func (d *Device) Properties() *properties.Store { return d.props }

// RegisterTransport adds a named transport factory a channel's
// TransportName can reference. The factory registered under "default" by
// New backs channels that leave TransportName blank.
func (d *Device) RegisterTransport(name string, f libtsp.Factory) {
	d.tmu.Lock()
	defer d.tmu.Unlock()
	d.transports[name] = f
}

func (d *Device) factoryFor(name string) (libtsp.Factory, error) {
	if name == "" {
		name = "default"
	}
	d.tmu.Lock()
	defer d.tmu.Unlock()
	f, ok := d.transports[name]
	if !ok {
		return nil, ErrUnknownTransport.Error(fmt.Errorf("transport %q", name))
	}
	return f, nil
}

// AddChannel registers a channel under name. Per spec section 4.2,
// channel identities are frozen once the device reaches Bound; further
// calls after that point fail with ErrChannelsFrozen.
func (d *Device) AddChannel(name string, cfg channel.Config) error {
	cfg.Name = name

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.channelsFrozen {
		return ErrChannelsFrozen.Error(nil)
	}

	ch, err := channel.New(cfg, d.log.Entry().WithField("channel", name), d.metrics)
	if err != nil {
		return err
	}
	d.channels[name] = ch
	return nil
}

func (d *Device) channel(name string) (*channel.Channel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch, ok := d.channels[name]
	if !ok {
		return nil, ErrUnknownChannel.Error(fmt.Errorf("channel %q", name))
	}
	return ch, nil
}

// OnData registers h against channelName; the worker thread spawned for
// Running drives it with every message received on sub-socket 0 until it
// returns false or the machine has a transition pending.
func (d *Device) OnData(channelName string, h DataHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[channelName] = append(d.handlers[channelName], h)
}

// Send forwards to the named channel's sub-socket i.
func (d *Device) Send(channelName string, i int, msg libmsg.Message, timeoutMs int) libtsp.Result {
	ch, err := d.channel(channelName)
	if err != nil {
		return libtsp.ResultError
	}
	return ch.Send(i, msg, timeoutMs)
}

// Receive forwards to the named channel's sub-socket i.
func (d *Device) Receive(channelName string, i int, timeoutMs int) (libmsg.Message, libtsp.Result) {
	ch, err := d.channel(channelName)
	if err != nil {
		return nil, libtsp.ResultError
	}
	return ch.Receive(i, timeoutMs)
}

// SendParts forwards to the named channel's sub-socket i.
func (d *Device) SendParts(channelName string, i int, parts []libmsg.Message, timeoutMs int) libtsp.Result {
	ch, err := d.channel(channelName)
	if err != nil {
		return libtsp.ResultError
	}
	return ch.SendParts(i, parts, timeoutMs)
}

// ReceiveParts forwards to the named channel's sub-socket i.
func (d *Device) ReceiveParts(channelName string, i int, timeoutMs int) ([]libmsg.Message, libtsp.Result) {
	ch, err := d.channel(channelName)
	if err != nil {
		return nil, libtsp.ResultError
	}
	return ch.ReceiveParts(i, timeoutMs)
}

// NewMessage allocates a message sized for the transport backing
// channelName.
func (d *Device) NewMessage(channelName string, size int) (libmsg.Message, error) {
	ch, err := d.channel(channelName)
	if err != nil {
		return nil, err
	}
	f, err := d.factoryFor(ch.Config().TransportName)
	if err != nil {
		return nil, err
	}
	return f.NewMessage(size)
}

// NewPoller builds a Poller over the sub-sockets of every named channel.
// Every channel must resolve to the same transport kind; spec section 4.3
// only defines polling over a homogeneous collection.
func (d *Device) NewPoller(channelNames ...string) (libtsp.Poller, error) {
	if len(channelNames) == 0 {
		return nil, ErrUnknownChannel.Error(fmt.Errorf("no channels given"))
	}

	var sockets []libtsp.Socket
	var f libtsp.Factory
	for _, name := range channelNames {
		ch, err := d.channel(name)
		if err != nil {
			return nil, err
		}
		tf, err := d.factoryFor(ch.Config().TransportName)
		if err != nil {
			return nil, err
		}
		if f == nil {
			f = tf
		}
		sockets = append(sockets, ch.Sockets()...)
	}
	return f.NewPoller(sockets...)
}

// NewStatePending reports whether the state machine has a transition
// request pending, the signal hooks' and Run/ConditionalRun's escape
// hatch.
func (d *Device) NewStatePending() bool { return d.machine.NewStatePending() }

// CurrentState returns the state last reached.
func (d *Device) CurrentState() state.State { return d.machine.CurrentState() }

// ChangeState requests tr; it reports whether the request was accepted.
func (d *Device) ChangeState(tr state.Transition) bool { return d.machine.ChangeState(tr) }

// ChangeStateOrThrow requests tr, returning the rejection reason instead
// of a bool.
func (d *Device) ChangeStateOrThrow(tr state.Transition) error {
	return d.machine.ChangeStateOrThrow(tr)
}

// WaitForState blocks until target is reached, the Error state arrives
// instead, or timeoutMs elapses; timeoutMs < 0 waits forever.
func (d *Device) WaitForState(target state.State, timeoutMs int) error {
	return d.machine.WaitForState(target, timeoutMs)
}

func (d *Device) bindFinal() error {
	channels := d.snapshotChannels()

	for _, ch := range channels {
		if ch.Config().Method != libtsp.Bind {
			continue
		}
		f, err := d.factoryFor(ch.Config().TransportName)
		if err != nil {
			return err
		}
		if err := ch.Open(f); err != nil {
			return err
		}
	}

	d.mu.Lock()
	d.channelsFrozen = true
	for _, ch := range d.channels {
		ch.Freeze()
	}
	d.mu.Unlock()
	return nil
}

func (d *Device) connectFinal() error {
	for _, ch := range d.snapshotChannels() {
		if ch.Config().Method != libtsp.Connect {
			continue
		}
		f, err := d.factoryFor(ch.Config().TransportName)
		if err != nil {
			return err
		}
		if err := ch.Open(f); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) snapshotChannels() []*channel.Channel {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*channel.Channel, 0, len(d.channels))
	for _, ch := range d.channels {
		out = append(out, ch)
	}
	return out
}

func (d *Device) teardown() error {
	channels := d.snapshotChannels()

	d.tmu.Lock()
	transports := make([]libtsp.Factory, 0, len(d.transports))
	for _, f := range d.transports {
		transports = append(transports, f)
	}
	d.tmu.Unlock()

	var errs *multierror.Error
	for _, ch := range channels {
		if err := ch.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	for _, f := range transports {
		if err := f.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// Run installs SIGINT/SIGTERM handling, starts the control driver for
// opt.Control, and runs the state machine to completion. It returns the
// exit code cmd/fairmqd should use: 0 on a clean Exiting, 1 if a hook or
// the machine itself failed.
func (d *Device) Run() int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	stop := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			d.log.Warn("received interrupt signal, requesting shutdown")
			d.machine.Interrupt()
		case <-stop:
		}
	}()

	go d.runControl()

	err := d.machine.RunStateMachine()
	signal.Stop(sigCh)
	close(stop)

	if err != nil {
		d.log.Error(err)
		return 1
	}
	return 0
}
