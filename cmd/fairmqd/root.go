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

// Command fairmqd hosts one device: it wires the command-line surface of
// spec section 6 onto the device package, the way the teacher layers a
// viper-backed cobra command over each of its config/components.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/fairgo/channel"
	"github.com/nabbar/fairgo/device"
	liblog "github.com/nabbar/fairgo/logger"
	"github.com/nabbar/fairgo/transport/shmem"
)

var vpr = viper.New()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fairmqd",
		Short:         "run one FairGo device",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDevice,
	}

	flg := cmd.PersistentFlags()
	flg.String("id", "", "identifier of this device instance (required)")
	flg.String("transport", "zeromq", "default transport for channels without their own: zeromq or shmem")
	flg.String("control", "static", "who drives the state machine: static, interactive or dds")
	flg.String("session", "", "session name; all devices sharing data-segment/IPC paths must agree")
	flg.String("mq-config", "", "path to a channel configuration file")
	flg.StringArray("channel-config", nil, "inline channel definition: name=foo,type=push,method=bind,address=...[;...]; repeatable")
	flg.String("severity", liblog.InfoLevel.String(), "log verbosity: "+joinLevels())
	flg.Bool("color", true, "colorize the log output")
	flg.String("nats-url", "", "NATS URL backing the network/shmem transports (defaults to the client library's own default)")
	flg.Int("shm-segment-size", 64<<20, "size in bytes of the default shared-memory data segment")
	flg.Bool("shm-mlock-segment-on-creation", false, "mlock the default segment when it is created")
	flg.Bool("shm-zero-segment-on-creation", false, "zero the default segment when it is created")
	flg.Bool("shm-mlock-segment", false, "alias of shm-mlock-segment-on-creation; this transport only mlocks at creation time")
	flg.Bool("shm-zero-segment", false, "alias of shm-zero-segment-on-creation; this transport only zeroes at creation time")

	for _, name := range []string{
		"id", "transport", "control", "session", "mq-config", "channel-config",
		"severity", "color", "nats-url", "shm-segment-size",
		"shm-mlock-segment-on-creation", "shm-zero-segment-on-creation",
		"shm-mlock-segment", "shm-zero-segment",
	} {
		if err := vpr.BindPFlag(name, flg.Lookup(name)); err != nil {
			panic(fmt.Errorf("binding --%s: %w", name, err))
		}
	}
	vpr.SetConfigType("json")

	return cmd
}

func joinLevels() string {
	levels := liblog.GetLevelListString()
	out := levels[0]
	for _, l := range levels[1:] {
		out += ", " + l
	}
	return out
}

// buildOptions folds the bound flags (and, once loaded, --mq-config's own
// viper-readable content) into a device.Options. It never touches the
// network: device.New does that.
func buildOptions() device.Options {
	return device.Options{
		ID:               vpr.GetString("id"),
		DefaultTransport: vpr.GetString("transport"),
		Session:          vpr.GetString("session"),
		Level:            liblog.ParseLevel(vpr.GetString("severity")),
		Color:            vpr.GetBool("color"),
		NatsURL:          vpr.GetString("nats-url"),
		Shmem: shmem.FactoryOptions{
			Session:     vpr.GetString("session"),
			SegmentSize: vpr.GetInt("shm-segment-size"),
			Zero:        vpr.GetBool("shm-zero-segment-on-creation") || vpr.GetBool("shm-zero-segment"),
			Lock:        vpr.GetBool("shm-mlock-segment-on-creation") || vpr.GetBool("shm-mlock-segment"),
			NatsURL:     vpr.GetString("nats-url"),
		},
	}
}

// loadChannels merges --mq-config's file (if any) with every --channel-config
// occurrence, file first so inline definitions can override a channel the
// file also names.
func loadChannels() ([]channel.Config, error) {
	var out []channel.Config

	if path := vpr.GetString("mq-config"); path != "" {
		fv := viper.New()
		fv.SetConfigFile(path)
		if err := fv.ReadInConfig(); err != nil {
			return nil, ErrConfigFileUnreadable.Error(err)
		}
		fromFile, err := parseChannelConfigFile(fv)
		if err != nil {
			return nil, err
		}
		out = append(out, fromFile...)
	}

	for _, spec := range vpr.GetStringSlice("channel-config") {
		parsed, err := parseInlineChannelConfig(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed...)
	}

	return out, nil
}

func runDevice(cmd *cobra.Command, args []string) error {
	opt := buildOptions()
	control, err := device.ParseControlMode(vpr.GetString("control"))
	if err != nil {
		return err
	}
	opt.Control = control

	chans, err := loadChannels()
	if err != nil {
		return err
	}

	d, err := device.New(opt, device.Hooks{})
	if err != nil {
		return err
	}
	for _, cfg := range chans {
		if err := d.AddChannel(cfg.Name, cfg); err != nil {
			return fmt.Errorf("channel %q: %w", cfg.Name, err)
		}
	}

	exitCode = d.Run()
	return nil
}

// exitCode carries runDevice's result past cobra's RunE, which only
// distinguishes error/no-error, into main's os.Exit per spec section 6's
// three-way exit code contract.
var exitCode int

func execute() int {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return exitCode
}
