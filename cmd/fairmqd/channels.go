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

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nabbar/fairgo/channel"
	"github.com/nabbar/fairgo/duration"
	libtsp "github.com/nabbar/fairgo/transport"
)

// channelEntry is one chans.<name>.<subIndex> leaf before it is folded
// into a channel.Config; every subIndex found under a name contributes one
// sub-socket, and the first (lowest index) one supplies the shared fields.
type channelEntry struct {
	typ, method, address, transport string
	sndBufSize, rcvBufSize          int
	sndKernelSize, rcvKernelSize    int
	linger                          time.Duration
	rateLogging                     duration.Duration
}

// parseChannelConfigFile reads the `chans.<channelName>.<subIndex>.*` keyed
// structure spec section 6 describes, via the same viper that backs the
// CLI flags, and folds each channel name's sub-indices into one
// channel.Config with NumSubSockets set to the sub-index count.
func parseChannelConfigFile(v *viper.Viper) ([]channel.Config, error) {
	chans, ok := v.Get("chans").(map[string]interface{})
	if !ok {
		return nil, nil
	}

	var out []channel.Config
	for name, raw := range chans {
		subs, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		indices := make([]string, 0, len(subs))
		for idx := range subs {
			indices = append(indices, idx)
		}
		sort.Strings(indices)

		entries := make([]channelEntry, 0, len(indices))
		for _, idx := range indices {
			key := "chans." + name + "." + idx
			entry := channelEntry{
				typ:           v.GetString(key + ".type"),
				method:        v.GetString(key + ".method"),
				address:       v.GetString(key + ".address"),
				transport:     v.GetString(key + ".transport"),
				sndBufSize:    v.GetInt(key + ".sndBufSize"),
				rcvBufSize:    v.GetInt(key + ".rcvBufSize"),
				sndKernelSize: v.GetInt(key + ".sndKernelSize"),
				rcvKernelSize: v.GetInt(key + ".rcvKernelSize"),
				linger:        v.GetDuration(key + ".linger"),
			}
			if rl := v.GetString(key + ".rateLogging"); rl != "" {
				d, err := duration.Parse(rl)
				if err != nil {
					return nil, ErrInvalidChannelSpec.Error(fmt.Errorf("channel %q: rateLogging: %w", name, err))
				}
				entry.rateLogging = d
			}
			entries = append(entries, entry)
		}
		if len(entries) == 0 {
			continue
		}

		cfg, err := entries[0].toConfig(name, len(entries))
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (e channelEntry) toConfig(name string, numSub int) (channel.Config, error) {
	st, err := libtsp.ParseSockType(e.typ)
	if err != nil {
		return channel.Config{}, ErrInvalidChannelSpec.Error(fmt.Errorf("channel %q: %w", name, err))
	}
	m, err := libtsp.ParseMethod(e.method)
	if err != nil {
		return channel.Config{}, ErrInvalidChannelSpec.Error(fmt.Errorf("channel %q: %w", name, err))
	}

	return channel.Config{
		Name:                name,
		Type:                st,
		Method:              m,
		Address:             e.address,
		TransportName:       e.transport,
		NumSubSockets:       numSub,
		RateLoggingInterval: e.rateLogging,
		Options: libtsp.Options{
			Linger:         e.linger,
			SendBufSize:    e.sndBufSize,
			RecvBufSize:    e.rcvBufSize,
			SendKernelSize: e.sndKernelSize,
			RecvKernelSize: e.rcvKernelSize,
		},
	}, nil
}

// parseInlineChannelConfig parses one --channel-config value: semicolons
// separate channel definitions, commas separate k=v fields within one,
// and a leading name=... selects the channel being defined.
func parseInlineChannelConfig(spec string) ([]channel.Config, error) {
	var out []channel.Config
	for _, group := range strings.Split(spec, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}

		fields := make(map[string]string)
		for _, kv := range strings.Split(group, ",") {
			kv = strings.TrimSpace(kv)
			if kv == "" {
				continue
			}
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) != 2 {
				return nil, ErrInvalidChannelSpec.Error(fmt.Errorf("field %q missing '='", kv))
			}
			fields[strings.ToLower(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
		}

		name, ok := fields["name"]
		if !ok || name == "" {
			return nil, ErrMissingChannelName.Error(fmt.Errorf("in %q", group))
		}

		st, err := libtsp.ParseSockType(fields["type"])
		if err != nil {
			return nil, ErrInvalidChannelSpec.Error(fmt.Errorf("channel %q: %w", name, err))
		}
		m, err := libtsp.ParseMethod(fields["method"])
		if err != nil {
			return nil, ErrInvalidChannelSpec.Error(fmt.Errorf("channel %q: %w", name, err))
		}

		numSub := 1
		if n, ok := fields["numsubsockets"]; ok {
			if parsed, err := strconv.Atoi(n); err == nil && parsed > 0 {
				numSub = parsed
			}
		}

		var linger time.Duration
		if l, ok := fields["linger"]; ok {
			linger, _ = time.ParseDuration(l)
		}
		var rateLogging duration.Duration
		if r, ok := fields["ratelogging"]; ok {
			d, err := duration.Parse(r)
			if err != nil {
				return nil, ErrInvalidChannelSpec.Error(fmt.Errorf("channel %q: rateLogging: %w", name, err))
			}
			rateLogging = d
		}

		out = append(out, channel.Config{
			Name:                name,
			Type:                st,
			Method:              m,
			Address:             fields["address"],
			TransportName:       fields["transport"],
			NumSubSockets:       numSub,
			RateLoggingInterval: rateLogging,
			Options: libtsp.Options{
				Linger:         linger,
				SendBufSize:    atoiOr0(fields["sndbufsize"]),
				RecvBufSize:    atoiOr0(fields["rcvbufsize"]),
				SendKernelSize: atoiOr0(fields["sndkernelsize"]),
				RecvKernelSize: atoiOr0(fields["rcvkernelsize"]),
			},
		})
	}
	return out, nil
}

func atoiOr0(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
