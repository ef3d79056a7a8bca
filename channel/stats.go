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
	"github.com/prometheus/client_golang/prometheus"
)

// metricSet is the registry wrapper a Channel uses to expose its
// per-sub-socket counters, in the style of the teacher's
// prometheus.Prometheus/AddMetric/GetMetric registry (test-only in this
// pack; authored fresh here directly against the upstream
// prometheus/client_golang vectors it wraps).
type metricSet struct {
	bytesSent *prometheus.CounterVec
	bytesRecv *prometheus.CounterVec
	msgSent   *prometheus.CounterVec
	msgRecv   *prometheus.CounterVec
}

func newMetricSet(reg prometheus.Registerer) *metricSet {
	m := &metricSet{
		bytesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairgo", Subsystem: "channel", Name: "bytes_sent_total",
			Help: "Bytes sent on a channel's sub-socket.",
		}, []string{"channel", "sub_socket"}),
		bytesRecv: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairgo", Subsystem: "channel", Name: "bytes_received_total",
			Help: "Bytes received on a channel's sub-socket.",
		}, []string{"channel", "sub_socket"}),
		msgSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairgo", Subsystem: "channel", Name: "messages_sent_total",
			Help: "Messages sent on a channel's sub-socket.",
		}, []string{"channel", "sub_socket"}),
		msgRecv: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairgo", Subsystem: "channel", Name: "messages_received_total",
			Help: "Messages received on a channel's sub-socket.",
		}, []string{"channel", "sub_socket"}),
	}

	if reg != nil {
		reg.MustRegister(m.bytesSent, m.bytesRecv, m.msgSent, m.msgRecv)
	}

	return m
}

func (m *metricSet) observeSend(channel, subSocket string, n int) {
	if n <= 0 {
		return
	}
	m.bytesSent.WithLabelValues(channel, subSocket).Add(float64(n))
	m.msgSent.WithLabelValues(channel, subSocket).Inc()
}

func (m *metricSet) observeRecv(channel, subSocket string, n int) {
	if n <= 0 {
		return
	}
	m.bytesRecv.WithLabelValues(channel, subSocket).Add(float64(n))
	m.msgRecv.WithLabelValues(channel, subSocket).Inc()
}
