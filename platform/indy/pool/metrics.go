/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pool

import (
	"time"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess  = "success"
	statusRejected = "rejected"
	statusFailed   = "failed"
	statusTimeout  = "timeout"
	statusCanceled = "canceled"
)

// Metrics records the outcome and latency of every pool operation.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics creates the pool metrics and registers them with reg, if not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := newMetrics()
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Operations, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(err, "failed registering pool metrics")
		}
	}
	return m, nil
}

// newMetrics creates pool metrics that are not registered anywhere.
func newMetrics() *Metrics {
	return &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "indy",
			Subsystem: "pool",
			Name:      "operations_total",
			Help:      "Number of pool operations by outcome.",
		}, []string{"operation", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "indy",
			Subsystem: "pool",
			Name:      "operation_duration_seconds",
			Help:      "Time from issuing a pool operation to its completion.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 9),
		}, []string{"operation"}),
	}
}

func (m *Metrics) observe(op string, status string, elapsed time.Duration) {
	m.Operations.WithLabelValues(op, status).Inc()
	m.Duration.WithLabelValues(op).Observe(elapsed.Seconds())
}
