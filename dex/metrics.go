// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"strconv"
	"time"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const resultOK = "ok"

type metrics struct {
	operations   *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	poolsCreated prometheus.Counter
	swaps        prometheus.Counter
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tokendex",
			Name:      "operations",
			Help:      "number of mutating operations by outcome",
		}, []string{"operation", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tokendex",
			Name:      "operation_seconds",
			Help:      "time spent processing mutating operations",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"operation"}),
		poolsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tokendex",
			Name:      "pools_created",
			Help:      "number of pools created",
		}),
		swaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tokendex",
			Name:      "swaps",
			Help:      "number of swaps executed",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.operations),
		r.Register(m.latency),
		r.Register(m.poolsCreated),
		r.Register(m.swaps),
	)
	return m, errs.Err
}

func (m *metrics) observe(operation string, start time.Time, err error) {
	m.latency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	result := resultOK
	if err != nil {
		result = "error"
		if code, ok := CodeOf(err); ok {
			result = strconv.FormatUint(uint64(code), 10)
		}
	}
	m.operations.WithLabelValues(operation, result).Inc()
}
