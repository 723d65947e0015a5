// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Wrapper = (*metricsWrapper)(nil)

type metricsWrapper struct {
	inFlight prometheus.Gauge
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsWrapper returns a [Wrapper] recording in-flight requests, calls
// by status code and request latency on [registerer].
func NewMetricsWrapper(registerer prometheus.Registerer) (Wrapper, error) {
	m := &metricsWrapper{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_calls_processing",
			Help: "number of HTTP calls currently being processed",
		}),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_calls",
				Help: "number of HTTP calls handled",
			},
			[]string{"code", "method"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_call_duration_seconds",
				Help:    "time spent handling HTTP calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.inFlight),
		registerer.Register(m.calls),
		registerer.Register(m.duration),
	)
	return m, errs.Err
}

func (m *metricsWrapper) WrapHandler(h http.Handler) http.Handler {
	return promhttp.InstrumentHandlerInFlight(
		m.inFlight,
		promhttp.InstrumentHandlerDuration(
			m.duration,
			promhttp.InstrumentHandlerCounter(m.calls, h),
		),
	)
}
