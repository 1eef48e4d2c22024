// Package metrics exposes Prometheus collectors for the bill service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fairsplit"

// Metrics holds the collectors recorded by the RPC interceptor and the
// bill service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Transfers       prometheus.Histogram
	DroppedShares   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency, by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers in each computed settlement plan.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		DroppedShares: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_shares_total",
			Help:      "Item portions and payments left out because they reference a removed participant.",
		}, []string{"role"}),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.Transfers, m.DroppedShares)
	return m
}
