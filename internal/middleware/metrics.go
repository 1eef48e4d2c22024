package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/fairsplit/internal/metrics"
)

// MetricsInterceptor records the count and latency of every RPC call.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.RequestsTotal.WithLabelValues(procedure, code).Inc()
			m.RequestDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}
