package api

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// clientMetrics は API 呼び出しの計測器
// プロバイダ未設定時はグローバルの no-op 実装になる
type clientMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newClientMetrics(meter metric.Meter) *clientMetrics {
	m := &clientMetrics{}

	requests, err := meter.Int64Counter("pandalog.api.requests",
		metric.WithDescription("Number of Graylog API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		otel.Handle(err)
	} else {
		m.requests = requests
	}

	duration, err := meter.Float64Histogram("pandalog.api.request.duration",
		metric.WithDescription("Duration of Graylog API requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		otel.Handle(err)
	} else {
		m.duration = duration
	}

	return m
}

// record は1リクエスト分の計測値を記録する
// status が 0 の場合は通信エラー
func (m *clientMetrics) record(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.String("http.response.status_code", strconv.Itoa(status)),
	)
	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
