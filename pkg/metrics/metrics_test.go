package metrics_test

import (
	"context"
	"shortener/pkg/metrics"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestInstruments_record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	ins, err := metrics.NewInstruments(mp)
	require.NoError(t, err)

	ctx := context.Background()
	ins.LinksShortened.Add(ctx, 2)
	ins.Redirects.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cached", true)))
	ins.ResolveDuration.Record(ctx, 0.02)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	shortened, ok := byName["links_shortened"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Equal(t, int64(2), shortened.DataPoints[0].Value)

	hist, ok := byName["link_resolve_duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Equal(t, metrics.DefaultBuckets, hist.DataPoints[0].Bounds)
	require.Equal(t, uint64(1), hist.DataPoints[0].Count)
}

func TestNewPrometheusProvider(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewPrometheusProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	ins, err := metrics.NewInstruments(mp)
	require.NoError(t, err)
	ins.LinksShortened.Add(context.Background(), 1)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "links_shortened") {
			found = true
		}
	}
	require.True(t, found, "links_shortened not exported")
}
