// Package metrics builds the OpenTelemetry meter provider exported through
// Prometheus and the instruments the link service records.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "shortener"

// NewPrometheusProvider returns a meter provider whose instruments are
// collected by reg.
func NewPrometheusProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// Instruments groups the link service metrics.
type Instruments struct {
	// LinksShortened counts successful shorten calls.
	LinksShortened metric.Int64Counter
	// Redirects counts resolved codes, labelled by whether the cache answered.
	Redirects metric.Int64Counter
	// ResolveDuration records how long resolving a code took, in seconds.
	ResolveDuration metric.Float64Histogram
	// ClicksRecorded counts clicks persisted by the worker.
	ClicksRecorded metric.Int64Counter
}

// NewInstruments creates the instruments on mp.
func NewInstruments(mp metric.MeterProvider) (*Instruments, error) {
	meter := mp.Meter(meterName)

	shortened, err := meter.Int64Counter("links_shortened",
		metric.WithDescription("Number of URLs shortened."))
	if err != nil {
		return nil, fmt.Errorf("could not create links_shortened counter: %w", err)
	}
	redirects, err := meter.Int64Counter("link_redirects",
		metric.WithDescription("Number of short codes resolved to their URL."))
	if err != nil {
		return nil, fmt.Errorf("could not create link_redirects counter: %w", err)
	}
	resolve, err := meter.Float64Histogram("link_resolve_duration",
		metric.WithDescription("Time spent resolving a short code."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create link_resolve_duration histogram: %w", err)
	}
	clicks, err := meter.Int64Counter("link_clicks_recorded",
		metric.WithDescription("Number of clicks persisted by the worker."))
	if err != nil {
		return nil, fmt.Errorf("could not create link_clicks_recorded counter: %w", err)
	}

	return &Instruments{
		LinksShortened:  shortened,
		Redirects:       redirects,
		ResolveDuration: resolve,
		ClicksRecorded:  clicks,
	}, nil
}
