package metrics

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// AppMetrics holds the application's instruments. A nil *AppMetrics is
// valid and records nothing, so callers never have to branch on whether
// metrics are enabled.
type AppMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	OrdersCreated  metric.Int64Counter
	RevenueTotal   metric.Float64Counter
	CartItemsAdded metric.Int64Counter
	CacheHits      metric.Int64Counter
	CacheMisses    metric.Int64Counter
}

// Init sets up the OTLP HTTP exporter and the meter provider. The endpoint
// comes from OTEL_EXPORTER_OTLP_ENDPOINT (host:port, no scheme).
func Init(ctx context.Context) (*AppMetrics, *sdkmetric.MeterProvider, error) {
	serviceName := envOr("OTEL_SERVICE_NAME", "e-store-api")

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(envOr("OTEL_SERVICE_VERSION", "1.0.0")),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporterOpts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")),
		otlpmetrichttp.WithURLPath("/v1/metrics"),
	}
	if envOr("OTEL_EXPORTER_OTLP_INSECURE", "true") == "true" {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(10*time.Second),
		)),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(serviceName)
	m := &AppMetrics{}

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, nil, err
	}
	if m.OrdersCreated, err = meter.Int64Counter(
		"orders_created_total",
		metric.WithDescription("Total number of orders created"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, err
	}
	if m.RevenueTotal, err = meter.Float64Counter(
		"revenue_total",
		metric.WithDescription("Total revenue across created orders"),
		metric.WithUnit("USD"),
	); err != nil {
		return nil, nil, err
	}
	if m.CartItemsAdded, err = meter.Int64Counter(
		"cart_items_added_total",
		metric.WithDescription("Total number of items added to carts"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, err
	}
	if m.CacheHits, err = meter.Int64Counter(
		"cache_hits_total",
		metric.WithDescription("Product cache hits"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, err
	}
	if m.CacheMisses, err = meter.Int64Counter(
		"cache_misses_total",
		metric.WithDescription("Product cache misses"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, err
	}

	return m, meterProvider, nil
}

func (m *AppMetrics) CountRequest(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.response.status_code", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}

func (m *AppMetrics) CountOrder(ctx context.Context, total float64) {
	if m == nil {
		return
	}
	m.OrdersCreated.Add(ctx, 1)
	m.RevenueTotal.Add(ctx, total)
}

func (m *AppMetrics) CountCartAdd(ctx context.Context, quantity int) {
	if m == nil {
		return
	}
	m.CartItemsAdded.Add(ctx, int64(quantity))
}

func (m *AppMetrics) CountCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheHits.Add(ctx, 1)
}

func (m *AppMetrics) CountCacheMiss(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheMisses.Add(ctx, 1)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
