package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider, a Meter scoped to the service, and an HTTP
// handler for the /metrics endpoint.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, metric.Meter, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	)

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)

	meter := provider.Meter(cfg.ServiceName)
	handler := promhttp.Handler()

	return provider, meter, handler, nil
}
