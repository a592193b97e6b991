// Package telemetry installs the global OpenTelemetry meter provider and
// exposes it in Prometheus format.
package telemetry

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

const serviceName = "lecture-notes"

// Telemetry owns the meter provider installed by Setup.
type Telemetry struct {
	provider *sdkmetric.MeterProvider
	handler  http.Handler
}

// Setup registers a Prometheus-backed meter provider as the global
// provider. When disabled it returns a Telemetry with no handler and the
// global no-op provider stays in place.
func Setup(enabled bool, log logger.Logger) (*Telemetry, error) {
	if !enabled {
		return &Telemetry{}, nil
	}

	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	log.Info(context.Background(), "Telemetry initialized with prometheus exporter")

	return &Telemetry{
		provider: provider,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, nil
}

// Handler serves /metrics, or nil when telemetry is disabled.
func (t *Telemetry) Handler() http.Handler {
	return t.handler
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
