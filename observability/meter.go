package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/supplysched/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry metric instruments for schedule computation
// and propagation observability.
type Metrics struct {
	resolveTotal       metric.Int64Counter
	resolveDuration    metric.Float64Histogram
	propagationRounds  metric.Int64Counter
	propagationChanges metric.Int64Counter
	propagationSkips   metric.Int64Counter
	supplierErrors     metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolveTotal, err := meter.Int64Counter("schedule.resolve.total",
		metric.WithDescription("Total number of schedule resolution runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating schedule.resolve.total counter: %w", err)
	}

	resolveDuration, err := meter.Float64Histogram("schedule.resolve.duration",
		metric.WithDescription("Duration of schedule resolution runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating schedule.resolve.duration histogram: %w", err)
	}

	propagationRounds, err := meter.Int64Counter("propagation.rounds",
		metric.WithDescription("Total number of propagation preview/apply rounds"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating propagation.rounds counter: %w", err)
	}

	propagationChanges, err := meter.Int64Counter("propagation.changes",
		metric.WithDescription("Total number of instance date changes produced"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating propagation.changes counter: %w", err)
	}

	propagationSkips, err := meter.Int64Counter("propagation.skips",
		metric.WithDescription("Total number of instances skipped during propagation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating propagation.skips counter: %w", err)
	}

	supplierErrors, err := meter.Int64Counter("propagation.supplier_errors",
		metric.WithDescription("Total number of per-supplier failures during propagation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating propagation.supplier_errors counter: %w", err)
	}

	return &Metrics{
		resolveTotal:       resolveTotal,
		resolveDuration:    resolveDuration,
		propagationRounds:  propagationRounds,
		propagationChanges: propagationChanges,
		propagationSkips:   propagationSkips,
		supplierErrors:     supplierErrors,
	}, nil
}

// RecordResolve records one schedule resolution run.
func (m *Metrics) RecordResolve(ctx context.Context, itemCount int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Int(AttrItemCount, itemCount))
	m.resolveTotal.Add(ctx, 1, attrs)
	m.resolveDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordRound records one propagation round's change/skip counts.
func (m *Metrics) RecordRound(ctx context.Context, changes, skips int) {
	if m == nil {
		return
	}
	m.propagationRounds.Add(ctx, 1)
	m.propagationChanges.Add(ctx, int64(changes))
	m.propagationSkips.Add(ctx, int64(skips))
}

// RecordSupplierError records a per-supplier failure.
func (m *Metrics) RecordSupplierError(ctx context.Context, supplierID string) {
	if m == nil {
		return
	}
	m.supplierErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrSupplierID, supplierID),
	))
}
