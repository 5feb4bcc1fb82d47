// Package telemetry installs the global OpenTelemetry tracer and meter
// providers. Without an OTLP endpoint the globals stay no-ops.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials/insecure"
)

// TelemetryConfig holds all configuration for the telemetry provider.
type TelemetryConfig struct {
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string // gRPC endpoint for collector; empty disables export
	MetricsEnabled  *bool  // nil = use default (true)
	TracingEnabled  *bool  // nil = use default (true)
	MetricsInterval time.Duration
	Environment     string
	SampleRate      float64 // 0.0 to 1.0
}

// metricsOn returns whether metrics are enabled (defaults to true).
func (c *TelemetryConfig) metricsOn() bool {
	if c.MetricsEnabled == nil {
		return true
	}
	return *c.MetricsEnabled
}

// tracingOn returns whether tracing is enabled (defaults to true).
func (c *TelemetryConfig) tracingOn() bool {
	if c.TracingEnabled == nil {
		return true
	}
	return *c.TracingEnabled
}

func (c *TelemetryConfig) applyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "transforms"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.0"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricsInterval == 0 {
		c.MetricsInterval = 15 * time.Second
	}
}

// BoolPtr is a helper to create a *bool for TelemetryConfig fields.
func BoolPtr(b bool) *bool {
	return &b
}

// Provider owns the SDK providers installed by Setup.
type Provider struct {
	cfg    TelemetryConfig
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

// Enabled reports whether anything is being exported.
func (p *Provider) Enabled() bool {
	return p.tracer != nil || p.meter != nil
}

// Setup creates OTLP gRPC exporters and installs them as the global
// providers. With no endpoint configured it returns a disabled Provider and
// leaves the globals untouched.
func Setup(ctx context.Context, cfg TelemetryConfig, logger zerolog.Logger) (*Provider, error) {
	cfg.applyDefaults()
	p := &Provider{cfg: cfg}
	if cfg.OTLPEndpoint == "" {
		logger.Debug().Msg("telemetry disabled: no OTLP endpoint")
		return p, nil
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	)

	if cfg.tracingOn() {
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		p.tracer = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
		)
		otel.SetTracerProvider(p.tracer)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	if cfg.metricsOn() {
		exp, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithTLSCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			_ = p.Shutdown(ctx)
			return nil, fmt.Errorf("create metric exporter: %w", err)
		}
		p.meter = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.MetricsInterval))),
		)
		otel.SetMeterProvider(p.meter)
	}

	logger.Info().
		Str("service", cfg.ServiceName).
		Str("endpoint", cfg.OTLPEndpoint).
		Bool("tracing", p.tracer != nil).
		Bool("metrics", p.meter != nil).
		Float64("sample_rate", cfg.SampleRate).
		Msg("telemetry initialized")
	return p, nil
}

// Shutdown flushes and stops the providers. It is safe on a disabled
// Provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracer != nil {
		if err := p.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer provider: %w", err))
		}
	}
	if p.meter != nil {
		if err := p.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
