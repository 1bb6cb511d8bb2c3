package goap

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/goap/planner"
	"github.com/zero-day-ai/goap/step"
)

// Option configures the Engine.
type Option func(*engineConfig)

// engineConfig holds configuration collected from Options before the
// Engine is built.
type engineConfig struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	cfg        planner.Config
	cfgSet     bool
	configPath string
	factories  []step.Factory
}

// WithLogger sets a custom logger for the engine and its planner.
// If not provided, a default JSON logger is created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for planning spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *engineConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for planner metrics. Without
// it the engine records no metrics.
func WithMeter(meter metric.Meter) Option {
	return func(c *engineConfig) {
		c.meter = meter
	}
}

// WithConfig sets the planner configuration directly. It takes
// precedence over WithConfigFile.
func WithConfig(cfg planner.Config) Option {
	return func(c *engineConfig) {
		c.cfg = cfg
		c.cfgSet = true
	}
}

// WithConfigFile loads planner configuration from a YAML file.
func WithConfigFile(path string) Option {
	return func(c *engineConfig) {
		c.configPath = path
	}
}

// WithFactories registers step factories with the engine.
func WithFactories(factories ...step.Factory) Option {
	return func(c *engineConfig) {
		c.factories = append(c.factories, factories...)
	}
}
