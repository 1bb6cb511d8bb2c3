package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// ScopeName is the instrumentation scope used for all tracers and
// meters created by this library.
const ScopeName = "github.com/zero-day-ai/goap"

// PlannerMetrics bundles the instruments recorded during planning.
type PlannerMetrics struct {
	// NodesExpanded counts search nodes whose successors were generated.
	NodesExpanded metric.Int64Counter

	// NodesPruned counts open-set entries discarded by best-half
	// pruning under memory pressure.
	NodesPruned metric.Int64Counter

	// PlansFound counts planning calls that produced a plan.
	PlansFound metric.Int64Counter

	// PlansNotFound counts planning calls that exhausted the search.
	PlansNotFound metric.Int64Counter

	// PlanDuration records wall-clock planning time in seconds.
	PlanDuration metric.Float64Histogram
}

// NewPlannerMetrics creates the planner instruments on the given meter.
func NewPlannerMetrics(meter metric.Meter) (*PlannerMetrics, error) {
	expanded, err := meter.Int64Counter("goap.planner.nodes_expanded",
		metric.WithDescription("Search nodes expanded"))
	if err != nil {
		return nil, fmt.Errorf("creating nodes_expanded counter: %w", err)
	}
	pruned, err := meter.Int64Counter("goap.planner.nodes_pruned",
		metric.WithDescription("Open-set entries discarded by best-half pruning"))
	if err != nil {
		return nil, fmt.Errorf("creating nodes_pruned counter: %w", err)
	}
	foundC, err := meter.Int64Counter("goap.planner.plans_found",
		metric.WithDescription("Planning calls that produced a plan"))
	if err != nil {
		return nil, fmt.Errorf("creating plans_found counter: %w", err)
	}
	notFound, err := meter.Int64Counter("goap.planner.plans_not_found",
		metric.WithDescription("Planning calls that exhausted the search without a plan"))
	if err != nil {
		return nil, fmt.Errorf("creating plans_not_found counter: %w", err)
	}
	duration, err := meter.Float64Histogram("goap.planner.duration",
		metric.WithDescription("Wall-clock planning time"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &PlannerMetrics{
		NodesExpanded: expanded,
		NodesPruned:   pruned,
		PlansFound:    foundC,
		PlansNotFound: notFound,
		PlanDuration:  duration,
	}, nil
}

// NoopPlannerMetrics returns metrics backed by the no-op meter, for use
// when no MeterProvider is configured.
func NoopPlannerMetrics() *PlannerMetrics {
	m, _ := NewPlannerMetrics(metricnoop.NewMeterProvider().Meter(ScopeName))
	return m
}

// NoopTracer returns a tracer that records nothing, for use when no
// TracerProvider is configured.
func NoopTracer() trace.Tracer {
	return tracenoop.NewTracerProvider().Tracer(ScopeName)
}
