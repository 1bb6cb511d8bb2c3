// Package telemetry provides OpenTelemetry instrumentation for the
// planning engine: a span per planning call and counters/histograms for
// search behavior (nodes expanded, nodes pruned under memory pressure,
// plan outcomes, planning duration).
//
// The library only depends on the OpenTelemetry API; callers wire real
// exporters by supplying their own TracerProvider/MeterProvider. When
// nothing is supplied, all instruments are no-ops.
package telemetry
