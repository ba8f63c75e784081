// Package tracing provides OpenTelemetry tracing for Tidecast.
//
// # Overview
//
// The package wires up the OpenTelemetry SDK with an OTLP gRPC exporter and
// ratio-based sampling. A disabled configuration yields a noop tracer, so
// callers can hold a Tracer unconditionally.
//
// Simulation runs produce a small span tree: a root span for the run with
// child spans for the trial phase and the analysis phase.
package tracing
