// Package telemetry groups the observability subpackages.
//
// # Overview
//
// Two subpackages are provided:
//
//   - logging: structured logging built on log/slog, with level and format
//     selection and run-scoped context fields
//   - tracing: OpenTelemetry tracing with an OTLP gRPC exporter and
//     ratio-based sampling
//
// Engine metrics live next to the engine in pkg/montecarlo, since they are
// coupled to its lifecycle events.
package telemetry
