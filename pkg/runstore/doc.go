// Package runstore provides persistence backends for simulation runs.
//
// # Overview
//
// The package implements the montecarlo.Store interface twice:
//
//   - Memory: fast in-process storage (default, no persistence)
//   - SQLite: file-based persistence so runs survive restarts
//
// Both backends hand out snapshots: Save serializes the run and Load
// deserializes a fresh copy, so a poller can never observe a torn write of
// the engine's working record.
//
// # Retention
//
// Pruner deletes terminal runs past a retention window and enforces a cap on
// total stored runs; Scheduler executes pruning on a cron schedule.
//
// # Thread Safety
//
// All backends are safe for concurrent use.
package runstore
