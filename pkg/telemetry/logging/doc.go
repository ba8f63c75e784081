// Package logging provides structured logging for Tidecast.
//
// # Overview
//
// The package is a thin constructor around log/slog: it parses the level and
// format from configuration and returns a ready *slog.Logger. Context
// helpers attach run correlation fields (run_id, framework) so log lines
// from a background simulation can be tied back to the run that produced
// them.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	ctx = logging.WithRunID(ctx, runID)
//	logging.FromContext(ctx, logger).Info("trials started")
package logging
