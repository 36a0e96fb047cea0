// Package log provides structured trace logging for the CSC monitor.
//
// The trace is separate from operational logging (slog). It records what the
// monitor did, in a machine-readable form: when bins were booked, which
// refreshes fired and what they computed, run and lumi-block boundaries, and
// configuration problems found at startup.
//
// # Basic Usage
//
// A Module takes a Logger in its options:
//
//	// During development: trace to the console via slog
//	opts.Trace = log.NewSlogAdapter(slog.Default())
//
//	// In production: append to a binary file
//	opts.Trace, _ = log.NewFileLogger("/var/log/cscdqm/run.clog")
//
//	// Both
//	opts.Trace = log.NewMultiLogger(console, file)
//
// # File Format
//
// Trace files are a plain concatenation of CBOR-encoded Events with integer
// map keys, conventionally named *.clog. The cscdqm-log command views,
// filters, summarizes and exports them.
package log
