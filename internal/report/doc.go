// Package report contains the license reporting pipeline: it normalizes
// coterminous and per-device licensing state into uniform records, sorts
// each bucket by soonest expiration, and assembles the sheets of the
// final workbook. The package performs no I/O of its own; it consumes
// the dashboard API through narrow interfaces so callers and tests can
// substitute their own implementations.
package report
