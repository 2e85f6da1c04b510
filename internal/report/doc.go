// Package report aggregates per-file conversion outcomes into run statistics
// and renders the final human-readable summary.
package report
