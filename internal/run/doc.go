// Package run executes one full conversion pass: discovery, the bounded
// worker pool, and result aggregation, with progress reported along the way.
package run
