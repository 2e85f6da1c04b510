// Package pool fans conversion work out across a fixed number of workers and
// surfaces per-item results as they complete.
package pool
