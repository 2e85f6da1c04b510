// Package progress renders a live completion indicator for a run.
//
// It subscribes to the same completion stream as the statistics aggregation
// but stays independent of it: the bar is purely cosmetic, increments exactly
// once per completed item, and degrades to a no-op when output is not a
// terminal.
package progress
