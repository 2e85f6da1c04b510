// Package discover walks an input root for PNG sources and computes the
// mirrored JPEG destination for each one.
package discover
