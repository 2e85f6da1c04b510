// Package history persists a summary row per completed run into a local
// SQLite database.
//
// The database is an append-only log for later inspection (`pngpress
// history`); rows never feed back into scheduling, so runs stay independent
// of each other.
package history
