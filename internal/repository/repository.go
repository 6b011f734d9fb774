// Package repository holds the in-memory stores backing the portal. All
// state is seeded at startup and lives in process memory only; restarting
// the server resets every store to its seed values.
package repository

import "errors"

// ErrNotFound is returned when a record does not exist in a store.
var ErrNotFound = errors.New("repository: record not found")
