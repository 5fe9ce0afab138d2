// Package db implements the daemon's database manager: a registry of named
// Stores guarded by a mutex, a bounded response cache, and best-effort disk
// persistence under a resolved base location.
package db
