// Package snapshot reads document snapshots for the agreement engine.
//
// The engine itself is pure and operates on an in-memory document slice;
// callers own all I/O. This package is that caller-side layer: it loads the
// snapshot the intake application produces, either as a JSON export file or
// directly from the application's SQLite documents table.
package snapshot
