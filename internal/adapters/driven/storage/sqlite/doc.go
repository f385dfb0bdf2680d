// Package sqlite provides a SQLite-based implementation of the
// scheduler persistence port.
//
// Content lives in the platform's MongoDB; the scheduler's task state
// and run history are local operational data, so they are kept in an
// embedded database next to the binary instead. The adapter uses
// modernc.org/sqlite, a pure Go SQLite implementation that requires no
// CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Each migration is a pair of .up.sql and
// .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.commserver/data/scheduler.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
