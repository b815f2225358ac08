// Package sqlite provides a SQLite-backed implementation of the durable
// key-value slot used to persist workspace snapshots.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is an NNN_name.up.sql file that
// records its own version in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.recordbook/data/state.db
//
// # Thread Safety
//
// All operations are thread-safe. Each Put is a single UPSERT statement, so
// a slot is either fully replaced or left untouched.
package sqlite
