// Package sqlite journals ingestion runs in a local SQLite database.
//
// The adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. The journal is
// reporting state only: the search index itself lives in Postgres, and
// a missing or deleted journal costs nothing but history.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory and applied at open.
//
// # Data Location
//
// By default, the database is stored at ~/.crmdex/data/journal.db
package sqlite
