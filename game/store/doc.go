// Package store provides durable persistence for rooms, players, and
// completed-game history.
//
// The Store interface is the write/read contract consumed by the game
// service: upsert on join, update on every placement or clear, delete on
// leave and empty-room teardown, and a single history insert when a room
// completes. Two implementations are provided:
//
//   - Postgres, backed by a pgx connection pool with schema migrations
//     embedded in the binary
//   - Memory, a map-backed implementation for tests and storeless
//     development runs
//
// The in-memory game state is the source of truth during play; the store is
// a best-effort mirror. Callers bound every call with a context timeout and
// treat failures as log-and-continue.
package store
