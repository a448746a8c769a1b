// Package store provides SQLite-backed storage for clerk memo records.
//
// One row per memo. Routing history lives inline in the history column as
// a JSON array, so a memo and its trail are always read and written
// together. A NULL or missing history cell reads as an empty list.
//
// # Write Semantics
//
//   - InsertMemo fails with memo.ErrDuplicateNumber if the number exists
//   - Update runs read-modify-write in a single transaction
//   - Last write wins; there is no multi-user coordination
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//
// Listing order is ORDER BY date_received ASC, number ASC COLLATE BINARY
// so output is stable across runs.
package store
