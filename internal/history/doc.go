// Package history persists identification outcomes in named collections.
//
// State is modeled as immutable snapshots with pure reducers (Add, Remove,
// Trim); the Store loads a snapshot, a reducer produces the next one, and
// Save writes it back atomically. The backing store is SQLite in WAL mode
// with versioned migrations.
package history
