// Package recording stores traversal statistics in a database.
//
// A Recorder buffers struct entries per table and flushes them in batches.
// Two backends are provided: SQLite for local runs and ClickHouse for
// aggregating results across many runs. The Collector bridges the hooking
// and recording worlds: attached to a traverser, it turns every finished
// round into a row.
//
// Recorders persist statistics about traversals, never the visited-tracker
// state itself.
package recording
