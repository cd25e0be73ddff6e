// Package history provides SQLite-based storage for discovery run history.
//
// This package implements the RunDB, which stores:
//   - Rendered discovery runs with their full result payload
//   - Precomputed per-run metadata for fast history listings
//   - Input fingerprints for spotting repeated snapshots
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the history database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. WAL mode provides good concurrent read performance
//
// Each run row carries denormalized counters (company count, signal counts,
// top score) next to the serialized result so that history listings and run
// comparisons never need to decode the full payload.
package history
