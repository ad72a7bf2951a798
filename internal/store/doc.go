// Package store provides SQLite-backed history for conformance runs.
//
// One run is one row in runs plus its session reports, subtest results,
// and load failures. Session reports carry their content hash, and all
// writes use ON CONFLICT DO NOTHING inside a single transaction, so
// recording the same run twice is a no-op rather than an error.
//
// # Ordering
//
// Reads never order by timestamp within a run: session reports and
// subtest results are stored with an explicit position and read back
// in that order, so a stored run reproduces its report exactly. The
// run listing itself orders by created_at, newest first, with the id
// as a tiebreaker.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Content hashes are computed by internal/report using RFC 8785
// canonical JSON and SHA-256 with domain separation.
package store
