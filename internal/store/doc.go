// Package store provides SQLite-backed build history for glyphforge.
//
// Every published build is appended to the builds table. The log is used to
// tell whether a catalog changed since the previous build and to list past
// builds.
//
// # Ordering
//
//   - Builds are ordered by seq INTEGER (insertion order), never by wall time
//   - build_id is UNIQUE: recording the same build twice is a no-op
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// The artifacts column holds RFC 8785 canonical JSON produced by
// ir.MarshalCanonical.
package store
