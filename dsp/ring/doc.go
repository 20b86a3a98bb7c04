// Package ring provides a fixed-capacity multi-channel sample store for
// streaming acquisition.
//
// A [Ring] holds channels × capacity float64 samples allocated once at
// construction. Writes always span every channel and use one of two
// overwrite disciplines, selected by the ring's [Cursor]:
//
//   - Shift mode (cursor uninitialized, the default): existing samples move
//     left by the chunk length and the chunk lands in the trailing columns.
//     The last column is always "now".
//   - Circular mode (after [Ring.EnableCursor]): the chunk is written at the
//     cursor position and wraps modulo capacity. Column 0 is a fixed spatial
//     anchor; use [Ring.Ordered] for chronological order.
//
// All views are copies taken under a read lock, so readers never observe a
// half-applied wraparound split.
package ring
