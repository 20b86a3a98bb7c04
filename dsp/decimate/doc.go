// Package decimate builds fixed-stride selection masks for cheap
// reduced-density views of a ring buffer.
//
// A mask over an axis of length x selects f evenly spaced positions, where f
// is an exact divisor of x chosen close to a requested density n. Because f
// divides x, the selected positions have a constant stride x/f and a
// renderer can redraw the decimated view without resampling.
//
// The divisor search scans a small window around x/n in ascending order and
// keeps the first candidate with the smallest distance to n, so results are
// deterministic and ties always resolve the same way.
package decimate
