// Package timestamp keeps the wall-clock timeline of a ring-buffered stream.
//
// Acquisition hardware stamps whole chunks, not samples. A [Track] records
// one marker per chunk at the column holding the chunk's last sample, using
// the same shift or circular discipline as the sample ring it shadows.
// [Track.Reconstruct] rebuilds a per-sample timeline by assuming uniform
// sample spacing between consecutive markers.
package timestamp
