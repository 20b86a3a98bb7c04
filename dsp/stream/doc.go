// Package stream keeps a bounded, continuously overwritten window of a
// multi-channel acquisition stream available for rendering and analysis.
//
// A [Buffer] owns a signal [ring.Ring], an optional auxiliary ring, a
// [timestamp.Track] and a [decimate.Mask]. One producer calls [Buffer.Write]
// with each chunk as it arrives; any number of readers take full views
// ([Buffer.Window]) or decimated views ([Buffer.Resampled]) at any time.
// Every view is a copy, and a write of signal, aux and timestamp is applied
// as one unit with respect to readers.
//
// Rings start in shift mode: the newest sample is always the last column.
// [Buffer.EnableBoundary] switches every ring to circular mode for callers
// that draw a moving write boundary instead of scrolling.
//
// Non-fatal conditions (a truncated aux chunk, a timeline that could not be
// interpolated) never fail a call; they are reported to the [Observer]
// supplied with [WithObserver].
package stream
