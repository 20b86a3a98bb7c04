// Package analysis holds the numerical consumers of a stream window:
// per-channel centralization, windowed power spectral density, band power
// and single-frequency tone amplitude.
//
// Every function takes plain slices, so it works equally on
// [stream.Buffer.Window], [stream.Buffer.Tail] or a resampled view.
package analysis
