package analysis

import "errors"

var (
	// ErrEmptyInput indicates an input with no samples.
	ErrEmptyInput = errors.New("analysis: empty input")
	// ErrInvalidSampleRate indicates a non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("analysis: invalid sample rate")
	// ErrInvalidBand indicates a frequency band outside [0, sampleRate/2] or
	// with lo > hi.
	ErrInvalidBand = errors.New("analysis: invalid band")
)
