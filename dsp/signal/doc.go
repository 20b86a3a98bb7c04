// Package signal generates deterministic multi-channel test streams that
// look like an EEG amplifier: a per-channel rhythm plus seeded noise on the
// signal channels and slow drifts on the auxiliary channels. Phase is
// continuous across chunks, so consecutive calls to [Source.Next] produce one
// seamless recording.
package signal
