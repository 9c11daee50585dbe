// Package signal provides deterministic noise generators for test signals
// and measurement stimuli.
//
// Generator produces uniform white, Gaussian white or pink noise from a
// 31-bit Park-Miller-Carta generator. Given the same seed, type and call
// sequence, the output is bit-identical across runs and platforms.
package signal
