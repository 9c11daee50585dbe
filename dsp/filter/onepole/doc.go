// Package onepole provides a one-pole low-pass smoother for audio and
// control-rate data.
//
// LowPass runs the recurrence z += a*(x - z) in place, strictly in time
// order. Ctrl drives the same recurrence toward a constant target, which is
// the usual way to de-zipper a parameter ramp inside an audio callback.
// Neither call allocates.
package onepole
