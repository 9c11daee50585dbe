// Package spectrum provides block spectrum analyzers for metering and
// visualization.
//
// Two analyzers share the [Analyzer] query surface. [FFT] runs one
// Hann-windowed forward transform per call to Execute over a fixed window.
// [Perceptual] runs a fixed 512-point transform over a frequency-warped delay
// line and integrates the result into smoothed power and peak traces whose
// points are spaced on a Bark-like axis.
//
// The transform itself is supplied by package transform. Both analyzers
// allocate at construction only; Execute, SetDataHann and Process are safe to
// call from a real-time thread.
package spectrum
