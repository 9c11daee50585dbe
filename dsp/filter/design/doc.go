// Package design provides second-order IIR coefficient designers.
//
// The functions return [biquad.Coefficients] for dsp/filter/biquad. Two
// families are available:
//
//   - RBJ cookbook designs (Lowpass, Highpass, Bandpass, Bandpass0dB, Notch,
//     Allpass, Peak, LowShelf, HighShelf) derived with the bilinear
//     transform from W0 = 2*pi*f/fs and alpha = sin(W0)/(2Q).
//   - Magnitude-matched designs after Vicanek, "Matched Second Order Digital
//     Filters" (2016): MatchedLowpass, MatchedHighpass, MatchedBandpass and
//     MatchedPeak. Poles are placed by impulse invariance and the numerator
//     is solved so that the digital magnitude equals the analog prototype at
//     DC, Nyquist and/or the corner frequency. They avoid the bilinear
//     cramping near Nyquist.
//
// Invalid frequencies (outside (0, fs/2)) or sample rates yield zero
// coefficients. Non-positive Q falls back to 1/sqrt(2).
package design
