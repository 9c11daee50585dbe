// Package transform is the boundary between the analyzers and the FFT
// engines they run on.
//
// A [Real] transform maps Len() real samples to Len()/2+1 complex bins.
// Two backends are provided: [NewPlan] on algo-fft (the default) and
// [NewGonum] on gonum's fourier package. Forward never allocates once the
// transform is constructed.
package transform
