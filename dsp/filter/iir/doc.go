// Package iir provides Biquad, a second-order filter whose response type can
// be switched at run time without reallocating or losing its state.
//
// Biquad combines the designers of dsp/filter/design with the float32
// runtime of dsp/filter/biquad. Thirteen response types are available: the
// nine RBJ cookbook shapes and four magnitude-matched variants that track
// the analog prototype up to Nyquist.
//
//	bq := iir.NewBiquad(48000)
//	bq.Compute(iir.TypeLowPass, 1000, 0.707, 0)
//	bq.Run(block)
//
// Compute, Configure and ConfigureFrom write the coefficients that Run
// reads. The host must serialize them with Run on the same instance.
package iir
