// Package biquad provides the second-order IIR runtime used by the filters
// in this module.
//
// A [Section] runs Direct Form II Transposed on float32 host buffers. The
// coefficients are float64 and the two delay states are float32, so a
// section can be retuned from double-precision designs without touching
// its state. Block processing dispatches to the best kernel registered for
// the running CPU; the kernel is picked when the section is constructed.
//
// Coefficient design lives in dsp/filter/design.
package biquad
