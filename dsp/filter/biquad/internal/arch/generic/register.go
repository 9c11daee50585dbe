// Package generic registers the portable biquad block kernel.
package generic

import (
	"github.com/cwbudde/algo-rtdsp/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-rtdsp/internal/cpu"
)

func init() {
	registry.Kernels.Add(registry.Kernel{
		Name:     "generic",
		Level:    cpu.SIMDNone,
		Priority: 0,
		Run:      processBlock,
	})
}

// processBlock is 2x unrolled. Each step rounds the state to float32 exactly
// like Section.ProcessSample so every kernel produces identical output.
func processBlock(c registry.Coefficients, z1, z2 float32, buf []float32) (newZ1, newZ2 float32) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)

	for ; i+1 < n; i += 2 {
		x0 := float64(buf[i])
		y0 := float32(b0*x0 + float64(z1))
		z1n := float32(b1*x0 - a1*float64(y0) + float64(z2))
		z2n := float32(b2*x0 - a2*float64(y0))

		x1 := float64(buf[i+1])
		y1 := float32(b0*x1 + float64(z1n))
		z1 = float32(b1*x1 - a1*float64(y1) + float64(z2n))
		z2 = float32(b2*x1 - a2*float64(y1))

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := float64(buf[i])
		y := float32(b0*x + float64(z1))
		z1 = float32(b1*x - a1*float64(y) + float64(z2))
		z2 = float32(b2*x - a2*float64(y))
		buf[i] = y
	}

	return z1, z2
}
