//go:build amd64 && !purego

// Package avx2 registers the 4x unrolled biquad block kernel selected on
// AVX2-class CPUs.
package avx2

import (
	"github.com/cwbudde/algo-rtdsp/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-rtdsp/internal/cpu"
)

func init() {
	registry.Kernels.Add(registry.Kernel{
		Name:     "avx2",
		Level:    cpu.SIMDAVX2,
		Priority: 20,
		Run:      processBlock,
	})
}

// processBlock keeps coefficients and state in registers across four samples
// per iteration. The recurrence is serial, so the gain comes from fewer
// loads, stores and bounds checks rather than vector lanes.
// TODO: replace with an assembly kernel that interleaves two channels.
func processBlock(c registry.Coefficients, z1, z2 float32, buf []float32) (newZ1, newZ2 float32) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)

	for ; i+3 < n; i += 4 {
		x := buf[i : i+4 : i+4]

		x0 := float64(x[0])
		y0 := float32(b0*x0 + float64(z1))
		z1 = float32(b1*x0 - a1*float64(y0) + float64(z2))
		z2 = float32(b2*x0 - a2*float64(y0))

		x1 := float64(x[1])
		y1 := float32(b0*x1 + float64(z1))
		z1 = float32(b1*x1 - a1*float64(y1) + float64(z2))
		z2 = float32(b2*x1 - a2*float64(y1))

		x2 := float64(x[2])
		y2 := float32(b0*x2 + float64(z1))
		z1 = float32(b1*x2 - a1*float64(y2) + float64(z2))
		z2 = float32(b2*x2 - a2*float64(y2))

		x3 := float64(x[3])
		y3 := float32(b0*x3 + float64(z1))
		z1 = float32(b1*x3 - a1*float64(y3) + float64(z2))
		z2 = float32(b2*x3 - a2*float64(y3))

		x[0], x[1], x[2], x[3] = y0, y1, y2, y3
	}

	for ; i < n; i++ {
		x := float64(buf[i])
		y := float32(b0*x + float64(z1))
		z1 = float32(b1*x - a1*float64(y) + float64(z2))
		z2 = float32(b2*x - a2*float64(y))
		buf[i] = y
	}

	return z1, z2
}
