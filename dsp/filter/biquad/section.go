package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-rtdsp/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-rtdsp/internal/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + z1
//	z1 = B1*x - A1*y + z2
//	z2 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad with float32 delay state.
type Section struct {
	Coefficients

	z1, z2 float32
	kernel archregistry.KernelFunc
}

var (
	defaultKernel     archregistry.KernelFunc
	defaultKernelName string
	kernelInitOnce    sync.Once
)

// NewSection returns a Section with the given coefficients and zero state.
func NewSection(c Coefficients) *Section {
	s := &Section{Coefficients: c}
	s.kernel = blockKernel()

	return s
}

// Kernel returns the name of the block kernel selected for this process.
func Kernel() string {
	blockKernel()
	return defaultKernelName
}

func blockKernel() archregistry.KernelFunc {
	kernelInitOnce.Do(func() {
		k, ok := archregistry.Kernels.Best(cpu.DetectFeatures())
		if !ok {
			panic("biquad: no block kernel registered for this CPU")
		}

		defaultKernel = k.Run
		defaultKernelName = k.Name
	})

	return defaultKernel
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float32) float32 {
	xd := float64(x)
	y := float32(s.B0*xd + float64(s.z1))
	yd := float64(y)
	s.z1 = float32(s.B1*xd - s.A1*yd + float64(s.z2))
	s.z2 = float32(s.B2*xd - s.A2*yd)

	return y
}

func (s *Section) processSamples(buf []float32) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// ProcessBlock filters buf in place. It does not allocate. If the state
// becomes non-finite during the block it is reset to zero.
func (s *Section) ProcessBlock(buf []float32) {
	if len(buf) == 0 {
		return
	}

	if s.kernel == nil {
		s.kernel = blockKernel()
	}

	c := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	s.z1, s.z2 = s.kernel(c, s.z1, s.z2, buf)
	if !finite(s.z1 + s.z2) {
		s.Reset()
	}
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.z1 = 0
	s.z2 = 0
}

// State returns the current delay-line state [z1, z2].
func (s *Section) State() [2]float32 {
	return [2]float32{s.z1, s.z2}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float32) {
	s.z1 = state[0]
	s.z2 = state[1]
}

func finite(x float32) bool {
	return x-x == 0
}
