// Package registry collects the biquad block kernels compiled into the
// binary and picks one for a given CPU feature set.
package registry

import (
	"slices"
	"sync"

	"github.com/cwbudde/algo-rtdsp/internal/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// KernelFunc filters buf in place with one DF-II-T section and returns the
// updated float32 state.
type KernelFunc func(c Coefficients, z1, z2 float32, buf []float32) (newZ1, newZ2 float32)

// Kernel describes one block implementation and the CPU level it needs.
type Kernel struct {
	Name     string
	Level    cpu.SIMDLevel
	Priority int
	Run      KernelFunc
}

// Set is an ordered collection of kernels, highest priority first.
type Set struct {
	mu      sync.Mutex
	kernels []Kernel
}

// Kernels is the set the arch packages register into from init.
var Kernels = &Set{}

// Add inserts k after every kernel of equal or higher priority.
func (s *Set) Add(k Kernel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, _ := slices.BinarySearchFunc(s.kernels, k.Priority, func(e Kernel, p int) int {
		// descending order; equal priorities keep insertion order
		if e.Priority >= p {
			return -1
		}

		return 1
	})
	s.kernels = slices.Insert(s.kernels, i, k)
}

// Best returns the first kernel the CPU can run.
func (s *Set) Best(features cpu.Features) (Kernel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range s.kernels {
		if k.Run != nil && cpu.Supports(features, k.Level) {
			return k, true
		}
	}

	return Kernel{}, false
}

// Names lists the registered kernels in selection order.
func (s *Set) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.kernels))
	for i, k := range s.kernels {
		names[i] = k.Name
	}

	return names
}
