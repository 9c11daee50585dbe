// Package cpu reports the SIMD capabilities used to pick filter kernels.
//
// The host is queried once. Tests pin a feature set with SetForcedFeatures
// and return to the detected set with ResetDetection.
package cpu

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// SIMDLevel names an instruction set extension a kernel is written for.
type SIMDLevel int

const (
	// SIMDNone is the portable Go fallback.
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDAVX2
	SIMDNEON
)

var levelNames = [...]string{
	SIMDNone: "None",
	SIMDSSE2: "SSE2",
	SIMDAVX2: "AVX2",
	SIMDNEON: "NEON",
}

func (s SIMDLevel) String() string {
	if s < 0 || int(s) >= len(levelNames) {
		return "Unknown"
	}
	return levelNames[s]
}

// Features describes the CPU capabilities relevant to kernel selection.
type Features struct {
	HasSSE2 bool
	HasAVX2 bool
	HasNEON bool

	// ForceGeneric restricts selection to SIMDNone kernels.
	ForceGeneric bool

	Architecture string
}

// has reports whether f carries the flag for level, ignoring ForceGeneric.
func (f Features) has(level SIMDLevel) bool {
	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return f.HasSSE2
	case SIMDAVX2:
		return f.HasAVX2
	case SIMDNEON:
		return f.HasNEON
	}
	return false
}

var (
	host = sync.OnceValue(func() Features {
		f := Features{Architecture: runtime.GOARCH}
		readHost(&f)
		return f
	})
	forced atomic.Pointer[Features]
)

// DetectFeatures returns the forced feature set if one is installed and the
// detected host features otherwise.
func DetectFeatures() Features {
	if f := forced.Load(); f != nil {
		return *f
	}
	return host()
}

// SetForcedFeatures overrides detection until ResetDetection is called.
func SetForcedFeatures(f Features) {
	forced.Store(&f)
}

// ResetDetection drops any forced feature set.
func ResetDetection() {
	forced.Store(nil)
}

// Supports reports whether features can run a kernel written for level.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric && level != SIMDNone {
		return false
	}
	return features.has(level)
}
