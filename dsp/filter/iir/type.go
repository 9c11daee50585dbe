package iir

import (
	"fmt"
	"strings"
)

// Type selects the response computed by Biquad.Compute.
type Type int

const (
	TypeLowPass Type = iota
	TypeHighPass
	TypeBandPassSkirt
	TypeBandPass0dB
	TypeNotch
	TypeAllPass
	TypePeaking
	TypeLowShelf
	TypeHighShelf
	TypeMatchedLowPass
	TypeMatchedHighPass
	TypeMatchedBandPass0dB
	TypeMatchedPeaking
)

var typeNames = [...]string{
	TypeLowPass:            "lowpass",
	TypeHighPass:           "highpass",
	TypeBandPassSkirt:      "bandpass-skirt",
	TypeBandPass0dB:        "bandpass",
	TypeNotch:              "notch",
	TypeAllPass:            "allpass",
	TypePeaking:            "peaking",
	TypeLowShelf:           "lowshelf",
	TypeHighShelf:          "highshelf",
	TypeMatchedLowPass:     "matched-lowpass",
	TypeMatchedHighPass:    "matched-highpass",
	TypeMatchedBandPass0dB: "matched-bandpass",
	TypeMatchedPeaking:     "matched-peaking",
}

// String returns the short name accepted by ParseType.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}

	return typeNames[t]
}

// HasGain reports whether the gain argument of Compute affects the response.
func (t Type) HasGain() bool {
	switch t {
	case TypePeaking, TypeLowShelf, TypeHighShelf, TypeMatchedPeaking:
		return true
	default:
		return false
	}
}

// ParseType converts a name produced by Type.String back into a Type.
// Matching is case-insensitive.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}

	return 0, fmt.Errorf("iir: unknown filter type %q", name)
}
