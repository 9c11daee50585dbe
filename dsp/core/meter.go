package core

import "math"

const (
	meterLowerDB      = -192.0
	meterUpperDB      = 0.0
	meterNonLinearity = 8.0
)

// LogMeter maps a power value in dB to a meter deflection in [0, 1].
//
// The scale spans -192..0 dB with an 8th-power curve, so most of the travel
// is spent on the top few tens of dB. Values above 0 dB deflect past 1.
func LogMeter(powerDB float32) float32 {
	p := float64(powerDB)
	if p < meterLowerDB || math.IsNaN(p) {
		return 0
	}
	return float32(math.Pow((p-meterLowerDB)/(meterUpperDB-meterLowerDB), meterNonLinearity))
}

// LogMeterCoeff is LogMeter for a linear amplitude coefficient.
func LogMeterCoeff(coeff float32) float32 {
	if !(coeff > 0) {
		return 0
	}
	return LogMeter(float32(20 * math.Log10(float64(coeff))))
}
