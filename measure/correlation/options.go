package correlation

// MeterConfig defines configuration for the correlation meter.
type MeterConfig struct {
	// LowpassHz is the corner of the pre-filter applied to both channels.
	LowpassHz float32
	// TimeConstant is the averaging time of the correlation in seconds.
	TimeConstant float32
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns a 2 kHz pre-filter and a 300 ms window.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		LowpassHz:    2000,
		TimeConstant: 0.3,
	}
}

// WithLowpass sets the pre-filter corner in Hz. Non-positive values are ignored.
func WithLowpass(hz float32) MeterOption {
	return func(cfg *MeterConfig) {
		if hz > 0 {
			cfg.LowpassHz = hz
		}
	}
}

// WithTimeConstant sets the averaging time in seconds. Non-positive values
// are ignored.
func WithTimeConstant(seconds float32) MeterOption {
	return func(cfg *MeterConfig) {
		if seconds > 0 {
			cfg.TimeConstant = seconds
		}
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
