package core

// DesignConfig holds the engine knobs shared by the analog design packages.
type DesignConfig struct {
	// ResponsePoints is the number of log-spaced frequency samples. Every
	// design without WithResponsePoints has 500; overriding it is an explicit
	// opt-out of that fixed length.
	ResponsePoints int
	// MagnitudeFloor is added to |H| before converting to dB.
	MagnitudeFloor float64
	// ReferenceResistance (ohms) anchors the active stage component values.
	ReferenceResistance float64
	// ImpulseLength enables the time-domain response when > 0. It must be a
	// power of two.
	ImpulseLength int
	// ImpulseSampleRate in Hz; 0 derives it from the sampling window.
	ImpulseSampleRate float64
}

// DesignOption mutates a DesignConfig.
type DesignOption func(*DesignConfig)

// DefaultDesignConfig returns the defaults used by every design call.
func DefaultDesignConfig() DesignConfig {
	return DesignConfig{
		ResponsePoints:      500,
		MagnitudeFloor:      1e-30,
		ReferenceResistance: 10e3,
	}
}

// WithResponsePoints sets the number of frequency response samples,
// replacing the fixed default of 500.
func WithResponsePoints(n int) DesignOption {
	return func(cfg *DesignConfig) {
		if n > 0 {
			cfg.ResponsePoints = n
		}
	}
}

// WithMagnitudeFloor sets the epsilon added before the dB conversion.
func WithMagnitudeFloor(floor float64) DesignOption {
	return func(cfg *DesignConfig) {
		if floor > 0 {
			cfg.MagnitudeFloor = floor
		}
	}
}

// WithReferenceResistance sets the active stage reference resistance in ohms.
func WithReferenceResistance(ohms float64) DesignOption {
	return func(cfg *DesignConfig) {
		if ohms > 0 {
			cfg.ReferenceResistance = ohms
		}
	}
}

// WithImpulseResponse requests an n-sample impulse and step response. n is
// rounded up to the next power of two.
func WithImpulseResponse(n int, sampleRate float64) DesignOption {
	return func(cfg *DesignConfig) {
		if n <= 0 {
			return
		}

		size := 1
		for size < n {
			size <<= 1
		}

		cfg.ImpulseLength = size

		if sampleRate > 0 {
			cfg.ImpulseSampleRate = sampleRate
		}
	}
}

// ApplyDesignOptions applies zero or more options to the default config.
func ApplyDesignOptions(opts ...DesignOption) DesignConfig {
	cfg := DefaultDesignConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
