package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps, absolutely or
// relative to the larger magnitude.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBPowerToLinear converts dB to linear power (10*log10 convention).
func DBPowerToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// MagnitudeToDB converts a linear magnitude to dB after adding floor, so an
// exact zero maps to a large finite negative value instead of -Inf.
func MagnitudeToDB(magnitude, floor float64) float64 {
	return 20 * math.Log10(magnitude+floor)
}

// AngularFrequency converts Hz to rad/s.
func AngularFrequency(hz float64) float64 {
	return 2 * math.Pi * hz
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// AllFinite reports whether every value is finite.
func AllFinite(xs []float64) bool {
	for _, x := range xs {
		if !IsFinite(x) {
			return false
		}
	}

	return true
}
