package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// ClampAxis clamps v into [-1, 1]. NaN becomes 0.
func ClampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
