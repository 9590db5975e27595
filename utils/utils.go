package utils

import "math"

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FormatFloat rounds f to round decimal places.
func FormatFloat(f float64, round int32) float64 {
	if !IsFinite(f) {
		return f
	}
	pow := math.Pow(10, float64(round))
	return math.Round(f*pow) / pow
}

// Clamp01 maps f into [0, 1], non-finite values become 0.
func Clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}

// FiniteOr returns f, or def when f is NaN or infinite.
func FiniteOr(f, def float64) float64 {
	if IsFinite(f) {
		return f
	}
	return def
}
