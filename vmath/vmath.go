package vmath

import (
	"math"
)

// Epsilon is float64 machine epsilon, the tolerance for every comparison against zero
const Epsilon = 2.220446049250313e-16

// --- Scalars ---

// NearZero reports |f| < Epsilon
func NearZero(f float64) bool {
	return math.Abs(f) < Epsilon
}

// Lerp interpolates a→b by t, t=0 yields a and t=1 yields b
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Clamp01 limits t to [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// RoundTo rounds f to the given number of decimals
func RoundTo(f float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(f*scale) / scale
}
