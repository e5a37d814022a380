package football

import "math"

// Clamp bounds v to [lo,hi]. NaN collapses to lo so it can never reach a draw.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp(v, lo, hi float64) float64 { return Clamp(v, lo, hi) }
