package math

import "math"

// Epsilon is the tolerance used for degenerate-length checks.
const Epsilon = 0.000001

// ApproxEqual reports whether |a-b| <= tol.
func ApproxEqual(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// IsZero reports whether a is within Epsilon of zero.
func IsZero(a float32) bool {
	return ApproxEqual(a, 0, Epsilon)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Mod returns the floating point remainder of x/y with the sign of x.
func Mod(x, y float32) float32 {
	return float32(math.Mod(float64(x), float64(y)))
}

// WrapTime wraps t into [start, end) the way looping playback does:
// the remainder relative to start is shifted back into range by start when
// non-negative and by end otherwise. A non-positive range returns start.
func WrapTime(t, start, end float32) float32 {
	duration := end - start
	if duration <= 0 {
		return start
	}
	t = Mod(t-start, duration)
	if t >= 0 {
		return t + start
	}
	return t + end
}

func sqrt32(f float32) float32 {
	return float32(math.Sqrt(float64(f)))
}
