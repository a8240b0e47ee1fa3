// Package anim implements keyframe tracks, joint tracks and clips, and the
// sampling that turns them into poses.
package anim

import (
	"strings"

	"github.com/pkg/errors"
)

// Errors returned by track and clip validation.
var (
	ErrUnsortedKeyframes    = errors.New("keyframes are not in time order")
	ErrUnknownInterpolation = errors.New("unknown interpolation mode")
)

// Keyframe is one sample of a track: a time, a value and the incoming and
// outgoing tangents used by cubic interpolation.
type Keyframe[T any] struct {
	Time  float32
	Value T
	In    T
	Out   T
}

// NewKeyframe returns a keyframe with zero tangents.
func NewKeyframe[T any](time float32, value T) Keyframe[T] {
	return Keyframe[T]{Time: time, Value: value}
}

// CubicKeyframe returns a keyframe with explicit tangents.
func CubicKeyframe[T any](time float32, value, in, out T) Keyframe[T] {
	return Keyframe[T]{Time: time, Value: value, In: in, Out: out}
}

// Interpolation selects how values between keyframes are computed.
type Interpolation int

const (
	// Linear interpolates between the bracketing keyframes.
	Linear Interpolation = iota
	// Constant holds the value of the keyframe at or before the sample time.
	Constant
	// Cubic evaluates a Hermite spline using keyframe tangents.
	Cubic
)

var interpolationNames = map[Interpolation]string{
	Linear:   "linear",
	Constant: "constant",
	Cubic:    "cubic",
}

func (i Interpolation) String() string {
	if name, ok := interpolationNames[i]; ok {
		return name
	}
	return "unknown"
}

// ParseInterpolation parses a mode name (case-insensitive).
func ParseInterpolation(s string) (Interpolation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range interpolationNames {
		if name == s {
			return mode, nil
		}
	}
	return Linear, errors.Wrapf(ErrUnknownInterpolation, "%q", s)
}
