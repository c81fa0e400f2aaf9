// Package easing provides the named ease curves used by the site's tweens.
package easing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownEase is returned by Parse for names outside the supported set.
var ErrUnknownEase = errors.New("unknown ease")

// Func maps linear progress in [0,1] to eased progress.
type Func func(t float64) float64

// Linear is the identity ease ("none").
func Linear(t float64) float64 { return t }

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// powIn/powOut/powInOut build the polynomial family; power1 is quadratic,
// power2 cubic and so on.
func powIn(n int) Func {
	return func(t float64) float64 { return pow(t, n) }
}

func powOut(n int) Func {
	return func(t float64) float64 { return 1 - pow(1-t, n) }
}

func powInOut(n int) Func {
	scale := pow(2, n-1)
	return func(t float64) float64 {
		if t < 0.5 {
			return scale * pow(t, n)
		}
		return 1 - pow(-2*t+2, n)/2
	}
}

// InOutCubic is the smooth in-out curve used for camera style moves.
var InOutCubic = powInOut(3)

func sineIn(t float64) float64    { return 1 - math.Cos(t*math.Pi/2) }
func sineOut(t float64) float64   { return math.Sin(t * math.Pi / 2) }
func sineInOut(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

var named = map[string]Func{
	"":             Linear,
	"none":         Linear,
	"linear":       Linear,
	"power1.in":    powIn(2),
	"power1.out":   powOut(2),
	"power1.inout": powInOut(2),
	"power2.in":    powIn(3),
	"power2.out":   powOut(3),
	"power2.inout": powInOut(3),
	"power3.in":    powIn(4),
	"power3.out":   powOut(4),
	"power3.inout": powInOut(4),
	"cubic.inout":  InOutCubic,
	"sine.in":      sineIn,
	"sine.out":     sineOut,
	"sine.inout":   sineInOut,
}

// Parse resolves an ease name such as "power2.out" or "sine.inOut".
// Names are case-insensitive and a bare family ("power2") means ".out".
func Parse(name string) (Func, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if !strings.Contains(key, ".") && key != "" && key != "none" && key != "linear" {
		key += ".out"
	}
	if f, ok := named[key]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
}

// MustParse is Parse for names known at compile time.
func MustParse(name string) Func {
	f, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return f
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
