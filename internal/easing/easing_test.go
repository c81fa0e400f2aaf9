package easing

import (
	"errors"
	"math"
	"testing"
)

func TestParseEndpoints(t *testing.T) {
	names := []string{"none", "power1.inOut", "power2.out", "power2.in", "power2.inOut", "power3.out", "sine.inOut", "sine.in", "cubic.inOut", "power2"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			f, err := Parse(name)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", name, err)
			}
			if math.Abs(f(0)) > 1e-9 {
				t.Errorf("f(0) = %f, want 0", f(0))
			}
			if math.Abs(f(1)-1) > 1e-9 {
				t.Errorf("f(1) = %f, want 1", f(1))
			}
		})
	}
}

func TestInOutSymmetry(t *testing.T) {
	for _, name := range []string{"power1.inOut", "power2.inOut", "sine.inOut"} {
		f := MustParse(name)
		if math.Abs(f(0.5)-0.5) > 1e-9 {
			t.Errorf("%s: f(0.5) = %f, want 0.5", name, f(0.5))
		}
		if math.Abs(f(0.25)+f(0.75)-1) > 1e-9 {
			t.Errorf("%s: not point-symmetric around 0.5", name)
		}
	}
}

func TestPower2Out(t *testing.T) {
	f := MustParse("power2.out")
	// 1 - (1-0.5)^3
	if got := f(0.5); math.Abs(got-0.875) > 1e-9 {
		t.Errorf("power2.out(0.5) = %f, want 0.875", got)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("elastic.out(1, 0.3)")
	if !errors.Is(err, ErrUnknownEase) {
		t.Errorf("expected ErrUnknownEase, got %v", err)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(1, 0.5, 0.5); got != 0.75 {
		t.Errorf("Lerp = %f, want 0.75", got)
	}
}
