package sapling

import (
	"math"
	"slices"
	"testing"
)

func TestEasingsReachTerminalValue(t *testing.T) {
	for _, name := range EasingNames() {
		fn, _ := Easing(name)
		if got := fn(500, 10, 90, 500); got != 100 {
			t.Errorf("%s(d) = %v, want exactly 100", name, got)
		}
		if got := fn(900, 10, 90, 500); got != 100 {
			t.Errorf("%s(t > d) = %v, want exactly 100", name, got)
		}
		if got := fn(0, 10, 90, 500); math.Abs(got-10) > 1e-3 {
			t.Errorf("%s(0) = %v, want 10", name, got)
		}
	}
}

func TestLinear(t *testing.T) {
	tests := []struct {
		t, b, c, d float64
		want       float64
	}{
		{0, 0, 1, 1000, 0},
		{250, 0, 1, 1000, 0.25},
		{500, 0, 1, 1000, 0.5},
		{500, 100, -50, 1000, 75},
		{1000, 0, 1, 1000, 1},
		{10, 3, 4, 0, 7},
	}
	for _, tt := range tests {
		if got := Linear(tt.t, tt.b, tt.c, tt.d); got != tt.want {
			t.Errorf("Linear(%v, %v, %v, %v) = %v, want %v", tt.t, tt.b, tt.c, tt.d, got, tt.want)
		}
	}
}

func TestEasingLookup(t *testing.T) {
	if _, ok := Easing("outBounce"); !ok {
		t.Error("outBounce should be registered")
	}
	if _, ok := Easing("nope"); ok {
		t.Error("unknown easing should not be found")
	}
	fn, ok := Easing(EaseLinear)
	if !ok {
		t.Fatal("linear should be registered")
	}
	if got := fn(300, 0, 10, 600); got != 5 {
		t.Errorf("linear midpoint = %v, want 5", got)
	}
}

func TestRegisterEasingClampsTerminal(t *testing.T) {
	const name = "testOvershoot"
	RegisterEasing(name, func(t, b, c, d float64) float64 { return b + 2*c })
	defer delete(easings, name)

	fn, ok := Easing(name)
	if !ok {
		t.Fatal("registered easing not found")
	}
	if got := fn(100, 0, 1, 1000); got != 2 {
		t.Errorf("before end = %v, want 2 from the custom curve", got)
	}
	if got := fn(1000, 0, 1, 1000); got != 1 {
		t.Errorf("at end = %v, want exactly 1", got)
	}
	if !slices.Contains(EasingNames(), name) {
		t.Error("EasingNames should include the registered name")
	}
}

func TestRegisterEasingNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RegisterEasing(nil) should panic")
		}
	}()
	RegisterEasing("nil", nil)
}
