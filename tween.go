package sapling

import "github.com/tanema/gween/ease"

// EaseFunc maps elapsed time t to a value between b and b+c over duration d.
// Implementations must be deterministic and free of side effects.
type EaseFunc func(t, b, c, d float64) float64

// EaseLinear is the default easing: b + c*(t/d).
const EaseLinear = "linear"

var easings = map[string]EaseFunc{
	EaseLinear: Linear,

	"inQuad":    FromGween(ease.InQuad),
	"outQuad":   FromGween(ease.OutQuad),
	"inOutQuad": FromGween(ease.InOutQuad),

	"inCubic":    FromGween(ease.InCubic),
	"outCubic":   FromGween(ease.OutCubic),
	"inOutCubic": FromGween(ease.InOutCubic),

	"inQuart":    FromGween(ease.InQuart),
	"outQuart":   FromGween(ease.OutQuart),
	"inOutQuart": FromGween(ease.InOutQuart),

	"inQuint":    FromGween(ease.InQuint),
	"outQuint":   FromGween(ease.OutQuint),
	"inOutQuint": FromGween(ease.InOutQuint),

	"inSine":    FromGween(ease.InSine),
	"outSine":   FromGween(ease.OutSine),
	"inOutSine": FromGween(ease.InOutSine),

	"inExpo":    FromGween(ease.InExpo),
	"outExpo":   FromGween(ease.OutExpo),
	"inOutExpo": FromGween(ease.InOutExpo),

	"inCirc":    FromGween(ease.InCirc),
	"outCirc":   FromGween(ease.OutCirc),
	"inOutCirc": FromGween(ease.InOutCirc),

	"inElastic":    FromGween(ease.InElastic),
	"outElastic":   FromGween(ease.OutElastic),
	"inOutElastic": FromGween(ease.InOutElastic),

	"inBack":    FromGween(ease.InBack),
	"outBack":   FromGween(ease.OutBack),
	"inOutBack": FromGween(ease.InOutBack),

	"inBounce":    FromGween(ease.InBounce),
	"outBounce":   FromGween(ease.OutBounce),
	"inOutBounce": FromGween(ease.InOutBounce),
}

// Linear interpolates at constant speed.
func Linear(t, b, c, d float64) float64 {
	if d <= 0 || t >= d {
		return b + c
	}
	return b + c*(t/d)
}

// FromGween adapts a gween easing function. The adapted function returns
// exactly b+c once t reaches d, whatever float32 rounding the curve has.
func FromGween(fn ease.TweenFunc) EaseFunc {
	return func(t, b, c, d float64) float64 {
		if d <= 0 || t >= d {
			return b + c
		}
		if t <= 0 {
			return b
		}
		return float64(fn(float32(t), float32(b), float32(c), float32(d)))
	}
}

// RegisterEasing adds or replaces a named easing function. The function is
// wrapped so it always honors the terminal value at t >= d.
func RegisterEasing(name string, fn EaseFunc) {
	if fn == nil {
		panic("sapling: cannot register nil easing")
	}
	easings[name] = func(t, b, c, d float64) float64 {
		if d <= 0 || t >= d {
			return b + c
		}
		return fn(t, b, c, d)
	}
}

// Easing looks up a registered easing function by name.
func Easing(name string) (EaseFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// EasingNames returns the registered easing names in no particular order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	return names
}
