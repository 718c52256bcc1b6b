package tween

import (
	"math"
	"sort"

	"github.com/fogleman/ease"
)

// Easing maps a linear fraction in [0, 1] to an eased fraction.
// The zero value is linear.
type Easing struct {
	name string
	fn   func(float64) float64
}

// Linear is the identity curve. The timeline layer always tweens with it.
var Linear = Easing{name: "linear", fn: ease.Linear}

var catalogue = map[string]func(float64) float64{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
}

// Lookup returns the named curve from the catalogue.
func Lookup(name string) (Easing, bool) {
	if name == "" {
		return Linear, true
	}
	fn, ok := catalogue[name]
	if !ok {
		return Easing{}, false
	}
	return Easing{name: name, fn: fn}, true
}

// Names lists the catalogue in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CubicBezier builds a curve from two control points, the way Lottie stores
// keyframe out/in tangents. x1 and x2 are clamped to [0, 1].
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1 = math.Max(0, math.Min(1, x1))
	x2 = math.Max(0, math.Min(1, x2))

	bx := func(s float64) float64 { return bezier(s, x1, x2) }
	by := func(s float64) float64 { return bezier(s, y1, y2) }

	return Easing{
		name: "cubicBezier",
		fn: func(t float64) float64 {
			if t <= 0 || t >= 1 {
				return t
			}
			return by(solveBezierX(t, bx, x1, x2))
		},
	}
}

// bezier evaluates a 1D cubic with endpoints 0 and 1.
func bezier(s, p1, p2 float64) float64 {
	u := 1 - s
	return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
}

func bezierSlope(s, p1, p2 float64) float64 {
	u := 1 - s
	return 3*u*u*p1 + 6*u*s*(p2-p1) + 3*s*s*(1-p2)
}

// solveBezierX finds s with bx(s) == x: Newton first, bisection as fallback.
func solveBezierX(x float64, bx func(float64) float64, x1, x2 float64) float64 {
	s := x
	for i := 0; i < 8; i++ {
		d := bx(s) - x
		if math.Abs(d) < 1e-7 {
			return s
		}
		slope := bezierSlope(s, x1, x2)
		if math.Abs(slope) < 1e-6 {
			break
		}
		s -= d / slope
	}

	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < 64; i++ {
		v := bx(s)
		if math.Abs(v-x) < 1e-7 {
			break
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

// Apply evaluates the curve at t.
func (e Easing) Apply(t float64) float64 {
	if e.fn == nil {
		return t
	}
	return e.fn(t)
}

func (e Easing) Name() string {
	if e.name == "" {
		return "linear"
	}
	return e.name
}

// IsLinear reports whether the curve is the identity.
func (e Easing) IsLinear() bool {
	return e.fn == nil || e.name == "linear"
}
