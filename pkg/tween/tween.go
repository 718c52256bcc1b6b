// Package tween defines the interpolation contract used by timelines and a
// set of ready-made value types.
package tween

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/math/f64"
)

// Tweener is implemented by value types that can interpolate toward another
// value of the same type. fraction is in [0, 1]; easing is applied to it by
// the implementation. The zero value of T is its default.
type Tweener[T any] interface {
	Tween(other T, fraction float64, easing Easing) T
}

// Lerp interpolates linearly between a and b. It returns a and b exactly at
// t = 0 and t = 1.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Scalar is a tweenable float64 (opacity, rotation, stroke width...).
type Scalar float64

func (a Scalar) Tween(b Scalar, fraction float64, easing Easing) Scalar {
	return Scalar(Lerp(float64(a), float64(b), easing.Apply(fraction)))
}

func (a Scalar) String() string {
	return formatFloat(float64(a))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Point is a tweenable 2D vector (position, anchor, scale).
type Point f64.Vec2

func (a Point) Tween(b Point, fraction float64, easing Easing) Point {
	t := easing.Apply(fraction)
	return Point{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t)}
}

func (a Point) String() string {
	return "(" + formatFloat(a[0]) + ", " + formatFloat(a[1]) + ")"
}

// Affine is a tweenable 2x3 transform, component-wise interpolated.
type Affine f64.Aff3

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 0, 1, 0}

func (a Affine) Tween(b Affine, fraction float64, easing Easing) Affine {
	t := easing.Apply(fraction)
	var out Affine
	for i := range out {
		out[i] = Lerp(a[i], b[i], t)
	}
	return out
}

func (a Affine) String() string {
	return fmt.Sprintf("[%s %s %s; %s %s %s]",
		formatFloat(a[0]), formatFloat(a[1]), formatFloat(a[2]),
		formatFloat(a[3]), formatFloat(a[4]), formatFloat(a[5]))
}

// Apply transforms p.
func (a Affine) Apply(p Point) Point {
	return Point{
		a[0]*p[0] + a[1]*p[1] + a[2],
		a[3]*p[0] + a[4]*p[1] + a[5],
	}
}

// Color is a colour blended in RGB, the way Lottie players interpolate fills.
type Color colorful.Color

func (a Color) Tween(b Color, fraction float64, easing Easing) Color {
	return Color(colorful.Color(a).BlendRgb(colorful.Color(b), easing.Apply(fraction)))
}

// Hex renders the clamped colour as #rrggbb.
func (a Color) Hex() string {
	return colorful.Color(a).Clamped().Hex()
}

func (a Color) String() string { return a.Hex() }

// HclColor is a colour blended in HCL space, which keeps perceived
// brightness steady across hue changes.
type HclColor colorful.Color

func (a HclColor) Tween(b HclColor, fraction float64, easing Easing) HclColor {
	return HclColor(colorful.Color(a).BlendHcl(colorful.Color(b), easing.Apply(fraction)))
}

func (a HclColor) Hex() string {
	return colorful.Color(a).Clamped().Hex()
}

func (a HclColor) String() string { return a.Hex() }

// Hold is a step value: it keeps the first value until the interval completes.
type Hold[V any] struct {
	V V
}

func (a Hold[V]) Tween(b Hold[V], fraction float64, easing Easing) Hold[V] {
	if easing.Apply(fraction) >= 1 {
		return b
	}
	return a
}

func (a Hold[V]) String() string { return fmt.Sprint(a.V) }

// Eased carries its own curve, applied on top of the easing passed in. The
// curve of the interval's starting value wins.
type Eased[T Tweener[T]] struct {
	Value T
	Curve Easing
}

func (a Eased[T]) Tween(b Eased[T], fraction float64, easing Easing) Eased[T] {
	t := a.Curve.Apply(easing.Apply(fraction))
	return Eased[T]{
		Value: a.Value.Tween(b.Value, t, Linear),
		Curve: a.Curve,
	}
}

func (a Eased[T]) String() string { return fmt.Sprint(a.Value) }
