package timeline

import "github.com/ivlev/interpoli/pkg/timecode"

// Keyframe is one authored sample of a property.
type Keyframe[T any] struct {
	Value T
}

// TimedKeyframe pairs a keyframe with the instant it is stored at.
type TimedKeyframe[T any] struct {
	At       timecode.Timecode
	Keyframe Keyframe[T]
}

// At is shorthand for building a TimedKeyframe.
func At[T any](at timecode.Timecode, value T) TimedKeyframe[T] {
	return TimedKeyframe[T]{At: at, Keyframe: Keyframe[T]{Value: value}}
}
