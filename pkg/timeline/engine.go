package timeline

import (
	"github.com/ivlev/interpoli/pkg/timecode"
	"github.com/ivlev/interpoli/pkg/tween"
)

// Status is the state of an AnimationEngine.
type Status int

const (
	// StatusEmpty means no interval is cached.
	StatusEmpty Status = iota
	// StatusRunning means an interval is cached and still being played.
	StatusRunning
	// StatusEnded means the cached interval has been played to its end.
	StatusEnded
	// StatusSequenceEnded means the cursor is past the last keyframe.
	StatusSequenceEnded
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	case StatusSequenceEnded:
		return "sequence-ended"
	default:
		return "unknown"
	}
}

// AnimationEngine caches the keyframe interval currently being played.
type AnimationEngine[T tween.Tweener[T]] struct {
	tBegin, tEnd timecode.Timecode
	kBegin, kEnd Keyframe[T]
	status       Status
}

// SetNewAnimation caches the interval [begin, end] and starts running it.
func (e *AnimationEngine[T]) SetNewAnimation(begin, end timecode.Timecode, kBegin, kEnd Keyframe[T]) {
	e.tBegin, e.tEnd = begin, end
	e.kBegin, e.kEnd = kBegin, kEnd
	e.status = StatusRunning
}

// SetNewEnd marks the sequence as finished on k.
func (e *AnimationEngine[T]) SetNewEnd(k Keyframe[T]) {
	e.kEnd = k
	e.status = StatusSequenceEnded
}

// Reset drops the cached interval.
func (e *AnimationEngine[T]) Reset() {
	*e = AnimationEngine[T]{}
}

// Tween samples the cached interval at at. Reaching the end of the
// interval moves the engine to StatusEnded.
func (e *AnimationEngine[T]) Tween(at timecode.Timecode) T {
	switch e.status {
	case StatusEmpty, StatusSequenceEnded:
		return e.kEnd.Value
	}

	fraction := at.LerpTimeBetween(e.tBegin, e.tEnd)
	if fraction >= 1 {
		e.status = StatusEnded
	}
	return e.kBegin.Value.Tween(e.kEnd.Value, fraction, tween.Linear)
}

// Covers reports whether at lies within the cached interval, compared at
// tweening precision.
func (e *AnimationEngine[T]) Covers(at timecode.Timecode) bool {
	if e.status != StatusRunning {
		return false
	}
	fr := at.Framerate()
	x := at.NanosecondsWithFramerate(fr, true)
	return e.tBegin.NanosecondsWithFramerate(fr, true) <= x &&
		x <= e.tEnd.NanosecondsWithFramerate(fr, true)
}

func (e *AnimationEngine[T]) Status() Status { return e.status }

func (e *AnimationEngine[T]) IsEmpty() bool { return e.status == StatusEmpty }

func (e *AnimationEngine[T]) IsRunning() bool { return e.status == StatusRunning }

func (e *AnimationEngine[T]) HasEnded() bool { return e.status == StatusEnded }

func (e *AnimationEngine[T]) IsSequenceEnded() bool { return e.status == StatusSequenceEnded }
