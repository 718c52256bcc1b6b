package timeline

import (
	"github.com/google/btree"

	"github.com/ivlev/interpoli/pkg/timecode"
	"github.com/ivlev/interpoli/pkg/tween"
)

// RescanPolicy controls when a Sequence looks its keyframes up again.
type RescanPolicy int

const (
	// RescanOnMiss reuses the cached interval while the cursor stays inside
	// it. Once the last keyframe is passed, its value is held.
	RescanOnMiss RescanPolicy = iota
	// RescanAlways looks the interval up on every call, so seeking backwards
	// past the last keyframe is honoured.
	RescanAlways
)

func (p RescanPolicy) String() string {
	if p == RescanAlways {
		return "always"
	}
	return "on-miss"
}

// ParseRescanPolicy maps "always" and "on-miss" (or "") to a policy.
func ParseRescanPolicy(name string) (RescanPolicy, bool) {
	switch name {
	case "", "on-miss":
		return RescanOnMiss, true
	case "always":
		return RescanAlways, true
	}
	return RescanOnMiss, false
}

// Sequence is the ordered keyframes of one property plus the interval
// cache used to tween them.
type Sequence[T tween.Tweener[T]] struct {
	engine  AnimationEngine[T]
	seconds *btree.BTreeG[*secondLeaf[T]]
	free    *btree.FreeListG[subframeKey[T]]
	count   int
	rescan  RescanPolicy
}

// NewSequenceWith builds a standalone sequence.
func NewSequenceWith[T tween.Tweener[T]](policy RescanPolicy) *Sequence[T] {
	return &Sequence[T]{
		seconds: newSecondTree[T](),
		free:    newSubframeFreeList[T](),
		rescan:  policy,
	}
}

// Len returns the number of stored keyframes.
func (s *Sequence[T]) Len() int { return s.count }

// Engine exposes the interval cache, mostly for inspection.
func (s *Sequence[T]) Engine() *AnimationEngine[T] { return &s.engine }

// AddKeyframe stores k at at. A keyframe already stored at the same
// instant is replaced.
func (s *Sequence[T]) AddKeyframe(k Keyframe[T], at timecode.Timecode) Keyframe[T] {
	leaf := s.getOrCreateSecond(at.AbsoluteSeconds())
	frame := leaf.getOrCreateFrame(at.Frames(), s.free)
	if frame.put(at.Subframes(), k) {
		s.count++
	}

	s.engine.Reset()
	return k
}

// AddKeyframes stores every keyframe of ks.
func (s *Sequence[T]) AddKeyframes(ks ...TimedKeyframe[T]) {
	for _, k := range ks {
		s.AddKeyframe(k.Keyframe, k.At)
	}
}

func (s *Sequence[T]) getOrCreateSecond(second int64) *secondLeaf[T] {
	if leaf, ok := s.seconds.Get(&secondLeaf[T]{second: second}); ok {
		return leaf
	}
	leaf := &secondLeaf[T]{second: second}
	s.seconds.ReplaceOrInsert(leaf)
	return leaf
}

// KeyframeAt returns the keyframe stored exactly at at.
func (s *Sequence[T]) KeyframeAt(at timecode.Timecode) (Keyframe[T], bool) {
	leaf, ok := s.seconds.Get(&secondLeaf[T]{second: at.AbsoluteSeconds()})
	if !ok {
		return Keyframe[T]{}, false
	}
	frame, ok := leaf.frameAt(at.Frames())
	if !ok {
		return Keyframe[T]{}, false
	}
	return frame.get(at.Subframes())
}

// KeyframesBetween returns the keyframes in [begin, end] in time order,
// with their instants rebuilt at framerate fr.
func (s *Sequence[T]) KeyframesBetween(begin, end timecode.Timecode, fr timecode.Framerate) []TimedKeyframe[T] {
	b := bounds{
		begin:       begin,
		end:         end,
		beginSecond: begin.AbsoluteSeconds(),
		endSecond:   end.AbsoluteSeconds(),
	}
	if b.endSecond < b.beginSecond {
		return nil
	}

	var out []TimedKeyframe[T]
	s.seconds.AscendRange(
		&secondLeaf[T]{second: b.beginSecond},
		&secondLeaf[T]{second: b.endSecond + 1},
		func(leaf *secondLeaf[T]) bool {
			out = leaf.collect(b, fr, out)
			return true
		},
	)
	return out
}

// FirstKeyframeAfter returns the earliest keyframe stored after at,
// skipping everything that shares at's second and frame.
func (s *Sequence[T]) FirstKeyframeAfter(at timecode.Timecode, fr timecode.Framerate) (TimedKeyframe[T], bool) {
	second := at.AbsoluteSeconds()

	var found TimedKeyframe[T]
	var ok bool
	s.seconds.AscendGreaterOrEqual(&secondLeaf[T]{second: second}, func(leaf *secondLeaf[T]) bool {
		found, ok = leaf.firstAfterFrame(at.Frames(), leaf.second != second, fr)
		return !ok
	})
	return found, ok
}

// LastKeyframeAtOrBefore returns the latest keyframe stored at or before at.
func (s *Sequence[T]) LastKeyframeAtOrBefore(at timecode.Timecode, fr timecode.Framerate) (TimedKeyframe[T], bool) {
	second := at.AbsoluteSeconds()

	var found TimedKeyframe[T]
	var ok bool
	s.seconds.DescendLessOrEqual(&secondLeaf[T]{second: second}, func(leaf *secondLeaf[T]) bool {
		found, ok = leaf.lastAtOrBefore(at.Frames(), at.Subframes(), leaf.second != second, fr)
		return !ok
	})
	return found, ok
}

// First returns the earliest keyframe.
func (s *Sequence[T]) First(fr timecode.Framerate) (TimedKeyframe[T], bool) {
	leaf, ok := s.seconds.Min()
	if !ok {
		return TimedKeyframe[T]{}, false
	}
	return leaf.firstAfterFrame(0, true, fr)
}

// Last returns the latest keyframe.
func (s *Sequence[T]) Last(fr timecode.Framerate) (TimedKeyframe[T], bool) {
	leaf, ok := s.seconds.Max()
	if !ok {
		return TimedKeyframe[T]{}, false
	}
	return leaf.lastAtOrBefore(0, 0, true, fr)
}

// Keyframes returns every keyframe in time order.
func (s *Sequence[T]) Keyframes(fr timecode.Framerate) []TimedKeyframe[T] {
	out := make([]TimedKeyframe[T], 0, s.count)
	s.seconds.Ascend(func(leaf *secondLeaf[T]) bool {
		leaf.each(fr, func(k TimedKeyframe[T]) {
			out = append(out, k)
		})
		return true
	})
	return out
}

// Tween returns the value of the sequence at at. Before the first keyframe
// the first value is held; past the last keyframe the last value is held.
func (s *Sequence[T]) Tween(at timecode.Timecode) (T, error) {
	if s.count == 0 {
		var zero T
		return zero, ErrEmptySequence
	}

	if s.needsRescan(at) {
		if held, ok := s.rescanAt(at); !ok {
			return held, nil
		}
	}

	return s.engine.Tween(at), nil
}

func (s *Sequence[T]) needsRescan(at timecode.Timecode) bool {
	if s.rescan == RescanAlways {
		return true
	}
	switch s.engine.Status() {
	case StatusSequenceEnded:
		return false
	case StatusRunning:
		return !s.engine.Covers(at)
	default:
		return true
	}
}

// rescanAt looks up the interval around at and loads it into the engine.
// It returns false with the first keyframe's value when at precedes every
// keyframe.
func (s *Sequence[T]) rescanAt(at timecode.Timecode) (T, bool) {
	fr := at.Framerate()

	lower, found := s.LastKeyframeAtOrBefore(at, fr)
	if !found {
		s.engine.Reset()
		first, _ := s.First(fr)
		return first.Keyframe.Value, false
	}

	if upper, ok := s.FirstKeyframeAfter(lower.At, fr); ok {
		s.engine.SetNewAnimation(lower.At, upper.At, lower.Keyframe, upper.Keyframe)
	} else {
		s.engine.SetNewEnd(lower.Keyframe)
	}

	var zero T
	return zero, true
}

// TweenAt is Tween with the value boxed, for callers that do not know T.
func (s *Sequence[T]) TweenAt(at timecode.Timecode) (any, error) {
	v, err := s.Tween(at)
	if err != nil {
		return nil, err
	}
	return v, nil
}
