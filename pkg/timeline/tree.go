package timeline

import (
	"cmp"
	"slices"

	"github.com/google/btree"

	"github.com/ivlev/interpoli/pkg/timecode"
)

const (
	// treeDegree is the B-tree degree of the second level.
	treeDegree = 16
	// subframeDegree is the B-tree degree of the subframe level.
	subframeDegree = 8
)

// The keyframe index has three levels: absolute second -> frame -> subframe.
// Seconds and subframes are unbounded and live in B-trees. Frames within a
// second are bounded by the framerate and kept in a sorted slice searched by
// bisection.

type secondLeaf[T any] struct {
	second int64
	frames []frameLeaf[T]
}

type frameLeaf[T any] struct {
	frame int64
	keys  *btree.BTreeG[subframeKey[T]]
}

type subframeKey[T any] struct {
	subframe int64
	keyframe Keyframe[T]
}

func lessSecond[T any](a, b *secondLeaf[T]) bool {
	return a.second < b.second
}

func lessSubframe[T any](a, b subframeKey[T]) bool {
	return a.subframe < b.subframe
}

func newSecondTree[T any]() *btree.BTreeG[*secondLeaf[T]] {
	return btree.NewG(treeDegree, lessSecond[T])
}

// newSubframeFreeList returns the node free list shared by every subframe
// tree of one sequence.
func newSubframeFreeList[T any]() *btree.FreeListG[subframeKey[T]] {
	return btree.NewFreeListG[subframeKey[T]](btree.DefaultFreeListSize)
}

func frameCmp[T any](f frameLeaf[T], frame int64) int {
	return cmp.Compare(f.frame, frame)
}

func pivot[T any](subframe int64) subframeKey[T] {
	return subframeKey[T]{subframe: subframe}
}

// getOrCreateFrame descends to the frame leaf for frame, creating it if absent.
func (s *secondLeaf[T]) getOrCreateFrame(frame int64, free *btree.FreeListG[subframeKey[T]]) *frameLeaf[T] {
	i, found := slices.BinarySearchFunc(s.frames, frame, frameCmp[T])
	if !found {
		s.frames = slices.Insert(s.frames, i, frameLeaf[T]{
			frame: frame,
			keys:  btree.NewWithFreeListG(subframeDegree, lessSubframe[T], free),
		})
	}
	return &s.frames[i]
}

func (s *secondLeaf[T]) frameAt(frame int64) (*frameLeaf[T], bool) {
	i, found := slices.BinarySearchFunc(s.frames, frame, frameCmp[T])
	if !found {
		return nil, false
	}
	return &s.frames[i], true
}

func (s *secondLeaf[T]) timed(f *frameLeaf[T], k subframeKey[T], fr timecode.Framerate) TimedKeyframe[T] {
	return TimedKeyframe[T]{
		At:       timecode.New(0, 0, s.second, f.frame, k.subframe, fr),
		Keyframe: k.keyframe,
	}
}

// put stores k at subframe, replacing any keyframe already there. It
// reports whether a new instant was added.
func (f *frameLeaf[T]) put(subframe int64, k Keyframe[T]) bool {
	_, replaced := f.keys.ReplaceOrInsert(subframeKey[T]{subframe: subframe, keyframe: k})
	return !replaced
}

func (f *frameLeaf[T]) get(subframe int64) (Keyframe[T], bool) {
	k, ok := f.keys.Get(pivot[T](subframe))
	return k.keyframe, ok
}

// bounds describes an inclusive range at the three index levels.
type bounds struct {
	begin, end             timecode.Timecode
	beginSecond, endSecond int64
}

// collect appends every keyframe of the leaf that falls inside b.
func (s *secondLeaf[T]) collect(b bounds, fr timecode.Framerate, out []TimedKeyframe[T]) []TimedKeyframe[T] {
	firstSecond := s.second == b.beginSecond
	lastSecond := s.second == b.endSecond

	start := 0
	if firstSecond {
		start, _ = slices.BinarySearchFunc(s.frames, b.begin.Frames(), frameCmp[T])
	}

	for i := start; i < len(s.frames); i++ {
		f := &s.frames[i]
		if lastSecond && f.frame > b.end.Frames() {
			break
		}

		from := int64(0)
		if firstSecond && f.frame == b.begin.Frames() {
			from = b.begin.Subframes()
		}
		lastFrame := lastSecond && f.frame == b.end.Frames()

		f.keys.AscendGreaterOrEqual(pivot[T](from), func(k subframeKey[T]) bool {
			if lastFrame && k.subframe > b.end.Subframes() {
				return false
			}
			out = append(out, s.timed(f, k, fr))
			return true
		})
	}

	return out
}

// firstAfterFrame returns the earliest keyframe in a frame strictly greater
// than frame, or in any frame when all is set.
func (s *secondLeaf[T]) firstAfterFrame(frame int64, all bool, fr timecode.Framerate) (TimedKeyframe[T], bool) {
	start := 0
	if !all {
		i, found := slices.BinarySearchFunc(s.frames, frame, frameCmp[T])
		if found {
			i++
		}
		start = i
	}

	for i := start; i < len(s.frames); i++ {
		f := &s.frames[i]
		if k, ok := f.keys.Min(); ok {
			return s.timed(f, k, fr), true
		}
	}

	return TimedKeyframe[T]{}, false
}

// lastAtOrBefore returns the latest keyframe of the leaf not after
// (frame, subframe), or the leaf's latest keyframe when all is set.
func (s *secondLeaf[T]) lastAtOrBefore(frame, subframe int64, all bool, fr timecode.Framerate) (TimedKeyframe[T], bool) {
	end := len(s.frames)
	if !all {
		i, found := slices.BinarySearchFunc(s.frames, frame, frameCmp[T])
		if found {
			f := &s.frames[i]
			var (
				hit TimedKeyframe[T]
				ok  bool
			)
			f.keys.DescendLessOrEqual(pivot[T](subframe), func(k subframeKey[T]) bool {
				hit, ok = s.timed(f, k, fr), true
				return false
			})
			if ok {
				return hit, true
			}
		}
		end = i
	}

	for i := end - 1; i >= 0; i-- {
		f := &s.frames[i]
		if k, ok := f.keys.Max(); ok {
			return s.timed(f, k, fr), true
		}
	}

	return TimedKeyframe[T]{}, false
}

// each calls fn for every keyframe of the leaf in time order.
func (s *secondLeaf[T]) each(fr timecode.Framerate, fn func(TimedKeyframe[T])) {
	for i := range s.frames {
		f := &s.frames[i]
		f.keys.Ascend(func(k subframeKey[T]) bool {
			fn(s.timed(f, k, fr))
			return true
		})
	}
}
