// Package timeline stores keyframes in a time-ordered index and tweens
// between them as a cursor moves.
//
// A Timeline holds sequences of different value types behind handles and
// names; a StaticTimeline holds sequences of a single type. Both can nest
// child timelines of the same kind.
package timeline

import (
	"fmt"

	"github.com/ivlev/interpoli/pkg/timecode"
	"github.com/ivlev/interpoli/pkg/tween"
)

// ErasedSequence is a sequence whose value type has been erased.
type ErasedSequence interface {
	TweenAt(at timecode.Timecode) (any, error)
	Len() int
}

// Timeline is a cursor plus a directory of sequences of any value type.
type Timeline struct {
	cursor
	dir       directory
	sequences map[Handle]ErasedSequence
	children  []*Timeline
	opts      options
}

// New creates an empty timeline with its cursor at zero.
func New(fr timecode.Framerate, opts ...Option) *Timeline {
	return &Timeline{
		cursor:    cursor{time: timecode.Zero(fr)},
		dir:       newDirectory(),
		sequences: make(map[Handle]ErasedSequence),
		opts:      defaultOptions(opts),
	}
}

// NewSequence registers an empty sequence of T under name.
func NewSequence[T tween.Tweener[T]](tl *Timeline, name string) (*Sequence[T], Handle) {
	seq := NewSequenceWith[T](tl.opts.rescan)
	h, shadowed := tl.dir.register(name)
	tl.sequences[h] = seq

	ev := tl.opts.log.Debug()
	if shadowed {
		ev = tl.opts.log.Warn()
	}
	ev.Str("name", name).
		Uint64("handle", uint64(h)).
		Str("type", fmt.Sprintf("%T", *new(T))).
		Bool("shadowed", shadowed).
		Msg("sequence registered")

	return seq, h
}

// SequenceByHandle returns the sequence behind h.
func SequenceByHandle[T tween.Tweener[T]](tl *Timeline, h Handle) (*Sequence[T], error) {
	erased, ok := tl.sequences[h]
	if !ok {
		return nil, fmt.Errorf("handle %d: %w", h, ErrSequenceNotFound)
	}
	seq, ok := erased.(*Sequence[T])
	if !ok {
		return nil, fmt.Errorf("handle %d is %T, not %T: %w", h, erased, seq, ErrSequenceType)
	}
	return seq, nil
}

// SequenceByName returns the sequence most recently registered under name.
func SequenceByName[T tween.Tweener[T]](tl *Timeline, name string) (*Sequence[T], error) {
	h, ok := tl.dir.lookup(name)
	if !ok {
		tl.opts.log.Debug().Str("name", name).Msg("sequence lookup missed")
		return nil, fmt.Errorf("sequence %q: %w", name, ErrSequenceNotFound)
	}
	seq, err := SequenceByHandle[T](tl, h)
	if err != nil {
		return nil, fmt.Errorf("sequence %q: %w", name, err)
	}
	return seq, nil
}

// TweenByHandle tweens the sequence behind h at the cursor.
func TweenByHandle[T tween.Tweener[T]](tl *Timeline, h Handle) (T, error) {
	seq, err := SequenceByHandle[T](tl, h)
	if err != nil {
		var zero T
		return zero, err
	}
	return seq.Tween(tl.Time())
}

// TweenByName tweens the sequence registered under name at the cursor.
func TweenByName[T tween.Tweener[T]](tl *Timeline, name string) (T, error) {
	seq, err := SequenceByName[T](tl, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return seq.Tween(tl.Time())
}

// Tween tweens the sequence registered under name without knowing its type.
func (tl *Timeline) Tween(name string) (any, error) {
	h, ok := tl.dir.lookup(name)
	if !ok {
		return nil, fmt.Errorf("sequence %q: %w", name, ErrSequenceNotFound)
	}
	v, err := tl.sequences[h].TweenAt(tl.Time())
	if err != nil {
		return nil, fmt.Errorf("sequence %q: %w", name, err)
	}
	return v, nil
}

// Handle returns the handle name currently points at.
func (tl *Timeline) Handle(name string) (Handle, bool) {
	return tl.dir.lookup(name)
}

// Sequence returns the type-erased sequence behind h.
func (tl *Timeline) Sequence(h Handle) (ErasedSequence, bool) {
	seq, ok := tl.sequences[h]
	return seq, ok
}

// Names lists the registered names in sorted order.
func (tl *Timeline) Names() []string {
	return tl.dir.sorted()
}

// AddChild appends child and returns its index.
func (tl *Timeline) AddChild(child *Timeline) int {
	tl.children = append(tl.children, child)
	return len(tl.children) - 1
}

func (tl *Timeline) Child(i int) (*Timeline, bool) {
	if i < 0 || i >= len(tl.children) {
		return nil, false
	}
	return tl.children[i], true
}

func (tl *Timeline) Children() []*Timeline {
	return tl.children
}

// Walk visits tl and its descendants depth-first, parents first, and stops
// at the first error.
func (tl *Timeline) Walk(fn func(*Timeline) error) error {
	if err := fn(tl); err != nil {
		return err
	}
	for _, child := range tl.children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}
