package timeline

import (
	"fmt"

	"github.com/ivlev/interpoli/pkg/timecode"
	"github.com/ivlev/interpoli/pkg/tween"
)

// StaticTimeline is a Timeline whose sequences all hold T, so lookups need
// no type check.
type StaticTimeline[T tween.Tweener[T]] struct {
	cursor
	dir       directory
	sequences map[Handle]*Sequence[T]
	children  []*StaticTimeline[T]
	opts      options
}

func NewStatic[T tween.Tweener[T]](fr timecode.Framerate, opts ...Option) *StaticTimeline[T] {
	return &StaticTimeline[T]{
		cursor:    cursor{time: timecode.Zero(fr)},
		dir:       newDirectory(),
		sequences: make(map[Handle]*Sequence[T]),
		opts:      defaultOptions(opts),
	}
}

func (tl *StaticTimeline[T]) NewSequence(name string) (*Sequence[T], Handle) {
	seq := NewSequenceWith[T](tl.opts.rescan)
	h, shadowed := tl.dir.register(name)
	tl.sequences[h] = seq

	tl.opts.log.Debug().
		Str("name", name).
		Uint64("handle", uint64(h)).
		Bool("shadowed", shadowed).
		Msg("sequence registered")

	return seq, h
}

func (tl *StaticTimeline[T]) SequenceByHandle(h Handle) (*Sequence[T], error) {
	seq, ok := tl.sequences[h]
	if !ok {
		return nil, fmt.Errorf("handle %d: %w", h, ErrSequenceNotFound)
	}
	return seq, nil
}

func (tl *StaticTimeline[T]) SequenceByName(name string) (*Sequence[T], error) {
	h, ok := tl.dir.lookup(name)
	if !ok {
		return nil, fmt.Errorf("sequence %q: %w", name, ErrSequenceNotFound)
	}
	return tl.sequences[h], nil
}

func (tl *StaticTimeline[T]) TweenByHandle(h Handle) (T, error) {
	seq, err := tl.SequenceByHandle(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return seq.Tween(tl.Time())
}

func (tl *StaticTimeline[T]) TweenByName(name string) (T, error) {
	seq, err := tl.SequenceByName(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return seq.Tween(tl.Time())
}

func (tl *StaticTimeline[T]) Handle(name string) (Handle, bool) {
	return tl.dir.lookup(name)
}

func (tl *StaticTimeline[T]) Names() []string {
	return tl.dir.sorted()
}

func (tl *StaticTimeline[T]) AddChild(child *StaticTimeline[T]) int {
	tl.children = append(tl.children, child)
	return len(tl.children) - 1
}

func (tl *StaticTimeline[T]) Child(i int) (*StaticTimeline[T], bool) {
	if i < 0 || i >= len(tl.children) {
		return nil, false
	}
	return tl.children[i], true
}

func (tl *StaticTimeline[T]) Children() []*StaticTimeline[T] {
	return tl.children
}

func (tl *StaticTimeline[T]) Walk(fn func(*StaticTimeline[T]) error) error {
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
