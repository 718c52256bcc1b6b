package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/interpoli/pkg/timecode"
	"github.com/ivlev/interpoli/pkg/tween"
)

func TestTimelineTweenByName(t *testing.T) {
	tl := New(fps24)

	opacity, _ := NewSequence[tween.Scalar](tl, "opacity")
	opacity.AddKeyframes(
		At(tc(0, 0, 0, 0), tween.Scalar(0)),
		At(tc(0, 0, 2, 0), tween.Scalar(1)),
	)
	position, _ := NewSequence[tween.Point](tl, "position")
	position.AddKeyframes(
		At(tc(0, 0, 0, 0), tween.Point{0, 0}),
		At(tc(0, 0, 2, 0), tween.Point{100, 50}),
	)

	tl.AddDuration(time.Second)

	got, err := TweenByName[tween.Scalar](tl, "opacity")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, float64(got), 1e-9)

	p, err := TweenByName[tween.Point](tl, "position")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, p[0], 1e-9)
	assert.InDelta(t, 25.0, p[1], 1e-9)

	erased, err := tl.Tween("position")
	require.NoError(t, err)
	assert.IsType(t, tween.Point{}, erased)

	assert.Equal(t, []string{"opacity", "position"}, tl.Names())
}

func TestTimelineLookupErrors(t *testing.T) {
	tl := New(fps24)
	_, h := NewSequence[tween.Scalar](tl, "opacity")

	_, err := TweenByName[tween.Scalar](tl, "missing")
	assert.ErrorIs(t, err, ErrSequenceNotFound)

	_, err = TweenByHandle[tween.Scalar](tl, h+42)
	assert.ErrorIs(t, err, ErrSequenceNotFound)

	_, err = SequenceByName[tween.Point](tl, "opacity")
	assert.ErrorIs(t, err, ErrSequenceType)

	_, err = TweenByHandle[tween.Scalar](tl, h)
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = tl.Tween("opacity")
	assert.True(t, errors.Is(err, ErrEmptySequence))
}

func TestTimelineNameShadowing(t *testing.T) {
	tl := New(fps24)

	first, h1 := NewSequence[tween.Scalar](tl, "x")
	first.AddKeyframe(Keyframe[tween.Scalar]{Value: 1}, tc(0, 0, 0, 0))

	second, h2 := NewSequence[tween.Scalar](tl, "x")
	second.AddKeyframe(Keyframe[tween.Scalar]{Value: 2}, tc(0, 0, 0, 0))

	assert.NotEqual(t, h1, h2)

	byName, err := TweenByName[tween.Scalar](tl, "x")
	require.NoError(t, err)
	assert.Equal(t, tween.Scalar(2), byName)

	byOldHandle, err := TweenByHandle[tween.Scalar](tl, h1)
	require.NoError(t, err)
	assert.Equal(t, tween.Scalar(1), byOldHandle)

	h, ok := tl.Handle("x")
	require.True(t, ok)
	assert.Equal(t, h2, h)
	assert.Equal(t, []string{"x"}, tl.Names())
}

func TestTimelineHandlesArePerTimeline(t *testing.T) {
	a, b := New(fps24), New(fps24)

	_, ha := NewSequence[tween.Scalar](a, "x")
	_, hb := NewSequence[tween.Scalar](b, "y")
	assert.Equal(t, ha, hb)

	_, err := SequenceByHandle[tween.Scalar](b, ha)
	require.NoError(t, err)
	_, err = SequenceByName[tween.Scalar](b, "x")
	assert.ErrorIs(t, err, ErrSequenceNotFound)
}

func TestTimelineCursor(t *testing.T) {
	tl := New(fps24)

	tl.AddDuration(1500 * time.Millisecond)
	assert.Equal(t, "00:00:01:12 (24)", tl.Time().String())

	tl.SubDuration(500 * time.Millisecond)
	assert.Equal(t, "00:00:01:00 (24)", tl.Time().String())

	tl.AddTimecode(tc(0, 1, 0, 0))
	assert.Equal(t, "00:01:01:00 (24)", tl.Time().String())

	tl.SubTimecode(tc(0, 0, 2, 0))
	assert.Equal(t, "00:00:59:00 (24)", tl.Time().String())

	tl.SetDuration(2 * time.Second)
	assert.Equal(t, "00:00:02:00 (24)", tl.Time().String())

	tl.SetTimecode(tc(1, 0, 0, 0))
	assert.Equal(t, "01:00:00:00 (24)", tl.Time().String())
	assert.Equal(t, fps24, tl.Framerate())
}

func TestTimelineChildren(t *testing.T) {
	root := New(fps24)
	a, b := New(fps24), New(fps24)
	nested := New(fps24)

	assert.Equal(t, 0, root.AddChild(a))
	assert.Equal(t, 1, root.AddChild(b))
	a.AddChild(nested)

	got, ok := root.Child(1)
	require.True(t, ok)
	assert.Same(t, b, got)
	_, ok = root.Child(2)
	assert.False(t, ok)

	var visited []*Timeline
	require.NoError(t, root.Walk(func(tl *Timeline) error {
		visited = append(visited, tl)
		return nil
	}))
	assert.Equal(t, []*Timeline{root, a, nested, b}, visited)

	stop := errors.New("stop")
	count := 0
	err := root.Walk(func(tl *Timeline) error {
		count++
		if tl == a {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}

func TestTimelineChildCursorsAreIndependent(t *testing.T) {
	root := New(fps24)
	child := New(fps24)
	root.AddChild(child)

	seq, _ := NewSequence[tween.Scalar](child, "x")
	seq.AddKeyframes(
		At(tc(0, 0, 0, 0), tween.Scalar(0)),
		At(tc(0, 0, 1, 0), tween.Scalar(10)),
	)

	root.AddDuration(500 * time.Millisecond)
	got, err := TweenByName[tween.Scalar](child, "x")
	require.NoError(t, err)
	assert.Equal(t, tween.Scalar(0), got)

	require.NoError(t, root.Walk(func(tl *Timeline) error {
		tl.SetTimecode(root.Time())
		return nil
	}))
	got, err = TweenByName[tween.Scalar](child, "x")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, float64(got), 1e-9)
}

func TestTimelineOptions(t *testing.T) {
	tl := New(fps24, WithRescan(RescanAlways), WithLogger(zerolog.Nop()))

	seq, _ := NewSequence[tween.Scalar](tl, "x")
	seq.AddKeyframes(
		At(tc(0, 0, 0, 0), tween.Scalar(0)),
		At(tc(0, 0, 1, 0), tween.Scalar(10)),
	)

	tl.SetDuration(2 * time.Second)
	_, err := TweenByName[tween.Scalar](tl, "x")
	require.NoError(t, err)

	tl.SetDuration(500 * time.Millisecond)
	got, err := TweenByName[tween.Scalar](tl, "x")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, float64(got), 1e-9)
}

func TestStaticTimeline(t *testing.T) {
	tl := NewStatic[tween.Scalar](fps24)

	seq, h := tl.NewSequence("opacity")
	seq.AddKeyframes(
		At(tc(0, 0, 0, 0), tween.Scalar(0)),
		At(tc(0, 0, 4, 0), tween.Scalar(1)),
	)
	tl.AddDuration(time.Second)

	byName, err := tl.TweenByName("opacity")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, float64(byName), 1e-9)

	byHandle, err := tl.TweenByHandle(h)
	require.NoError(t, err)
	assert.Equal(t, byName, byHandle)

	_, err = tl.TweenByName("missing")
	assert.ErrorIs(t, err, ErrSequenceNotFound)
	_, err = tl.TweenByHandle(h + 1)
	assert.ErrorIs(t, err, ErrSequenceNotFound)

	child := NewStatic[tween.Scalar](fps24)
	assert.Equal(t, 0, tl.AddChild(child))
	got, ok := tl.Child(0)
	require.True(t, ok)
	assert.Same(t, child, got)
	assert.Len(t, tl.Children(), 1)

	n := 0
	require.NoError(t, tl.Walk(func(*StaticTimeline[tween.Scalar]) error {
		n++
		return nil
	}))
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"opacity"}, tl.Names())
}

func TestTimelineTimestampMovedByDuration(t *testing.T) {
	ts := timecode.Timestamp()
	tl := New(ts)

	seq, _ := NewSequence[tween.Scalar](tl, "x")
	seq.AddKeyframes(
		At(timecode.MustParse("00:00:00", ts), tween.Scalar(0)),
		At(timecode.MustParse("00:00:10", ts), tween.Scalar(10)),
		At(timecode.MustParse("00:00:15", ts), tween.Scalar(15)),
	)

	tests := []struct {
		name string
		move func()
		want float64
	}{
		{"add", func() { tl.AddDuration(12 * time.Second) }, 12},
		{"exact key", func() { tl.SetDuration(10 * time.Second) }, 10},
		{"sub", func() { tl.SubDuration(5 * time.Second) }, 5},
		{"past the end", func() { tl.SetDuration(time.Minute) }, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.move()
			got, err := TweenByName[tween.Scalar](tl, "x")
			require.NoError(t, err)
			assert.InDelta(t, tt.want, float64(got), 1e-9)
		})
	}

	k, ok := seq.KeyframeAt(timecode.FromDuration(10*time.Second, ts))
	require.True(t, ok)
	assert.Equal(t, tween.Scalar(10), k.Value)
}
