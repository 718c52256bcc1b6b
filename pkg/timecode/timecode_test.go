package timecode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertHMSF(t *testing.T, tc Timecode, h, m, s, f int64) {
	t.Helper()
	assert.Equal(t, h, tc.Hours(), "hours of %s", tc)
	assert.Equal(t, m, tc.Minutes(), "minutes of %s", tc)
	assert.Equal(t, s, tc.Seconds(), "seconds of %s", tc)
	assert.Equal(t, f, tc.Frames(), "frames of %s", tc)
}

func TestNew_NormalizesFields(t *testing.T) {
	inputs := [][5]int64{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 24, 0},
		{0, 0, 59, 23, 999_999_999},
		{0, 0, 0, 0, 3_500_000_000},
		{1, 75, 130, 100, 0},
		{0, 0, 3600, 0, 0},
		{2, 59, 59, 47, 1_000_000_000},
	}

	for _, in := range inputs {
		tc := New(in[0], in[1], in[2], in[3], in[4], Fixed(24))
		assert.GreaterOrEqual(t, tc.Minutes(), int64(0))
		assert.LessOrEqual(t, tc.Minutes(), int64(59))
		assert.GreaterOrEqual(t, tc.Seconds(), int64(0))
		assert.LessOrEqual(t, tc.Seconds(), int64(59))
		assert.GreaterOrEqual(t, tc.Frames(), int64(0))
		assert.Less(t, tc.Frames(), int64(24))
		assert.GreaterOrEqual(t, tc.Subframes(), int64(0))
		assert.Less(t, tc.Subframes(), int64(SubframesPerFrame))
	}

	assertHMSF(t, New(0, 0, 0, 24, 0, Fixed(24)), 0, 0, 1, 0)
	assertHMSF(t, New(1, 75, 130, 100, 0, Fixed(24)), 2, 17, 14, 4)
	assertHMSF(t, New(0, 0, 0, 0, 3_500_000_000, Fixed(24)), 0, 0, 0, 3)
	assert.Equal(t, int64(500_000_000), New(0, 0, 0, 0, 3_500_000_000, Fixed(24)).Subframes())
}

func TestNew_Underflow(t *testing.T) {
	tc := New(0, 1, 0, -1, 0, Fixed(24))
	assertHMSF(t, tc, 0, 0, 59, 23)

	tc = New(0, 0, 0, 0, -1, Fixed(24))
	assertHMSF(t, tc, -1, 59, 59, 23)
	assert.Equal(t, int64(999_999_999), tc.Subframes())
}

func TestNew_TimestampFramesFoldIntoSeconds(t *testing.T) {
	tc := New(0, 0, 0, 100, 0, Timestamp())
	assertHMSF(t, tc, 0, 1, 40, 0)

	tc = New(0, 0, 0, 0, 2_500_000_000, Timestamp())
	assertHMSF(t, tc, 0, 0, 2, 0)
	assert.Equal(t, int64(500_000_000), tc.Subframes())

	tc = New(0, 0, 5, -1, 0, Timestamp())
	assertHMSF(t, tc, 0, 0, 4, 0)
}

func TestTimestampSingleLayout(t *testing.T) {
	parsed := MustParse("00:00:12", Timestamp())

	tests := []struct {
		name string
		tc   Timecode
	}{
		{"from duration", FromDuration(12*time.Second, Timestamp())},
		{"frames field", New(0, 0, 0, 12, 0, Timestamp())},
		{"parsed with frames", MustParse("00:00:00:12", Timestamp())},
		{"stepped", func() Timecode {
			tc := Zero(Timestamp())
			for i := 0; i < 12; i++ {
				tc.NextFrame()
			}
			return tc
		}()},
		{"shifted back", func() Timecode {
			tc := New(0, 0, 12, 0, 500_000_000, Timestamp())
			tc.SubDuration(500 * time.Millisecond)
			return tc
		}()},
		{"set by timecode", func() Timecode {
			tc := Zero(Timestamp())
			tc.SetTimecode(New(0, 0, 12, 0, 0, Fixed(24)))
			return tc
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.tc.Equal(parsed), "%s vs %s", tt.tc.FullString(), parsed.FullString())
			assert.Equal(t, int64(12), tt.tc.AbsoluteSeconds())
			assert.Equal(t, int64(0), tt.tc.Frames())
		})
	}
}

func TestStepping(t *testing.T) {
	tc := Zero(Fixed(24))
	for i := 0; i < 24; i++ {
		tc.NextFrame()
	}
	assertHMSF(t, tc, 0, 0, 1, 0)

	tc = Zero(Fixed(24))
	for i := 0; i < 60; i++ {
		tc.NextSecond()
	}
	assertHMSF(t, tc, 0, 1, 0, 0)

	tc = Zero(Fixed(24))
	for i := 0; i < 60; i++ {
		tc.NextMinute()
	}
	assertHMSF(t, tc, 1, 0, 0, 0)

	tc.NextHour()
	assertHMSF(t, tc, 2, 0, 0, 0)
}

func TestStepping_Back(t *testing.T) {
	tc := New(0, 0, 1, 0, 0, Fixed(24))
	tc.BackFrame()
	assertHMSF(t, tc, 0, 0, 0, 23)

	tc = New(0, 1, 0, 0, 0, Fixed(24))
	tc.BackSecond()
	assertHMSF(t, tc, 0, 0, 59, 0)

	tc = New(1, 0, 0, 0, 0, Fixed(24))
	tc.BackMinute()
	assertHMSF(t, tc, 0, 59, 0, 0)

	tc.BackHour()
	assertHMSF(t, tc, -1, 59, 0, 0)
}

func TestAddSubDuration_RoundTrip(t *testing.T) {
	durations := []time.Duration{
		0,
		time.Nanosecond,
		41 * time.Millisecond,
		500 * time.Millisecond,
		time.Second,
		90 * time.Minute,
		3*time.Hour + 7*time.Second + 13*time.Millisecond,
	}
	origins := []Timecode{
		Zero(Fixed(24)),
		New(0, 12, 30, 5, 0, Fixed(24)),
		New(1, 0, 0, 29, 123, Fixed(30)),
		New(0, 0, 10, 3, 250_000_000, Interpolated(60)),
		New(0, 0, 12, 0, 0, Timestamp()),
	}

	for _, origin := range origins {
		for _, d := range durations {
			tc := origin
			tc.AddDuration(d)
			tc.SubDuration(d)
			assert.True(t, tc.Equal(origin), "%s +/- %s gave %s", origin.FullString(), d, tc.FullString())
		}
	}
}

func TestAddDuration(t *testing.T) {
	tc := Zero(Fixed(24))
	tc.AddDuration(1500 * time.Millisecond)
	assertHMSF(t, tc, 0, 0, 1, 12)
	assert.Equal(t, int64(0), tc.Subframes())

	tc = Zero(Fixed(24))
	tc.AddDuration(10 * time.Millisecond)
	assertHMSF(t, tc, 0, 0, 0, 0)
	assert.Equal(t, int64(240_000_000), tc.Subframes())

	tc = Zero(Timestamp())
	tc.AddDuration(1500 * time.Millisecond)
	assertHMSF(t, tc, 0, 0, 1, 0)
	assert.Equal(t, int64(500_000_000), tc.Subframes())
	assert.Equal(t, int64(1_500_000_000), tc.Nanoseconds())
}

func TestAddDuration_LongTimeline(t *testing.T) {
	tc := Zero(Fixed(60))
	tc.AddDuration(100*time.Hour + 30*time.Minute)
	assertHMSF(t, tc, 100, 30, 0, 0)
	assert.Equal(t, 100*time.Hour+30*time.Minute, tc.Duration())
}

func TestAddSubTimecode(t *testing.T) {
	tc := Zero(Fixed(24))
	tc.AddTimecode(New(0, 0, 1, 12, 0, Fixed(24)))
	assertHMSF(t, tc, 0, 0, 1, 12)

	tc.AddTimecode(New(0, 0, 0, 12, 0, Fixed(24)))
	assertHMSF(t, tc, 0, 0, 2, 0)

	tc.SubTimecode(New(0, 0, 2, 1, 0, Fixed(24)))
	assertHMSF(t, tc, -1, 59, 59, 23)
}

func TestSetAndReset(t *testing.T) {
	tc := New(3, 2, 1, 0, 0, Fixed(25))
	tc.SetDuration(2 * time.Second)
	assertHMSF(t, tc, 0, 0, 2, 0)

	tc.SetTimecode(New(0, 1, 0, 5, 0, Fixed(25)))
	assertHMSF(t, tc, 0, 1, 0, 5)

	tc.Reset()
	assertHMSF(t, tc, 0, 0, 0, 0)
	assert.Equal(t, Fixed(25), tc.Framerate())
}

func TestNanoseconds(t *testing.T) {
	tc := New(1, 2, 3, 12, 0, Fixed(24))
	assert.Equal(t, int64(3723_500_000_000), tc.Nanoseconds())

	withSub := New(0, 0, 0, 0, 500_000_000, Fixed(1))
	assert.Equal(t, int64(500_000_000), withSub.NanosecondsWithFramerate(Fixed(1), false))
	assert.Equal(t, int64(0), withSub.NanosecondsWithFramerate(Fixed(1), true))
	assert.Equal(t, int64(500_000_000), withSub.NanosecondsWithFramerate(Interpolated(1), true))
}

func TestLerpTimeBetween(t *testing.T) {
	begin := New(0, 0, 0, 0, 0, Fixed(24))
	end := New(0, 0, 0, 24, 0, Fixed(24))
	mid := New(0, 0, 0, 12, 0, Fixed(24))

	assert.InDelta(t, 0.5, mid.LerpTimeBetween(begin, end), 1e-9)
	assert.InDelta(t, 0.0, begin.LerpTimeBetween(begin, end), 1e-9)
	assert.InDelta(t, 1.0, end.LerpTimeBetween(begin, end), 1e-9)
}

func TestLerpTimeBetween_AnchoredAtBegin(t *testing.T) {
	begin := New(0, 0, 10, 0, 0, Fixed(24))
	end := New(0, 0, 12, 0, 0, Fixed(24))
	at := New(0, 0, 11, 12, 0, Fixed(24))

	assert.InDelta(t, 0.75, at.LerpTimeBetween(begin, end), 1e-9)
}

func TestLerpTimeBetween_SubframePolicy(t *testing.T) {
	tests := []struct {
		name string
		fr   Framerate
		want float64
	}{
		{"fixed suppresses sub-frame", Fixed(1), 0.0},
		{"interpolated keeps sub-frame", Interpolated(1), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			begin := Zero(tt.fr)
			end := New(0, 0, 0, 1, 0, tt.fr)
			at := Zero(tt.fr)
			at.AddDuration(500 * time.Millisecond)

			assert.InDelta(t, tt.want, at.LerpTimeBetween(begin, end), 1e-9)
		})
	}
}

func TestLerpTimeBetween_Degenerate(t *testing.T) {
	at := New(0, 0, 5, 0, 0, Fixed(24))
	assert.Equal(t, 1.0, at.LerpTimeBetween(at, at))
}

func TestLerpTimeBetween_Clamped(t *testing.T) {
	begin := New(0, 0, 1, 0, 0, Fixed(24))
	end := New(0, 0, 2, 0, 0, Fixed(24))

	assert.Equal(t, 0.0, New(0, 0, 0, 0, 0, Fixed(24)).LerpTimeBetween(begin, end))
	assert.Equal(t, 1.0, New(0, 0, 5, 0, 0, Fixed(24)).LerpTimeBetween(begin, end))
}

func TestCompare(t *testing.T) {
	a := New(0, 0, 1, 0, 0, Fixed(24))
	b := New(0, 0, 1, 1, 0, Fixed(24))

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.EqualsHMSF(New(0, 0, 1, 0, 999, Fixed(24))))
	assert.False(t, a.Equal(New(0, 0, 1, 0, 999, Fixed(24))))
}

func TestWithFramerate(t *testing.T) {
	tc := New(0, 0, 0, 30, 0, Fixed(60))
	assertHMSF(t, tc, 0, 0, 0, 30)

	tc = tc.WithFramerate(Fixed(24))
	assertHMSF(t, tc, 0, 0, 1, 6)

	tc = New(0, 0, 12, 0, 0, Timestamp()).WithFramerate(Fixed(24))
	assertHMSF(t, tc, 0, 0, 12, 0)
}

func TestParseAndFormat(t *testing.T) {
	tc, err := Parse("01:02:03:04", Fixed(24))
	require.NoError(t, err)
	assertHMSF(t, tc, 1, 2, 3, 4)
	assert.Equal(t, "01:02:03:04 (24)", tc.String())
	assert.Equal(t, "01:02:03", tc.HMSString())

	tc, err = Parse("00:00:05", Fixed(30))
	require.NoError(t, err)
	assertHMSF(t, tc, 0, 0, 5, 0)

	tc, err = Parse("00:00:00:01:500000000", Interpolated(30))
	require.NoError(t, err)
	assert.Equal(t, "00:00:00:01:500000000 (30)", tc.FullString())

	for _, bad := range []string{"", "12", "00:00", "aa:00:00", "0:0:0:0:0:0"} {
		_, err := Parse(bad, Fixed(24))
		assert.ErrorIs(t, err, ErrInvalidTimecode, "input %q", bad)
	}
}

func TestFramerate(t *testing.T) {
	assert.Equal(t, 0.0, Timestamp().FPS())
	assert.True(t, Timestamp().IsTimestamp())
	assert.True(t, Fixed(24).IsFixed())
	assert.True(t, Interpolated(30).IsInterpolated())
	assert.Equal(t, "29.97", Fixed(29.97).String())
	assert.Equal(t, Timestamp(), NewFramerate(ModeTimestamp, 60))

	mode, ok := ParseMode("interpolated")
	require.True(t, ok)
	assert.Equal(t, ModeInterpolated, mode)

	_, ok = ParseMode("drop-frame")
	assert.False(t, ok)
}

func TestClockString(t *testing.T) {
	tests := []struct {
		in   Timecode
		want string
	}{
		{New(1, 2, 3, 4, 0, Fixed(24)), "01:02:03:04"},
		{New(0, 0, 0, 1, 5, Interpolated(30)), "00:00:00:01:000000005"},
		{Zero(Timestamp()), "00:00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ClockString())

			back, err := Parse(tt.in.ClockString(), tt.in.Framerate())
			require.NoError(t, err)
			assert.True(t, back.Equal(tt.in))
		})
	}
}
