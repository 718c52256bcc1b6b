// Package timecode implements frame-based time: an instant split into hours,
// minutes, seconds, frames and sub-frame units, bound to a Framerate.
package timecode

import (
	"fmt"
	"time"
)

const (
	// SubframesPerFrame is the resolution of the sub-frame field.
	SubframesPerFrame = 1_000_000_000

	nanosPerSecond = int64(time.Second)
	nanosPerMinute = int64(time.Minute)
	nanosPerHour   = int64(time.Hour)
)

// Timecode is one instant. It is a value type and is kept normalized after
// every construction and mutation.
type Timecode struct {
	hours     int64
	minutes   int64
	seconds   int64
	frames    int64
	subframes int64
	framerate Framerate
}

// New creates a normalized Timecode.
func New(h, m, s, f, sf int64, fr Framerate) Timecode {
	t := Timecode{
		hours:     h,
		minutes:   m,
		seconds:   s,
		frames:    f,
		subframes: sf,
		framerate: fr,
	}
	t.normalize()
	return t
}

// NewHMSF creates a Timecode with a Timestamp framerate.
func NewHMSF(h, m, s, f int64) Timecode {
	return New(h, m, s, f, 0, Timestamp())
}

// Zero returns 00:00:00:00 at the given framerate.
func Zero(fr Framerate) Timecode {
	return Timecode{framerate: fr}
}

// FromDuration returns the instant d after zero at the given framerate.
func FromDuration(d time.Duration, fr Framerate) Timecode {
	t := Zero(fr)
	t.AddDuration(d)
	return t
}

func (t Timecode) Hours() int64         { return t.hours }
func (t Timecode) Minutes() int64       { return t.minutes }
func (t Timecode) Seconds() int64       { return t.seconds }
func (t Timecode) Frames() int64        { return t.frames }
func (t Timecode) Subframes() int64     { return t.subframes }
func (t Timecode) Framerate() Framerate { return t.framerate }

// AbsoluteSeconds flattens hours and minutes into seconds.
func (t Timecode) AbsoluteSeconds() int64 {
	return t.hours*3600 + t.minutes*60 + t.seconds
}

// SetFramerate replaces the framerate without renormalizing.
func (t *Timecode) SetFramerate(fr Framerate) {
	t.framerate = fr
}

// WithFramerate returns a copy bound to fr and renormalized under it.
func (t Timecode) WithFramerate(fr Framerate) Timecode {
	t.framerate = fr
	t.normalize()
	return t
}

// normalize carries every field into its canonical range. Floor division
// handles overflow and underflow in one pass. Hours are never wrapped.
func (t *Timecode) normalize() {
	var carry int64

	carry, t.subframes = floorDivMod(t.subframes, SubframesPerFrame)
	t.frames += carry

	switch fps := t.framerate.framesPerSecond(); {
	case fps > 0:
		carry, t.frames = floorDivMod(t.frames, fps)
		t.seconds += carry
	case t.framerate.IsTimestamp():
		// A Timestamp frame is one second, so frames fold into seconds and
		// every instant has a single layout.
		t.seconds += t.frames
		t.frames = 0
	}

	carry, t.seconds = floorDivMod(t.seconds, 60)
	t.minutes += carry

	carry, t.minutes = floorDivMod(t.minutes, 60)
	t.hours += carry
}

func floorDivMod(x, base int64) (int64, int64) {
	q, r := x/base, x%base
	if r < 0 {
		q--
		r += base
	}
	return q, r
}

// Stepping

func (t *Timecode) NextFrame() {
	t.frames++
	t.normalize()
}

func (t *Timecode) NextSecond() {
	t.seconds++
	t.normalize()
}

func (t *Timecode) NextMinute() {
	t.minutes++
	t.normalize()
}

// NextHour has no modulus to respect, so it does not renormalize.
func (t *Timecode) NextHour() {
	t.hours++
}

func (t *Timecode) BackFrame() {
	t.frames--
	t.normalize()
}

func (t *Timecode) BackSecond() {
	t.seconds--
	t.normalize()
}

func (t *Timecode) BackMinute() {
	t.minutes--
	t.normalize()
}

func (t *Timecode) BackHour() {
	t.hours--
}

// Arithmetic

// AddDuration advances the timecode by a real-time duration, expressed in
// sub-frame units at the timecode's framerate.
func (t *Timecode) AddDuration(d time.Duration) {
	t.shiftNanos(d.Nanoseconds())
}

// SubDuration moves the timecode back by a real-time duration.
func (t *Timecode) SubDuration(d time.Duration) {
	t.shiftNanos(-d.Nanoseconds())
}

// AddTimecode advances by the absolute length of o, read at t's framerate.
func (t *Timecode) AddTimecode(o Timecode) {
	t.shiftNanos(o.NanosecondsWithFramerate(t.framerate, false))
}

// SubTimecode moves back by the absolute length of o, read at t's framerate.
func (t *Timecode) SubTimecode(o Timecode) {
	t.shiftNanos(-o.NanosecondsWithFramerate(t.framerate, false))
}

// shiftNanos folds n real nanoseconds into the sub-frame field. Whole seconds
// go straight to the seconds field when frames carry, which is the same
// total and keeps nanos*fps inside int64 on long timelines.
func (t *Timecode) shiftNanos(n int64) {
	if t.framerate.framesPerSecond() > 0 || t.framerate.IsTimestamp() {
		t.seconds += n / nanosPerSecond
		n %= nanosPerSecond
	}
	t.subframes += n * t.framerate.scale()
	t.normalize()
}

// Reset zeroes every field, keeping the framerate.
func (t *Timecode) Reset() {
	t.hours, t.minutes, t.seconds, t.frames, t.subframes = 0, 0, 0, 0, 0
}

func (t *Timecode) SetDuration(d time.Duration) {
	t.Reset()
	t.AddDuration(d)
}

func (t *Timecode) SetTimecode(o Timecode) {
	t.Reset()
	t.AddTimecode(o)
}

// Conversion

// Nanoseconds is the total elapsed time at the timecode's own framerate.
func (t Timecode) Nanoseconds() int64 {
	return t.NanosecondsWithFramerate(t.framerate, false)
}

// NanosecondsWithFramerate is the total elapsed time read at fr. While
// tweening, the sub-frame position only counts for Interpolated framerates.
func (t Timecode) NanosecondsWithFramerate(fr Framerate, forTweening bool) int64 {
	var nanos int64
	div := fr.divisor()

	if fr.IsInterpolated() || !forTweening {
		nanos += int64(float64(t.subframes) / div)
	}

	nanos += int64(float64(t.frames) / div * float64(nanosPerSecond))
	nanos += t.seconds * nanosPerSecond
	nanos += t.minutes * nanosPerMinute
	nanos += t.hours * nanosPerHour

	return nanos
}

// Duration converts the timecode to a time.Duration.
func (t Timecode) Duration() time.Duration {
	return time.Duration(t.Nanoseconds())
}

// Comparison

// EqualsHMSF compares down to whole frames, ignoring sub-frame units.
func (t Timecode) EqualsHMSF(o Timecode) bool {
	return t.frames == o.frames &&
		t.seconds == o.seconds &&
		t.minutes == o.minutes &&
		t.hours == o.hours
}

// Equal reports whether every field, framerate included, matches.
func (t Timecode) Equal(o Timecode) bool {
	return t.EqualsHMSF(o) && t.subframes == o.subframes && t.framerate == o.framerate
}

// Compare orders two instants by elapsed time: -1, 0 or +1.
func (t Timecode) Compare(o Timecode) int {
	a, b := t.Nanoseconds(), o.Nanoseconds()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (t Timecode) Before(o Timecode) bool { return t.Compare(o) < 0 }
func (t Timecode) After(o Timecode) bool  { return t.Compare(o) > 0 }

// LerpTimeBetween returns t's position in [0, 1] between begin and end.
// A zero-length interval counts as complete and yields 1.
func (t Timecode) LerpTimeBetween(begin, end Timecode) float64 {
	fr := t.framerate

	a := begin.NanosecondsWithFramerate(fr, true)
	b := end.NanosecondsWithFramerate(fr, true)
	x := t.NanosecondsWithFramerate(fr, true)

	if b == a {
		return 1
	}

	f := float64(x-a) / float64(b-a)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Formatting

func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d (%s)", t.hours, t.minutes, t.seconds, t.frames, t.framerate)
}

// FullString includes the sub-frame units.
func (t Timecode) FullString() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d:%09d (%s)",
		t.hours, t.minutes, t.seconds, t.frames, t.subframes, t.framerate)
}

// ClockString renders the fields without the framerate in the form Parse
// reads back. Sub-frame units are only written when non-zero.
func (t Timecode) ClockString() string {
	if t.subframes != 0 {
		return fmt.Sprintf("%02d:%02d:%02d:%02d:%09d", t.hours, t.minutes, t.seconds, t.frames, t.subframes)
	}
	return fmt.Sprintf("%02d:%02d:%02d:%02d", t.hours, t.minutes, t.seconds, t.frames)
}

func (t Timecode) HMSString() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.hours, t.minutes, t.seconds)
}
