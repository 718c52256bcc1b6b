package timecode

import "strconv"

// Mode selects how a Framerate quantizes time.
type Mode int

const (
	// ModeTimestamp applies no scaling: a frame is one second and folds into seconds.
	ModeTimestamp Mode = iota
	// ModeFixed quantizes time to whole frames; sub-frame position is ignored when tweening.
	ModeFixed
	// ModeInterpolated keeps the sub-frame position meaningful for tweening.
	ModeInterpolated
)

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeInterpolated:
		return "interpolated"
	default:
		return "timestamp"
	}
}

// Framerate is the temporal quantization policy of a Timecode.
type Framerate struct {
	mode Mode
	fps  float64
}

// Timestamp returns an unscaled framerate.
func Timestamp() Framerate {
	return Framerate{mode: ModeTimestamp}
}

// Fixed returns a frame-quantized framerate.
func Fixed(fps float64) Framerate {
	return Framerate{mode: ModeFixed, fps: fps}
}

// Interpolated returns a sub-frame-precise framerate.
func Interpolated(fps float64) Framerate {
	return Framerate{mode: ModeInterpolated, fps: fps}
}

// ParseMode maps a configuration name to a Mode.
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "timestamp", "":
		return ModeTimestamp, true
	case "fixed":
		return ModeFixed, true
	case "interpolated":
		return ModeInterpolated, true
	}
	return ModeTimestamp, false
}

// NewFramerate builds a Framerate from a mode and fps. fps is ignored for ModeTimestamp.
func NewFramerate(mode Mode, fps float64) Framerate {
	if mode == ModeTimestamp {
		return Timestamp()
	}
	return Framerate{mode: mode, fps: fps}
}

func (f Framerate) Mode() Mode {
	return f.mode
}

// FPS returns the frames per second, 0 for Timestamp.
func (f Framerate) FPS() float64 {
	if f.mode == ModeTimestamp {
		return 0
	}
	return f.fps
}

func (f Framerate) IsTimestamp() bool {
	return f.mode == ModeTimestamp
}

func (f Framerate) IsFixed() bool {
	return f.mode == ModeFixed
}

func (f Framerate) IsInterpolated() bool {
	return f.mode == ModeInterpolated
}

// framesPerSecond is the carry base between frames and seconds.
// Zero means frames are never carried, except at Timestamp where each
// frame is a second.
func (f Framerate) framesPerSecond() int64 {
	return int64(f.FPS())
}

// scale is the multiplier between real nanoseconds and subframe units.
func (f Framerate) scale() int64 {
	if n := f.framesPerSecond(); n > 0 {
		return n
	}
	return 1
}

// divisor is used when converting frames back to nanoseconds.
// Timestamp framerates cancel the division.
func (f Framerate) divisor() float64 {
	if fps := f.FPS(); fps != 0 {
		return fps
	}
	return 1
}

func (f Framerate) String() string {
	return strconv.FormatFloat(f.FPS(), 'f', -1, 64)
}
