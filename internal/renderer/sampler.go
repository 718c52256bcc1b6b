// Package renderer steps scenes frame by frame and records the tweened value
// of every track.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ivlev/interpoli/internal/config"
	"github.com/ivlev/interpoli/internal/scenario"
	"github.com/ivlev/interpoli/pkg/timecode"
	"github.com/ivlev/interpoli/pkg/timeline"
)

// Frame is one sampled instant. Values line up with Result.Columns; a track
// without keyframes yields an empty string.
type Frame struct {
	Index  int64
	Time   timecode.Timecode
	Values []string
}

// Result holds every frame sampled from one scene.
type Result struct {
	Scene   string
	Columns []string
	Frames  []Frame
}

// Sampler walks a scene tree and tweens every track at each frame.
type Sampler struct {
	Params config.SampleParams
	Log    zerolog.Logger
}

// NewSampler creates a sampler with the given parameters.
func NewSampler(params config.SampleParams, log zerolog.Logger) *Sampler {
	return &Sampler{Params: params, Log: log}
}

type column struct {
	name  string
	track string
	tl    *timeline.Timeline
}

// Sample tweens every track of scene at each frame. Tracks of child scenes
// appear as "child/track". Without a fixed frame count the range covers the
// scene's duration, end included.
func (s *Sampler) Sample(ctx context.Context, scene *scenario.Scene) (*Result, error) {
	cols := columns(scene)
	fr := scene.Timeline.Framerate()

	count := s.frameCount(scene.Duration)
	res := &Result{
		Scene:   scene.Name,
		Columns: make([]string, len(cols)),
		Frames:  make([]Frame, 0, count),
	}
	for i, c := range cols {
		res.Columns[i] = c.name
	}

	start := time.Now()
	for row := range count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		index := row * s.stride()
		at := s.frameTime(index, fr)
		scene.Seek(at)

		frame := Frame{Index: index, Time: at, Values: make([]string, len(cols))}
		for i, c := range cols {
			v, err := c.tl.Tween(c.track)
			switch {
			case errors.Is(err, timeline.ErrEmptySequence):
				continue
			case err != nil:
				return nil, fmt.Errorf("frame %d track %s: %w", index, c.name, err)
			}
			frame.Values[i] = fmt.Sprint(v)
		}
		res.Frames = append(res.Frames, frame)
	}

	s.Log.Debug().
		Str("scene", scene.Name).
		Int64("frames", count).
		Int("tracks", len(cols)).
		Dur("elapsed", time.Since(start)).
		Msg("Scene sampled")

	return res, nil
}

func (s *Sampler) stride() int64 {
	if s.Params.Stride < 1 {
		return 1
	}
	return int64(s.Params.Stride)
}

// perSecond is the number of frames in one second of fr. It reports false for
// timestamp rates and rates below one frame per second.
func perSecond(fr timecode.Framerate) (int64, bool) {
	if fps := int64(fr.FPS()); !fr.IsTimestamp() && fps > 0 {
		return fps, true
	}
	return 0, false
}

func (s *Sampler) fallbackStep() time.Duration {
	fps := s.Params.FallbackFPS
	if fps <= 0 {
		fps = 30
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameCount is the number of rows to emit for a scene of length d.
func (s *Sampler) frameCount(d timecode.Timecode) int64 {
	if s.Params.Frames > 0 {
		return int64(s.Params.Frames)
	}

	var total int64
	if fps, ok := perSecond(d.Framerate()); ok {
		total = d.AbsoluteSeconds()*fps + d.Frames()
	} else {
		total = int64(d.Duration() / s.fallbackStep())
	}
	return total/s.stride() + 1
}

// frameTime is the instant of frame index. Frame-based rates land exactly on
// the frame; the rest step by the fallback frame duration.
func (s *Sampler) frameTime(index int64, fr timecode.Framerate) timecode.Timecode {
	if _, ok := perSecond(fr); ok {
		return timecode.New(0, 0, 0, index, 0, fr)
	}
	return timecode.FromDuration(time.Duration(index)*s.fallbackStep(), fr)
}

func columns(scene *scenario.Scene) []column {
	var cols []column
	_ = scene.Walk(func(path []string, sc *scenario.Scene) error {
		prefix := strings.Join(path[1:], "/")
		for _, track := range sc.Tracks {
			name := track
			if prefix != "" {
				name = prefix + "/" + track
			}
			cols = append(cols, column{name: name, track: track, tl: sc.Timeline})
		}
		return nil
	})
	return cols
}
