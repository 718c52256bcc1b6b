// Package scenario reads and writes YAML animation documents and builds
// timelines from them.
package scenario

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/interpoli/pkg/timecode"
)

// Version is written into new documents.
const Version = "1.0"

// Track value types.
const (
	TypeScalar = "scalar"
	TypePoint  = "point"
	TypeAffine = "affine"
	TypeColor  = "color"
	TypeHcl    = "hcl"
	TypeText   = "text"
)

// Document is one scene: a set of named tracks plus nested child scenes.
type Document struct {
	Version   string     `yaml:"version"`
	Name      string     `yaml:"name"`
	Framerate Framerate  `yaml:"framerate,omitempty"`
	Duration  string     `yaml:"duration,omitempty"`
	Tracks    []Track    `yaml:"tracks"`
	Children  []Document `yaml:"children,omitempty"`
}

// Framerate selects a timecode.Framerate. An empty mode inherits the
// parent scene's framerate.
type Framerate struct {
	Mode string  `yaml:"mode,omitempty"`
	FPS  float64 `yaml:"fps,omitempty"`
}

// Track is the keyframes of one property.
type Track struct {
	Name      string     `yaml:"name"`
	Type      string     `yaml:"type"`
	Easing    string     `yaml:"easing,omitempty"`
	Keyframes []Keyframe `yaml:"keyframes"`
}

// Keyframe holds its value undecoded until the track type is known.
type Keyframe struct {
	At    string    `yaml:"at"`
	Value yaml.Node `yaml:"value"`
}

// NewKeyframe encodes v as the keyframe value. Sequences are written in
// flow style.
func NewKeyframe(at timecode.Timecode, v any) (Keyframe, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return Keyframe{}, fmt.Errorf("encode keyframe value: %w", err)
	}
	if n.Kind == yaml.SequenceNode {
		n.Style = yaml.FlowStyle
	}
	return Keyframe{At: at.ClockString(), Value: n}, nil
}

// Resolve returns the framerate described by f, or parent when f is empty.
func (f Framerate) Resolve(parent timecode.Framerate) (timecode.Framerate, error) {
	if f.Mode == "" && f.FPS == 0 {
		return parent, nil
	}

	mode, ok := timecode.ParseMode(f.Mode)
	if !ok {
		return timecode.Framerate{}, fmt.Errorf("unknown framerate mode %q", f.Mode)
	}
	if mode != timecode.ModeTimestamp && f.FPS <= 0 {
		return timecode.Framerate{}, fmt.Errorf("framerate %s needs a positive fps, got %v", f.Mode, f.FPS)
	}
	// Frames carry at int(fps); a fractional rate would drift on conversion.
	if mode != timecode.ModeTimestamp && f.FPS != math.Trunc(f.FPS) {
		return timecode.Framerate{}, fmt.Errorf("framerate %s needs a whole fps, got %v", f.Mode, f.FPS)
	}
	return timecode.NewFramerate(mode, f.FPS), nil
}
