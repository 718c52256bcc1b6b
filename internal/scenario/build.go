package scenario

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/interpoli/pkg/timecode"
	"github.com/ivlev/interpoli/pkg/timeline"
	"github.com/ivlev/interpoli/pkg/tween"
)

// Scene is a built document: its timeline plus the scenes of its children,
// whose timelines are registered as children of Timeline in the same order.
type Scene struct {
	Name     string
	Timeline *timeline.Timeline
	Tracks   []string
	Duration timecode.Timecode
	Children []*Scene
}

// Walk visits s and its descendants depth-first with the path of scene
// names leading to each.
func (s *Scene) Walk(fn func(path []string, s *Scene) error) error {
	return s.walk(nil, fn)
}

func (s *Scene) walk(parent []string, fn func([]string, *Scene) error) error {
	path := append(append([]string(nil), parent...), s.Name)
	if err := fn(path, s); err != nil {
		return err
	}
	for _, child := range s.Children {
		if err := child.walk(path, fn); err != nil {
			return err
		}
	}
	return nil
}

// Seek moves the cursor of every timeline in the scene tree to at. Timelines
// running at another framerate are moved to the same elapsed time.
func (s *Scene) Seek(at timecode.Timecode) {
	_ = s.Timeline.Walk(func(tl *timeline.Timeline) error {
		if tl.Framerate() == at.Framerate() {
			tl.Seek(at)
		} else {
			tl.SetDuration(at.Duration())
		}
		return nil
	})
}

// Build validates doc and turns it into a Scene. Every track value is
// wrapped in tween.Eased so the track's easing travels with its keyframes.
func Build(doc *Document, opts ...timeline.Option) (*Scene, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return build(doc, timecode.Timestamp(), opts)
}

func build(doc *Document, parent timecode.Framerate, opts []timeline.Option) (*Scene, error) {
	fr, err := doc.Framerate.Resolve(parent)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", doc.Name, err)
	}

	scene := &Scene{
		Name:     doc.Name,
		Timeline: timeline.New(fr, opts...),
		Duration: timecode.Zero(fr),
	}

	for _, tr := range doc.Tracks {
		last, err := addTrack(scene.Timeline, tr, fr)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", doc.Name, err)
		}
		scene.Tracks = append(scene.Tracks, tr.Name)
		if last.After(scene.Duration) {
			scene.Duration = last
		}
	}

	for i := range doc.Children {
		child, err := build(&doc.Children[i], fr, opts)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", doc.Name, err)
		}
		scene.Timeline.AddChild(child.Timeline)
		scene.Children = append(scene.Children, child)
		if child.Duration.After(scene.Duration) {
			scene.Duration = timecode.FromDuration(child.Duration.Duration(), fr)
		}
	}

	if doc.Duration != "" {
		d, err := timecode.Parse(doc.Duration, fr)
		if err != nil {
			return nil, fmt.Errorf("scene %q duration: %w", doc.Name, err)
		}
		scene.Duration = d
	}

	return scene, nil
}

// addTrack registers tr on tl and returns the instant of its last keyframe.
func addTrack(tl *timeline.Timeline, tr Track, fr timecode.Framerate) (timecode.Timecode, error) {
	curve, err := ParseEasing(tr.Easing)
	if err != nil {
		return timecode.Timecode{}, fmt.Errorf("track %q: %w", tr.Name, err)
	}

	switch tr.Type {
	case TypeScalar:
		return fill(tl, tr, fr, curve, decodeScalar)
	case TypePoint:
		return fill(tl, tr, fr, curve, decodePoint)
	case TypeAffine:
		return fill(tl, tr, fr, curve, decodeAffine)
	case TypeColor:
		return fill(tl, tr, fr, curve, decodeColor)
	case TypeHcl:
		return fill(tl, tr, fr, curve, decodeHcl)
	case TypeText:
		return fill(tl, tr, fr, curve, decodeText)
	default:
		return timecode.Timecode{}, fmt.Errorf("track %q: unknown type %q", tr.Name, tr.Type)
	}
}

func fill[T tween.Tweener[T]](
	tl *timeline.Timeline,
	tr Track,
	fr timecode.Framerate,
	curve tween.Easing,
	decode func(*yaml.Node) (T, error),
) (timecode.Timecode, error) {
	seq, _ := timeline.NewSequence[tween.Eased[T]](tl, tr.Name)
	last := timecode.Zero(fr)

	for i, k := range tr.Keyframes {
		at, err := timecode.Parse(k.At, fr)
		if err != nil {
			return last, fmt.Errorf("track %q keyframe %d: %w", tr.Name, i, err)
		}
		v, err := decode(&k.Value)
		if err != nil {
			return last, fmt.Errorf("track %q keyframe %d at %s: %w", tr.Name, i, k.At, err)
		}

		seq.AddKeyframe(timeline.Keyframe[tween.Eased[T]]{
			Value: tween.Eased[T]{Value: v, Curve: curve},
		}, at)
		if at.After(last) {
			last = at
		}
	}

	return last, nil
}

// ParseEasing accepts a catalogue name or cubicBezier(x1, y1, x2, y2).
func ParseEasing(name string) (tween.Easing, error) {
	name = strings.TrimSpace(name)
	if rest, ok := strings.CutPrefix(name, "cubicBezier("); ok {
		var x1, y1, x2, y2 float64
		args := strings.ReplaceAll(strings.TrimSuffix(rest, ")"), " ", "")
		if _, err := fmt.Sscanf(args, "%g,%g,%g,%g", &x1, &y1, &x2, &y2); err != nil {
			return tween.Easing{}, fmt.Errorf("easing %q: %w", name, err)
		}
		return tween.CubicBezier(x1, y1, x2, y2), nil
	}

	e, ok := tween.Lookup(name)
	if !ok {
		return tween.Easing{}, fmt.Errorf("unknown easing %q", name)
	}
	return e, nil
}

func decodeScalar(n *yaml.Node) (tween.Scalar, error) {
	var v float64
	if err := n.Decode(&v); err != nil {
		return 0, err
	}
	return tween.Scalar(v), nil
}

func decodeFloats(n *yaml.Node, want int) ([]float64, error) {
	var v []float64
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	if len(v) != want {
		return nil, fmt.Errorf("want %d numbers, got %d", want, len(v))
	}
	return v, nil
}

func decodePoint(n *yaml.Node) (tween.Point, error) {
	v, err := decodeFloats(n, 2)
	if err != nil {
		return tween.Point{}, err
	}
	return tween.Point{v[0], v[1]}, nil
}

func decodeAffine(n *yaml.Node) (tween.Affine, error) {
	v, err := decodeFloats(n, 6)
	if err != nil {
		return tween.Affine{}, err
	}
	var a tween.Affine
	copy(a[:], v)
	return a, nil
}

func decodeHex(n *yaml.Node) (colorful.Color, error) {
	var s string
	if err := n.Decode(&s); err != nil {
		return colorful.Color{}, err
	}
	return colorful.Hex(s)
}

func decodeColor(n *yaml.Node) (tween.Color, error) {
	c, err := decodeHex(n)
	return tween.Color(c), err
}

func decodeHcl(n *yaml.Node) (tween.HclColor, error) {
	c, err := decodeHex(n)
	return tween.HclColor(c), err
}

func decodeText(n *yaml.Node) (tween.Hold[string], error) {
	var s string
	if err := n.Decode(&s); err != nil {
		return tween.Hold[string]{}, err
	}
	return tween.Hold[string]{V: s}, nil
}
