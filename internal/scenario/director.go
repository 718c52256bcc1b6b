package scenario

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
	"time"

	"github.com/ivlev/interpoli/pkg/timecode"
)

// Camera track names written by Director.
const (
	TrackCameraCenter = "camera.center"
	TrackCameraZoom   = "camera.zoom"
	TrackCameraFocus  = "camera.focus"
)

// Director generates camera path scenarios that visit regions of a page.
type Director struct {
	ViewportWidth  int
	ViewportHeight int
	MinDwell       time.Duration
	MaxDwell       time.Duration
	Intro          time.Duration
	Easing         string
}

// NewDirector creates a new Director with default settings
func NewDirector(viewportWidth, viewportHeight int) *Director {
	return &Director{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		MinDwell:       time.Second,
		MaxDwell:       3 * time.Second,
		Intro:          time.Second,
		Easing:         "inOutCubic",
	}
}

// GenerateScenario builds a document whose camera starts on the full view,
// visits every region in reading order and returns to the full view.
func (d *Director) GenerateScenario(name string, regions []image.Rectangle, total time.Duration, fr timecode.Framerate) (*Document, error) {
	if len(regions) == 0 {
		return nil, errors.New("no regions to visit")
	}

	sorted := d.sortRegions(regions)
	dwell := d.dwellTime(total, len(sorted))

	center := Track{Name: TrackCameraCenter, Type: TypePoint, Easing: d.Easing}
	zoom := Track{Name: TrackCameraZoom, Type: TypeScalar, Easing: d.Easing}
	focus := Track{Name: TrackCameraFocus, Type: TypeText}

	full := image.Rect(0, 0, d.ViewportWidth, d.ViewportHeight)
	add := func(at time.Duration, label string, rect image.Rectangle, z float64) error {
		tc := timecode.FromDuration(at, fr)
		c := d.center(rect)
		for _, kv := range []struct {
			track *Track
			value any
		}{
			{&center, []float64{float64(c.X), float64(c.Y)}},
			{&zoom, z},
			{&focus, label},
		} {
			k, err := NewKeyframe(tc, kv.value)
			if err != nil {
				return err
			}
			kv.track.Keyframes = append(kv.track.Keyframes, k)
		}
		return nil
	}

	if err := add(0, "full_view", full, 1); err != nil {
		return nil, err
	}

	at := d.Intro
	for i, r := range sorted {
		if err := add(at, fmt.Sprintf("region_%d", i+1), r, d.zoomFor(r)); err != nil {
			return nil, err
		}
		at += dwell
	}

	if err := add(at, "full_view", full, 1); err != nil {
		return nil, err
	}

	return &Document{
		Version:   Version,
		Name:      name,
		Framerate: Framerate{Mode: fr.Mode().String(), FPS: fr.FPS()},
		Duration:  timecode.FromDuration(at, fr).ClockString(),
		Tracks:    []Track{center, zoom, focus},
	}, nil
}

// sortRegions sorts regions in reading order (top-to-bottom, left-to-right)
func (d *Director) sortRegions(regions []image.Rectangle) []image.Rectangle {
	sorted := make([]image.Rectangle, len(regions))
	copy(sorted, regions)

	sort.SliceStable(sorted, func(i, j int) bool {
		// regions closer than this vertically share a row
		const threshold = 20

		yDiff := sorted[i].Min.Y - sorted[j].Min.Y
		if abs(yDiff) > threshold {
			return sorted[i].Min.Y < sorted[j].Min.Y
		}
		return sorted[i].Min.X < sorted[j].Min.X
	})

	return sorted
}

// dwellTime splits what is left after the intro and outro between regions.
func (d *Director) dwellTime(total time.Duration, count int) time.Duration {
	available := total - 2*d.Intro
	if available <= 0 {
		available = total
	}

	dwell := available / time.Duration(count)
	if dwell < d.MinDwell {
		dwell = d.MinDwell
	}
	if dwell > d.MaxDwell {
		dwell = d.MaxDwell
	}
	return dwell
}

// zoomFor fits the region into 90% of the viewport, clamped to [1, 3].
func (d *Director) zoomFor(r image.Rectangle) float64 {
	const padding = 0.9

	if r.Dx() == 0 || r.Dy() == 0 {
		return 1
	}

	scaleX := float64(d.ViewportWidth) * padding / float64(r.Dx())
	scaleY := float64(d.ViewportHeight) * padding / float64(r.Dy())

	return math.Max(1, math.Min(3, math.Min(scaleX, scaleY)))
}

func (d *Director) center(r image.Rectangle) image.Point {
	return image.Point{
		X: r.Min.X + r.Dx()/2,
		Y: r.Min.Y + r.Dy()/2,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
