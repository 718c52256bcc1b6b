package timeline

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ivlev/interpoli/pkg/timecode"
)

// Handle identifies a sequence within one timeline.
type Handle uint64

// cursor is the playhead shared by Timeline and StaticTimeline.
type cursor struct {
	time timecode.Timecode
}

// Time returns the current cursor position.
func (c *cursor) Time() timecode.Timecode { return c.time }

func (c *cursor) Framerate() timecode.Framerate { return c.time.Framerate() }

func (c *cursor) AddDuration(d time.Duration) { c.time.AddDuration(d) }

func (c *cursor) SubDuration(d time.Duration) { c.time.SubDuration(d) }

func (c *cursor) SetDuration(d time.Duration) { c.time.SetDuration(d) }

func (c *cursor) AddTimecode(t timecode.Timecode) { c.time.AddTimecode(t) }

func (c *cursor) SubTimecode(t timecode.Timecode) { c.time.SubTimecode(t) }

func (c *cursor) SetTimecode(t timecode.Timecode) { c.time.SetTimecode(t) }

// Seek places the cursor exactly on t, renormalized at the cursor's
// framerate. Unlike SetTimecode it does not round-trip through nanoseconds.
func (c *cursor) Seek(t timecode.Timecode) { c.time = t.WithFramerate(c.time.Framerate()) }

// directory maps names to handles. Registering a name again hands out a
// fresh handle and the name follows it; the older handle stays valid.
type directory struct {
	names map[string]Handle
	next  Handle
}

func newDirectory() directory {
	return directory{names: make(map[string]Handle)}
}

func (d *directory) register(name string) (h Handle, shadowed bool) {
	_, shadowed = d.names[name]
	h = d.next
	d.next++
	d.names[name] = h
	return h, shadowed
}

func (d *directory) lookup(name string) (Handle, bool) {
	h, ok := d.names[name]
	return h, ok
}

func (d *directory) sorted() []string {
	out := make([]string, 0, len(d.names))
	for name := range d.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Option configures a timeline.
type Option func(*options)

type options struct {
	log    zerolog.Logger
	rescan RescanPolicy
}

func defaultOptions(opts []Option) options {
	o := options{log: zerolog.Nop(), rescan: RescanOnMiss}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for registration and lookup events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRescan sets the policy of sequences created on the timeline.
func WithRescan(p RescanPolicy) Option {
	return func(o *options) { o.rescan = p }
}
