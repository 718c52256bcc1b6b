// Package engine runs batches of scenarios through the sampler.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/interpoli/internal/config"
	"github.com/ivlev/interpoli/internal/output"
	"github.com/ivlev/interpoli/internal/renderer"
	"github.com/ivlev/interpoli/internal/scenario"
	"github.com/ivlev/interpoli/internal/system"
	"github.com/ivlev/interpoli/pkg/timeline"
)

// Project samples a batch of scenario files. Each scene owns its timelines,
// so scenes are sampled in parallel without sharing state.
type Project struct {
	Config *config.Config
	Writer output.Writer
	Log    zerolog.Logger
	// Out receives results when Config.OutputDir is empty, and the stats report.
	Out io.Writer
}

func NewProject(cfg *config.Config, w output.Writer, log zerolog.Logger, out io.Writer) *Project {
	return &Project{
		Config: cfg,
		Writer: w,
		Log:    log,
		Out:    out,
	}
}

// Report summarises one Run.
type Report struct {
	Scenes   int
	Frames   int64
	Values   int64
	Outputs  []string
	Load     time.Duration
	Sampling time.Duration
	Writing  time.Duration
	Total    time.Duration
	RSS      uint64
}

// FramesPerSecond is the sampling throughput over the whole run.
func (r *Report) FramesPerSecond() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Total.Seconds()
}

func (r *Report) String() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Scenes: %d\n"+
			"Frames: %s\n"+
			"Values: %s\n"+
			"Total Time: %.3fs\n"+
			"Loading: %.3fs\n"+
			"Sampling: %.3fs\n"+
			"Writing: %.3fs\n"+
			"Effective FPS: %.2f\n"+
			"Memory (RSS): %s\n"+
			"----------------------------\n",
		r.Scenes, humanize.Comma(r.Frames), humanize.Comma(r.Values),
		r.Total.Seconds(), r.Load.Seconds(), r.Sampling.Seconds(), r.Writing.Seconds(),
		r.FramesPerSecond(), humanize.Bytes(r.RSS),
	)
}

// Run loads every scenario in paths, samples them concurrently and writes
// the results in the order of paths.
func (p *Project) Run(ctx context.Context, paths []string) (*Report, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenarios to sample")
	}

	startTime := time.Now()
	report := &Report{Scenes: len(paths)}

	scenes, err := p.load(paths)
	if err != nil {
		return nil, err
	}
	report.Load = time.Since(startTime)

	samplingStart := time.Now()
	results, err := p.sample(ctx, scenes)
	if err != nil {
		return nil, err
	}
	report.Sampling = time.Since(samplingStart)

	for _, res := range results {
		report.Frames += int64(len(res.Frames))
		report.Values += int64(len(res.Frames) * len(res.Columns))
	}

	writingStart := time.Now()
	report.Outputs, err = p.write(results)
	if err != nil {
		return nil, err
	}
	report.Writing = time.Since(writingStart)
	report.Total = time.Since(startTime)

	if mem, err := system.ProcessMemory(); err == nil {
		report.RSS = mem.RSS
	} else {
		p.Log.Warn().Err(err).Msg("Process memory unavailable")
	}

	p.Log.Info().
		Int("scenes", report.Scenes).
		Int64("frames", report.Frames).
		Dur("total", report.Total).
		Msg("Sampling finished")

	if p.Config.ShowStats {
		fmt.Fprint(p.Out, report)
	}
	if p.Config.BenchmarkLog != "" {
		if err := p.appendBenchmark(paths, report); err != nil {
			p.Log.Warn().Err(err).Str("path", p.Config.BenchmarkLog).Msg("Failed to write benchmark log")
		}
	}

	return report, nil
}

func (p *Project) load(paths []string) ([]*scenario.Scene, error) {
	policy, ok := timeline.ParseRescanPolicy(p.Config.Rescan)
	if !ok {
		return nil, fmt.Errorf("unknown rescan policy %q", p.Config.Rescan)
	}

	scenes := make([]*scenario.Scene, len(paths))
	for i, path := range paths {
		doc, err := scenario.Read(path)
		if err != nil {
			return nil, fmt.Errorf("error reading scenario: %w", err)
		}

		scene, err := scenario.Build(doc,
			timeline.WithLogger(p.Log.With().Str("scene", doc.Name).Logger()),
			timeline.WithRescan(policy),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		p.Log.Debug().
			Str("path", path).
			Str("scene", scene.Name).
			Str("duration", scene.Duration.ClockString()).
			Msg("Scenario loaded")
		scenes[i] = scene
	}
	return scenes, nil
}

func (p *Project) sample(ctx context.Context, scenes []*scenario.Scene) ([]*renderer.Result, error) {
	results := make([]*renderer.Result, len(scenes))
	sampler := renderer.NewSampler(p.Config.SampleParams(), p.Log)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.Config.Workers, 1))

	for i, scene := range scenes {
		g.Go(func() error {
			res, err := sampler.Sample(ctx, scene)
			if err != nil {
				return fmt.Errorf("scene %q: %w", scene.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// write sends every result to Out, or to its own timestamped file when
// OutputDir is set. It returns the files written.
func (p *Project) write(results []*renderer.Result) ([]string, error) {
	if p.Config.OutputDir == "" {
		for _, res := range results {
			if err := p.Writer.Write(p.Out, res); err != nil {
				return nil, fmt.Errorf("write %s: %w", res.Scene, err)
			}
		}
		return nil, nil
	}

	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return nil, err
	}

	now := time.Now()
	paths := make([]string, 0, len(results))
	for i, res := range results {
		name := fmt.Sprintf("%s_%d", res.Scene, i+1)
		path := system.TimestampedPath(p.Config.OutputDir, name, p.Writer.Ext(), now)
		if err := p.writeFile(path, res); err != nil {
			return nil, err
		}
		p.Log.Info().Str("path", path).Msg("Samples written")
		paths = append(paths, path)
	}
	return paths, nil
}

func (p *Project) writeFile(path string, res *renderer.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.Writer.Write(f, res); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func (p *Project) appendBenchmark(paths []string, r *Report) error {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}

	entry := fmt.Sprintf("[%s] Build: %s | Input: %s | Scenes: %d | Frames: %d | Total: %.3fs | Sampling: %.3fs | FPS: %.2f | RSS: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		strings.Join(names, ","),
		r.Scenes,
		r.Frames,
		r.Total.Seconds(),
		r.Sampling.Seconds(),
		r.FramesPerSecond(),
		humanize.Bytes(r.RSS),
	)

	f, err := os.OpenFile(p.Config.BenchmarkLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
