package main

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/interpoli/internal/config"
	"github.com/ivlev/interpoli/internal/engine"
	"github.com/ivlev/interpoli/internal/output"
	"github.com/ivlev/interpoli/internal/scenario"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [scenario...]",
	Short: "Tween every track of the given scenarios frame by frame",
	Long: `Sample builds each scenario and prints the value of every track at
every frame. Without arguments the newest scenario in the scenario
directory is used.`,
	RunE: runSample,
}

func init() {
	f := sampleCmd.Flags()
	f.String("format", "table", "output format: table, csv or yaml")
	f.String("output-dir", "", "write one file per scenario into this directory")
	f.Int("frames", 0, "number of frames to sample (0: the whole scene)")
	f.Int("stride", 1, "sample every n-th frame")
	f.Float64("fallback-fps", 30, "sampling rate for timestamp scenes")
	f.Int("workers", 0, "scenarios sampled in parallel (default: number of CPUs)")
	f.String("rescan", "on-miss", "rescan policy: on-miss or always")
	f.Bool("stats", false, "print a performance report")
	f.String("benchmark-log", "", "append a one-line report to this file")

	bindFlag(f.Lookup("format"), config.KeyFormat)
	bindFlag(f.Lookup("output-dir"), config.KeyOutputDir)
	bindFlag(f.Lookup("frames"), config.KeyFrames)
	bindFlag(f.Lookup("stride"), config.KeyStride)
	bindFlag(f.Lookup("fallback-fps"), config.KeyFallbackFPS)
	bindFlag(f.Lookup("workers"), config.KeyWorkers)
	bindFlag(f.Lookup("rescan"), config.KeyRescan)
	bindFlag(f.Lookup("stats"), config.KeyShowStats)
	bindFlag(f.Lookup("benchmark-log"), config.KeyBenchmarkLog)
}

func runSample(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		latest, err := scenario.FindLatest(cfg.ScenarioDir)
		if err != nil {
			return err
		}
		logger.Info().Str("path", latest).Msg("Using latest scenario")
		paths = []string{latest}
	}

	w, err := output.New(cfg.Format)
	if err != nil {
		return err
	}

	project := engine.NewProject(cfg, w, logger, cmd.OutOrStdout())
	_, err = project.Run(cmd.Context(), paths)
	return err
}
