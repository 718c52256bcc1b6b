package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/interpoli/internal/scenario"
	"github.com/ivlev/interpoli/pkg/timecode"
)

var newOpts struct {
	regions  string
	width    int
	height   int
	duration time.Duration
	mode     string
	fps      float64
	easing   string
	out      string
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Generate a camera path scenario that visits page regions",
	Long: `New writes a scenario whose camera starts on the full page, visits every
region in reading order and returns to the full page. Regions are given as
"x0,y0,x1,y1;x0,y0,x1,y1".`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	f := newCmd.Flags()
	f.StringVar(&newOpts.regions, "regions", "", "regions to visit, x0,y0,x1,y1 separated by ';'")
	f.IntVar(&newOpts.width, "width", 1280, "viewport width")
	f.IntVar(&newOpts.height, "height", 720, "viewport height")
	f.DurationVar(&newOpts.duration, "duration", 10*time.Second, "total length of the camera path")
	f.StringVar(&newOpts.mode, "mode", "fixed", "framerate mode: timestamp, fixed or interpolated")
	f.Float64Var(&newOpts.fps, "fps", 30, "frames per second")
	f.StringVar(&newOpts.easing, "easing", "inOutCubic", "easing of camera moves")
	f.StringVarP(&newOpts.out, "output", "o", "", "scenario path (default: timestamped file in the scenario directory)")
	_ = newCmd.MarkFlagRequired("regions")
}

func runNew(cmd *cobra.Command, args []string) error {
	regions, err := parseRegions(newOpts.regions)
	if err != nil {
		return err
	}

	mode, ok := timecode.ParseMode(newOpts.mode)
	if !ok {
		return fmt.Errorf("unknown framerate mode %q", newOpts.mode)
	}
	fr := timecode.NewFramerate(mode, newOpts.fps)

	if _, err := scenario.ParseEasing(newOpts.easing); err != nil {
		return err
	}

	d := scenario.NewDirector(newOpts.width, newOpts.height)
	d.Easing = newOpts.easing

	doc, err := d.GenerateScenario(args[0], regions, newOpts.duration, fr)
	if err != nil {
		return err
	}
	if err := scenario.Validate(doc); err != nil {
		return err
	}

	path := newOpts.out
	if path == "" {
		path = scenario.GeneratePath(cfg.ScenarioDir, args[0])
	}
	if err := scenario.Write(doc, path); err != nil {
		return err
	}

	logger.Info().Str("path", path).Int("regions", len(regions)).Msg("Scenario written")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
