// Package main provides the interpoli CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ivlev/interpoli/internal/config"
	"github.com/ivlev/interpoli/internal/logging"
)

// buildVersion is set with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

var (
	// configFile is set by the --config flag.
	configFile string

	v      = config.New()
	cfg    *config.Config
	logger = zerolog.Nop()
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "interpoli",
	Short: "Keyframe animation sampler",
	Long: `interpoli builds keyframe timelines from YAML scenarios and samples
the tweened value of every track frame by frame.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default: ./interpoli.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error, off")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("scenario-dir", "scenarios", "directory searched for the latest scenario")
	bindFlag(pf.Lookup("log-level"), config.KeyLogLevel)
	bindFlag(pf.Lookup("log-format"), config.KeyLogFormat)
	bindFlag(pf.Lookup("scenario-dir"), config.KeyScenarioDir)

	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file, applies flags and sets up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	c, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	c.BuildVersion = buildVersion

	cfg = c
	logger = logging.New(c.LogLevel, c.LogFormat, cmd.ErrOrStderr())
	logger.Debug().Str("config", v.ConfigFileUsed()).Msg("Configuration loaded")
	return nil
}
