package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config keys, also the names accepted in interpoli.yaml and as
// INTERPOLI_* environment variables.
const (
	KeyScenarioDir  = "scenarioDir"
	KeyOutputDir    = "outputDir"
	KeyFormat       = "format"
	KeyFrames       = "frames"
	KeyStride       = "stride"
	KeyFallbackFPS  = "fallbackFps"
	KeyWorkers      = "workers"
	KeyRescan       = "rescan"
	KeyLogLevel     = "logLevel"
	KeyLogFormat    = "logFormat"
	KeyShowStats    = "showStats"
	KeyBenchmarkLog = "benchmarkLog"
)

type Config struct {
	ScenarioDir  string  `mapstructure:"scenarioDir"`
	OutputDir    string  `mapstructure:"outputDir"`
	Format       string  `mapstructure:"format"`
	Frames       int     `mapstructure:"frames"`
	Stride       int     `mapstructure:"stride"`
	FallbackFPS  float64 `mapstructure:"fallbackFps"`
	Workers      int     `mapstructure:"workers"`
	Rescan       string  `mapstructure:"rescan"`
	LogLevel     string  `mapstructure:"logLevel"`
	LogFormat    string  `mapstructure:"logFormat"`
	ShowStats    bool    `mapstructure:"showStats"`
	BenchmarkLog string  `mapstructure:"benchmarkLog"`
	BuildVersion string  `mapstructure:"-"`
}

// SampleParams is the part of Config a sampler needs for one scene.
type SampleParams struct {
	Frames      int
	Stride      int
	FallbackFPS float64
}

func (c *Config) SampleParams() SampleParams {
	return SampleParams{
		Frames:      c.Frames,
		Stride:      c.Stride,
		FallbackFPS: c.FallbackFPS,
	}
}

// New returns a viper instance with every default set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyScenarioDir, "scenarios")
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyFormat, "table")
	v.SetDefault(KeyFrames, 0)
	v.SetDefault(KeyStride, 1)
	v.SetDefault(KeyFallbackFPS, 30.0)
	v.SetDefault(KeyWorkers, runtime.NumCPU())
	v.SetDefault(KeyRescan, "on-miss")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyShowStats, false)
	v.SetDefault(KeyBenchmarkLog, "")

	v.SetEnvPrefix("interpoli")
	v.AutomaticEnv()

	return v
}

// Load reads path into v. With an empty path, interpoli.yaml is looked up in
// the working directory and a missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("interpoli")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that have a fixed set of choices or a lower bound.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Format) {
	case "table", "csv", "yaml":
	default:
		errs = append(errs, fmt.Errorf("format %q: want table, csv or yaml", c.Format))
	}
	switch c.Rescan {
	case "", "on-miss", "always":
	default:
		errs = append(errs, fmt.Errorf("rescan %q: want on-miss or always", c.Rescan))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Frames))
	}
	if c.Stride < 1 {
		errs = append(errs, fmt.Errorf("stride must be at least 1, got %d", c.Stride))
	}
	if c.FallbackFPS <= 0 {
		errs = append(errs, fmt.Errorf("fallbackFps must be positive, got %v", c.FallbackFPS))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
