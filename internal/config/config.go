package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/23skdu/longbow-bullet/internal/weights"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInputPath = "bin/quantised.bin"
	DefaultOutputDir = "output"
	ArrowFile        = "NN_weights.arrow"
)

type Topology struct {
	InputSize    int `yaml:"input_size"`
	HiddenSize   int `yaml:"hidden_size"`
	OutputSize   int `yaml:"output_size"`
	Perspectives int `yaml:"perspectives"`
}

type Config struct {
	InputPath string   `yaml:"input"`
	OutputDir string   `yaml:"output_dir"`
	Topology  Topology `yaml:"topology"`

	// Strict fails the run on any size mismatch instead of trimming.
	Strict bool `yaml:"strict"`

	ArrowExport bool   `yaml:"arrow"`
	MetricsFile string `yaml:"metrics_file"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func Default() Config {
	t := weights.DefaultTopology()
	return Config{
		InputPath: DefaultInputPath,
		OutputDir: DefaultOutputDir,
		Topology: Topology{
			InputSize:    t.InputSize,
			HiddenSize:   t.HiddenSize,
			OutputSize:   t.OutputSize,
			Perspectives: t.Perspectives,
		},
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads a YAML config file on top of Default. Keys missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("invalid input: path must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("invalid output_dir: path must not be empty")
	}
	if err := c.WeightTopology().Validate(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log_format: %q (must be console or json)", c.LogFormat)
	}
	return nil
}

func (c *Config) WeightTopology() weights.Topology {
	return weights.Topology{
		InputSize:    c.Topology.InputSize,
		HiddenSize:   c.Topology.HiddenSize,
		OutputSize:   c.Topology.OutputSize,
		Perspectives: c.Topology.Perspectives,
	}
}

func (c *Config) Policy() weights.Policy {
	if c.Strict {
		return weights.PolicyStrict
	}
	return weights.PolicyLenient
}
