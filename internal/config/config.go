package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Run     RunConfig     `yaml:"run"`
	Trace   TraceConfig   `yaml:"trace"`
	Report  ReportConfig  `yaml:"report"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	File   string `yaml:"file"`
}

// RunConfig controls the godog runner that drives step contexts.
type RunConfig struct {
	Paths       []string `yaml:"paths"`
	Format      string   `yaml:"format"`
	Tags        string   `yaml:"tags"`
	Strict      *bool    `yaml:"strict"` // pointer to distinguish unset from false
	Concurrency int      `yaml:"concurrency"`
	NoColors    bool     `yaml:"no_colors"`
}

type TraceConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Database string `yaml:"database"`
}

type ReportConfig struct {
	Format string `yaml:"format"` // "markdown", "html" or "terminal"
	Output string `yaml:"output"` // empty means stdout
}

// Load reads a YAML configuration file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", "", "failed to read config file "+path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", "", "failed to parse config file "+path, err)
	}

	return cfg, nil
}
