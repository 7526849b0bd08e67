package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/sprucehealth/gqlast/language/parser"
	"github.com/sprucehealth/gqlast/language/printer"
)

const configFileName = ".gqlfmt.yaml"

// Document kinds accepted by --mode.
const (
	modeAuto   = "auto"
	modeSchema = "schema"
	modeQuery  = "query"
)

// Config is the content of the config file. Command line flags override it.
type Config struct {
	printer.Options `yaml:",inline"`
	Mode            string   `yaml:"mode"`
	MaxDepth        int      `yaml:"max_depth"`
	Jobs            int      `yaml:"jobs"`
	Include         []string `yaml:"include"`
	Exclude         []string `yaml:"exclude"`
}

func defaultConfig() *Config {
	return &Config{
		Options:  printer.DefaultOptions(),
		Mode:     modeAuto,
		MaxDepth: parser.DefaultMaxDepth,
		Jobs:     4,
		Include:  []string{"**/*.graphql", "**/*.graphqls", "**/*.gql"},
	}
}

// loadConfig reads the config at path over the defaults. An empty path
// looks for configFileName in the working directory and falls back to the
// defaults when there is none.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = configFileName
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	log.WithField("path", path).Debug("Loaded config")
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case modeAuto, modeSchema, modeQuery:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be positive, got %d", c.Jobs)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	for _, pattern := range append(c.Include, c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob %q", pattern)
		}
	}
	return nil
}
