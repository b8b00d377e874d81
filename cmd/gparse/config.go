package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dhamidi/gparse/parse"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".gparse.yaml"

// Config holds defaults for the parse and check commands. Command line
// flags override it.
type Config struct {
	MaxDepth  int           `yaml:"max-depth"`
	Lazy      bool          `yaml:"lazy"`
	Format    string        `yaml:"format"`
	Jobs      int           `yaml:"jobs"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheSize int           `yaml:"cache-size"`
	// Include is the glob used when check is given a directory.
	Include string `yaml:"include"`
}

func defaultConfig() *Config {
	return &Config{
		MaxDepth:  parse.DefaultMaxDepth,
		Format:    "tree",
		Jobs:      runtime.NumCPU(),
		Timeout:   10 * time.Second,
		CacheSize: parse.DefaultBlockCacheSize,
		Include:   "**/*.{groovy,gradle}",
	}
}

// loadConfig reads path over the defaults. An empty path means the default
// config file, which may be absent.
func loadConfig(path string) (Config, error) {
	cfg := *defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Format {
	case "tree", "json", "lines", "shape":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max-depth must be positive, got %d", c.MaxDepth)
	}
	if c.Jobs <= 0 {
		c.Jobs = 1
	}
	return nil
}

// bindFlags registers the shared parser flags. Their values only replace
// the config when set on the command line.
func (c *Config) bindFlags(flags *pflag.FlagSet) *Config {
	over := *c
	flags.IntVar(&over.MaxDepth, "max-depth", c.MaxDepth, "maximum rule nesting depth")
	flags.BoolVar(&over.Lazy, "lazy", c.Lazy, "capture method bodies and closures without parsing them")
	return &over
}

// merge copies the values of changed flags from over into c.
func (c *Config) merge(flags *pflag.FlagSet, over *Config) {
	if flags.Changed("max-depth") {
		c.MaxDepth = over.MaxDepth
	}
	if flags.Changed("lazy") {
		c.Lazy = over.Lazy
	}
	if flags.Changed("format") {
		c.Format = over.Format
	}
	if flags.Changed("jobs") {
		c.Jobs = over.Jobs
	}
	if flags.Changed("timeout") {
		c.Timeout = over.Timeout
	}
}

func (c *Config) options(file string) []parse.Option {
	opts := []parse.Option{parse.WithFile(file), parse.WithMaxDepth(c.MaxDepth)}
	if c.Lazy {
		opts = append(opts, parse.WithLazyBlocks())
	}
	return opts
}
