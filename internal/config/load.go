package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the config file at path over the defaults and validates it.
// The format is chosen by extension: .toml, .yaml or .yml.
func Load(path string, flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.Flags = flags
	cfg.Flags.ConfigPath = path
	if cfg.ShardCount == 0 {
		cfg.ShardCount = highestShard(cfg.Areas)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Op: "load", Path: path, Err: err}
	}

	// Zero the sharding fields so a file never merges with defaults there
	c.ShardCount = 0
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return &LoadError{Op: "parse", Path: path, Err: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return &LoadError{Op: "parse", Path: path, Err: err}
		}
	default:
		return &LoadError{Op: "load", Path: path, Err: fmt.Errorf("unsupported extension %q", ext)}
	}

	if c.Env == nil {
		c.Env = map[string]string{}
	}
	return nil
}

func highestShard(areas []Area) int {
	highest := 0
	for _, a := range areas {
		if a.Shard > highest {
			highest = a.Shard
		}
	}
	return highest
}
