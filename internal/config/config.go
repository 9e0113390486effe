package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `toml:"project_path" yaml:"project_path"`
	SuiteName   string `toml:"suite_name" yaml:"suite_name"`

	// Output settings
	ResultsDir string `toml:"results_dir" yaml:"results_dir"`
	ResultsDSN string `toml:"results_dsn" yaml:"results_dsn"`

	// Sharding
	ShardCount int    `toml:"shard_count" yaml:"shard_count"`
	Areas      []Area `toml:"areas" yaml:"areas"`

	// Environment profile extensions
	EnvFile string            `toml:"env_file" yaml:"env_file"`
	Env     map[string]string `toml:"env" yaml:"env"`

	Runner    RunnerConfig    `toml:"runner" yaml:"runner"`
	Discovery DiscoveryConfig `toml:"discovery" yaml:"discovery"`

	// Command flags
	Flags Flags `toml:"-" yaml:"-"`
}

// Area is one functional area of the suite and the shard it belongs to
type Area struct {
	Label  string `toml:"label" yaml:"label"`
	Path   string `toml:"path" yaml:"path"`
	Shard  int    `toml:"shard" yaml:"shard"`
	FanOut bool   `toml:"fan_out" yaml:"fan_out"`
}

// RunnerConfig describes how one group is executed
type RunnerConfig struct {
	Command       []string `toml:"command" yaml:"command"`
	FailExitCodes []int    `toml:"fail_exit_codes" yaml:"fail_exit_codes"`
}

// DiscoveryConfig describes how fan-out areas are listed. An empty command
// switches to the filesystem scanner.
type DiscoveryConfig struct {
	Command []string `toml:"command" yaml:"command"`
	Ignore  []string `toml:"ignore" yaml:"ignore"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigPath string
	Filter     string
	OnlyFailed bool
	Progress   bool
	ResultsDSN string
	Verbose    bool
	Check      bool
	Rebalance  int
	Root       string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		SuiteName:   DefaultSuiteName,
		ResultsDir:  DefaultResultsDir,
		ShardCount:  DefaultShardCount,
		Env:         map[string]string{},
		Flags:       Flags{ConfigPath: DefaultConfigFile},
	}
	cfg.Runner.Command = append([]string(nil), DefaultRunnerCommand...)
	cfg.Runner.FailExitCodes = append([]int(nil), DefaultFailExitCodes...)
	cfg.Discovery.Command = append([]string(nil), DefaultDiscoveryCommand...)
	cfg.Discovery.Ignore = append([]string(nil), DefaultPathsToIgnore...)
	return cfg
}

// Validate checks the settings that do not depend on the shard table
func (c *Config) Validate() error {
	var problems []string
	if len(c.Runner.Command) == 0 {
		problems = append(problems, "runner.command must not be empty")
	}
	if c.ShardCount <= 0 {
		problems = append(problems, fmt.Sprintf("shard_count must be positive, got %d", c.ShardCount))
	}
	if len(c.Areas) == 0 {
		problems = append(problems, "no areas configured")
	}
	if strings.TrimSpace(c.SuiteName) == "" {
		problems = append(problems, "suite_name must not be empty")
	} else if err := CheckLabel(c.SuiteName); err != nil {
		problems = append(problems, fmt.Sprintf("suite_name %v", err))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// GetResultsDir returns the directory receiving result files and group logs
func (c *Config) GetResultsDir() string {
	p := filepath.Join(c.ProjectPath, c.ResultsDir)
	if filepath.IsAbs(c.ResultsDir) {
		p = c.ResultsDir
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetOutputPath returns the JSON results file for a selector ("all" or a shard index),
// so sibling shards sharing a workspace never overwrite each other.
func (c *Config) GetOutputPath(selector string) string {
	if selector == "" {
		selector = "all"
	}
	return filepath.Join(c.GetResultsDir(), fmt.Sprintf("shard-results-%s.json", selector))
}

// GetResultsDSN returns the SQL results DSN: flag, then config file, then environment.
func (c *Config) GetResultsDSN() string {
	if c.Flags.ResultsDSN != "" {
		return c.Flags.ResultsDSN
	}
	if c.ResultsDSN != "" {
		return c.ResultsDSN
	}
	return os.Getenv(EnvResultsDSN)
}

// SelectorFromEnv returns the shard selector set by the CI scheduler, if any
func (c *Config) SelectorFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvShardIndex))
}
