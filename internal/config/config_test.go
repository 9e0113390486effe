package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_GetResultsDir(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "relative to project",
			config:   &Config{ProjectPath: "/project", ResultsDir: "build/pytest-results"},
			expected: "/project/build/pytest-results",
		},
		{
			name:     "absolute results dir",
			config:   &Config{ProjectPath: "/project", ResultsDir: "/tmp/results"},
			expected: "/tmp/results",
		},
		{
			name:     "cleaned",
			config:   &Config{ProjectPath: "/project/", ResultsDir: "./out/../results"},
			expected: "/project/results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetResultsDir()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := &Config{ProjectPath: "/project", ResultsDir: "build/results"}

	assert.Equal(t, "/project/build/results/shard-results-2.json", cfg.GetOutputPath("2"))
	assert.Equal(t, "/project/build/results/shard-results-all.json", cfg.GetOutputPath(""))
}

func TestConfig_GetResultsDSN(t *testing.T) {
	t.Setenv(EnvResultsDSN, "env-dsn")

	cfg := New()
	assert.Equal(t, "env-dsn", cfg.GetResultsDSN())

	cfg.ResultsDSN = "file-dsn"
	assert.Equal(t, "file-dsn", cfg.GetResultsDSN())

	cfg.Flags.ResultsDSN = "flag-dsn"
	assert.Equal(t, "flag-dsn", cfg.GetResultsDSN())
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if len(cfg.Discovery.Ignore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.Discovery.Ignore))
	}

	// Defaults must be copies
	cfg.Runner.Command[0] = "changed"
	if DefaultRunnerCommand[0] == "changed" {
		t.Error("runner command default was mutated through the config")
	}
}

const tomlConfig = `
suite_name = "ci"
results_dir = "out"
shard_count = 2

[env]
TVM_NUM_THREADS = "2"

[runner]
command = ["pytest", "{target}"]
fail_exit_codes = [1, 5]

[[areas]]
label = "integration"
path = "tests/integration"
shard = 1

[[areas]]
label = "onnx"
path = "tests/frontend/onnx"
shard = 2
fan_out = true
`

const yamlConfig = `
suite_name: ci
results_dir: out
env:
  TVM_NUM_THREADS: "2"
runner:
  command: ["pytest", "{target}"]
  fail_exit_codes: [1, 5]
areas:
  - label: integration
    path: tests/integration
    shard: 1
  - label: onnx
    path: tests/frontend/onnx
    shard: 2
    fan_out: true
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "toml", file: "shardctl.toml", content: tomlConfig},
		{name: "yaml", file: "shardctl.yaml", content: yamlConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := Load(path, Flags{Filter: "*onnx*"})
			require.NoError(t, err)

			assert.Equal(t, "ci", cfg.SuiteName)
			assert.Equal(t, "out", cfg.ResultsDir)
			assert.Equal(t, 2, cfg.ShardCount)
			assert.Equal(t, []string{"pytest", "{target}"}, cfg.Runner.Command)
			assert.Equal(t, []int{1, 5}, cfg.Runner.FailExitCodes)
			assert.Equal(t, DefaultDiscoveryCommand, cfg.Discovery.Command)
			assert.Equal(t, map[string]string{"TVM_NUM_THREADS": "2"}, cfg.Env)
			assert.Equal(t, []Area{
				{Label: "integration", Path: "tests/integration", Shard: 1},
				{Label: "onnx", Path: "tests/frontend/onnx", Shard: 2, FanOut: true},
			}, cfg.Areas)
			assert.Equal(t, "*onnx*", cfg.Flags.Filter)
			assert.Equal(t, path, cfg.Flags.ConfigPath)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.toml"), Flags{})
		assert.ErrorContains(t, err, "config load failed")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "shardctl.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
		_, err := Load(path, Flags{})
		assert.ErrorContains(t, err, "unsupported extension")
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("shard_count = ["), 0644))
		_, err := Load(path, Flags{})
		assert.ErrorContains(t, err, "config parse failed")
	})

	t.Run("no areas", func(t *testing.T) {
		path := filepath.Join(dir, "empty.toml")
		require.NoError(t, os.WriteFile(path, []byte(`suite_name = "ci"`), 0644))
		_, err := Load(path, Flags{})
		assert.ErrorContains(t, err, "no areas configured")
		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
	})

	t.Run("suite name with separator", func(t *testing.T) {
		path := filepath.Join(dir, "slash.toml")
		body := "suite_name = \"ci/nightly\"\n[[areas]]\nlabel = \"relay\"\npath = \"tests/relay\"\nshard = 1\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := Load(path, Flags{})
		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, []string{`suite_name "ci/nightly" contains '/'`}, validationErr.Problems)
	})

	t.Run("read and decode failures are typed", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"), Flags{})
		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, "load", loadErr.Op)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestCheckLabel(t *testing.T) {
	for _, ok := range []string{"relay", "ops-1", "python_te.v2"} {
		assert.NoError(t, CheckLabel(ok), ok)
	}
	for _, bad := range []string{"a/b", `a\b`, "a:b", "a b", "a\tb"} {
		assert.Error(t, CheckLabel(bad), bad)
	}
}

func TestConfig_SelectorFromEnv(t *testing.T) {
	t.Setenv(EnvShardIndex, " 2 ")
	assert.Equal(t, "2", New().SelectorFromEnv())
}
