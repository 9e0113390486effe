// Package logging builds the structured logger shared by the planner and the
// executor. Console output meant for humans stays in internal/ui.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLogLevel  = "SHARDCTL_LOG_LEVEL"
	EnvLogFormat = "SHARDCTL_LOG_FORMAT"
)

// Options controls logger construction
type Options struct {
	Verbose bool
	Level   string // overrides Verbose when set
	Format  string // "json" or "console"
}

// OptionsFromEnv fills Level and Format from the environment
func OptionsFromEnv(verbose bool) Options {
	return Options{
		Verbose: verbose,
		Level:   os.Getenv(EnvLogLevel),
		Format:  os.Getenv(EnvLogFormat),
	}
}

// New builds a production zap logger writing to stderr
func New(opts Options) (*zap.Logger, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func buildConfig(opts Options) (zap.Config, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if lvl, ok := parseLevel(opts.Level); ok {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	} else if strings.TrimSpace(opts.Level) != "" {
		return zap.Config{}, fmt.Errorf("unknown log level %q", opts.Level)
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "json":
	case "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		return zap.Config{}, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return cfg, nil
}

func parseLevel(raw string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "off", "disabled", "none":
		return zapcore.FatalLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}
