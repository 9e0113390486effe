package commands

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"shardctl/internal/cli"
	"shardctl/internal/config"
	"shardctl/internal/discovery"
	"shardctl/internal/envprofile"
	"shardctl/internal/planning"
	"shardctl/internal/ui"
)

// base holds what every command needs once flags are parsed
type base struct {
	flags  *cli.Flags
	logger *zap.Logger
	out    io.Writer
}

func newBase(flags *cli.Flags) *base {
	return &base{flags: flags, logger: zap.NewNop(), out: os.Stdout}
}

func (b *base) formatter() *ui.Formatter {
	return ui.NewFormatter(b.out)
}

func (b *base) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(b.flags.ConfigPath, b.flags.ToConfigFlags())
	if err != nil {
		return nil, err
	}
	b.logger.Debug("config loaded",
		zap.String("path", b.flags.ConfigPath),
		zap.Int("shards", cfg.ShardCount),
		zap.Int("areas", len(cfg.Areas)))
	return cfg, nil
}

// profile builds the environment profile. A relative env_file is resolved
// against the project path.
func (b *base) profile(cfg *config.Config) (*envprofile.Profile, error) {
	path := cfg.EnvFile
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ProjectPath, path)
	}
	return envprofile.FromFile(path, cfg.Env)
}

// applyProfile applies the environment profile to this process once, before
// planning, so the discovery tool and every group see the same variables.
func (b *base) applyProfile(cfg *config.Config) error {
	profile, err := b.profile(cfg)
	if err != nil {
		return err
	}
	if err := profile.Apply(); err != nil {
		return err
	}
	b.logger.Info("environment profile applied", zap.Strings("keys", profile.Keys()))
	return nil
}

// planner validates the shard table and wires the discovery backend.
func (b *base) planner(cfg *config.Config) (*planning.Planner, *planning.Table, error) {
	table := planning.NewTable(cfg.Areas, cfg.ShardCount)
	if err := table.Validate(); err != nil {
		return nil, nil, err
	}
	discoverer := discovery.NewDiscoverer(newLister(cfg), cfg.ProjectPath)
	return planning.NewPlanner(table, discoverer, cfg.SuiteName, b.logger), table, nil
}

// newLister uses the configured discovery command, or the filesystem scanner
// when none is set.
func newLister(cfg *config.Config) discovery.Lister {
	if len(cfg.Discovery.Command) == 0 {
		return discovery.NewScanner(cfg.Discovery.Ignore, discovery.NewParser(), cfg.ProjectPath)
	}
	return discovery.NewCommandLister(cfg.Discovery.Command, cfg.ProjectPath)
}

// selectorArg returns the positional selector, falling back to the CI
// environment variable.
func selectorArg(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.SelectorFromEnv()
}

func selectorName(selector int) string {
	if selector == planning.All {
		return "all"
	}
	return strconv.Itoa(selector)
}
