package cli

import "shardctl/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigPath string
	Verbose    bool
	Filter     string
	OnlyFailed bool
	Progress   bool
	ResultsDSN string
	Check      bool
	Rebalance  int
	Root       string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigPath: f.ConfigPath,
		Filter:     f.Filter,
		OnlyFailed: f.OnlyFailed,
		Progress:   f.Progress,
		ResultsDSN: f.ResultsDSN,
		Verbose:    f.Verbose,
		Check:      f.Check,
		Rebalance:  f.Rebalance,
		Root:       f.Root,
	}
}
