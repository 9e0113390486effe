package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shardctl/internal/config"
	"shardctl/internal/discovery"
	"shardctl/internal/domain"
	"shardctl/internal/planning"
)

// ListCommand prints discovered identifiers
type ListCommand struct {
	*base
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := lc.loadConfig()
	if err != nil {
		return err
	}
	if err := lc.applyProfile(cfg); err != nil {
		return err
	}
	planner, table, err := lc.planner(cfg)
	if err != nil {
		return err
	}

	areas, err := listAreas(cfg, table, args)
	if err != nil {
		return err
	}

	filter := discovery.NewFilter()
	f := lc.formatter()
	for i, area := range areas {
		ids, err := planner.Discover(ctx, area)
		if err != nil {
			return err
		}

		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = string(id)
		}
		names = filter.FilterByName(names, cfg.Flags.Filter)

		kept := make([]domain.TestIdentifier, len(names))
		for i, n := range names {
			kept[i] = domain.TestIdentifier(n)
		}

		if i > 0 {
			fmt.Fprintln(lc.out)
		}
		f.PrintIdentifierTree(area.Label, kept)
	}
	return nil
}

// listAreas resolves what to discover: --root, the named areas, or every
// fan-out area.
func listAreas(cfg *config.Config, table *planning.Table, names []string) ([]config.Area, error) {
	if root := cfg.Flags.Root; root != "" {
		return []config.Area{{Label: root, Path: root}}, nil
	}

	if len(names) == 0 {
		areas := table.FanOutAreas()
		if len(areas) == 0 {
			return nil, fmt.Errorf("no fan-out areas configured; name an area or pass --root")
		}
		return areas, nil
	}

	areas := make([]config.Area, 0, len(names))
	for _, name := range names {
		area, ok := table.Area(name)
		if !ok {
			return nil, fmt.Errorf("unknown area %q", name)
		}
		areas = append(areas, area)
	}
	return areas, nil
}
