package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"shardctl/internal/storage"
	"shardctl/internal/ui"
)

// FaillsCommand opens the failed-groups viewer
type FaillsCommand struct {
	*base

	// newViewer builds the viewer; tests replace it
	newViewer func(saver ui.ResultSaver, selector string) ui.Viewer
}

// Execute runs the command
func (fc *FaillsCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := fc.loadConfig()
	if err != nil {
		return err
	}
	planner, _, err := fc.planner(cfg)
	if err != nil {
		return err
	}
	selector, err := planner.ParseSelector(selectorArg(cfg, args))
	if err != nil {
		return err
	}
	name := selectorName(selector)

	jsonStorage := storage.NewJSONStorage(cfg)
	results, err := jsonStorage.Load(name)
	if err != nil {
		return fmt.Errorf("no saved results for shard %s (run 'shardctl run' first): %w", name, err)
	}
	return fc.viewer(jsonStorage, name).View(results)
}

func (fc *FaillsCommand) viewer(saver ui.ResultSaver, selector string) ui.Viewer {
	if fc.newViewer != nil {
		return fc.newViewer(saver, selector)
	}
	return ui.NewErrorViewer(saver, selector)
}
