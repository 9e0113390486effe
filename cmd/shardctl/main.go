package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shardctl/internal/cli"
	"shardctl/internal/cli/commands"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "shardctl",
		Short: "Sharded test-suite orchestrator for CI",
		Long: `Split a test suite into named areas assigned to shards, plan each shard
(fanning out areas into one group per discovered test), and run the groups
sequentially with continue-on-error semantics.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create flags struct (populated by command flags)
	var flags cli.Flags

	cmds := commands.NewCommands(&flags)
	cmds.Register(rootCmd, &flags)

	// Interrupts cancel the running group; the executor still writes the summary
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !cli.Silent(err) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
