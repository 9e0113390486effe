package commands

import (
	"github.com/spf13/cobra"

	"shardctl/internal/cli"
	"shardctl/internal/config"
	"shardctl/internal/logging"
)

// Commands holds all CLI commands
type Commands struct {
	base *base

	Run    *RunCommand
	Plan   *PlanCommand
	List   *ListCommand
	Env    *EnvCommand
	Faills *FaillsCommand
}

// NewCommands creates all commands sharing flags
func NewCommands(flags *cli.Flags) *Commands {
	b := newBase(flags)
	return &Commands{
		base:   b,
		Run:    &RunCommand{base: b},
		Plan:   &PlanCommand{base: b},
		List:   &ListCommand{base: b},
		Env:    &EnvCommand{base: b},
		Faills: &FaillsCommand{base: b},
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", config.DefaultConfigFile, "Shard table config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(logging.OptionsFromEnv(flags.Verbose))
		if err != nil {
			return err
		}
		c.base.logger = logger
		c.base.out = cmd.OutOrStdout()
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = c.base.logger.Sync()
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [shard]",
		Short: "Run the groups of one shard, or of every shard",
		Long: "Plan the selected shard (or every shard when none is given) and run each group sequentially.\n" +
			"A failing group does not stop the run; the exit status is non-zero if any group did not pass.\n" +
			"Without an argument the shard is taken from " + config.EnvShardIndex + ".",
		Args: cobra.MaximumNArgs(1),
		RunE: c.Run.Execute,
	}
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Run only groups whose label or target matches the pattern (supports wildcards, e.g. '*relay*')")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only groups that did not pass in the last saved run of the same shard")
	runCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
	runCmd.Flags().StringVar(&flags.ResultsDSN, "results-dsn", "", "MySQL DSN receiving one row per group (overrides "+config.EnvResultsDSN+")")
	rootCmd.AddCommand(runCmd)

	// Plan command
	planCmd := &cobra.Command{
		Use:   "plan [shard]",
		Short: "Print the execution plan without running it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Plan.Execute,
	}
	planCmd.Flags().BoolVar(&flags.Check, "check", false, "Verify every group is planned in exactly one shard")
	planCmd.Flags().IntVar(&flags.Rebalance, "rebalance", 0, "Print a round-robin shard table for N shards")
	rootCmd.AddCommand(planCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list [area...]",
		Short: "List discovered test identifiers",
		Long:  "Run discovery for the fan-out areas (or the named areas) and print the identifiers as a tree",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter identifiers by name pattern (supports wildcards)")
	listCmd.Flags().StringVar(&flags.Root, "root", "", "Discover under this directory instead of configured areas")
	rootCmd.AddCommand(listCmd)

	// Env command
	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Print the environment profile applied before groups run",
		Args:  cobra.NoArgs,
		RunE:  c.Env.Execute,
	}
	rootCmd.AddCommand(envCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills [shard]",
		Short: "View failed groups interactively",
		Long:  "Display the groups that did not pass in the last saved run in an interactive viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)
}
