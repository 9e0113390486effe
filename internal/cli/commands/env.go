package commands

import "github.com/spf13/cobra"

// EnvCommand prints the environment profile
type EnvCommand struct {
	*base
}

// Execute runs the command
func (ec *EnvCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := ec.loadConfig()
	if err != nil {
		return err
	}
	profile, err := ec.profile(cfg)
	if err != nil {
		return err
	}
	ec.formatter().PrintEnv(profile)
	return nil
}
