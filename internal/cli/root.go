package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath     string
	homeConfigPath string
	mode           string
)

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Warden - command safety filter for AI coding assistants",
	Long: `Warden intercepts shell commands an AI coding assistant wants to run,
parses them into atomic invocations, and returns allow, deny, or ask
based on a layered, pattern-driven policy.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a warden.yaml file to use in place of the project config")
	rootCmd.PersistentFlags().StringVar(&homeConfigPath, "home-config", "", "Path to a warden.yaml file to use in place of the user config")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "hook", "Execution mode: hook or standalone")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
