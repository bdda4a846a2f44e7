package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags, matching the pattern the
// agentshield lineage uses for its version command.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print warden's version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
