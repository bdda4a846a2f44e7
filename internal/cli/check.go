package cli

import (
	"fmt"
	"strings"

	"github.com/banyudu/claude-warden/internal/approval"
	"github.com/banyudu/claude-warden/internal/rule"
	"github.com/spf13/cobra"
)

var interactive bool

var checkCmd = &cobra.Command{
	Use:   "check <command>",
	Short: "Evaluate a command against warden's policy and print the decision",
	Long: `Runs the same parse+evaluate pipeline the hook uses against a command
given directly on the command line, printing the decision and reason.
Useful for testing warden.yaml changes without wiring up a real hook.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&interactive, "interactive", false, "prompt for approval when the decision is ask")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmdStr := strings.Join(args, " ")

	result, err := evaluateAndLog(cmdStr, "check")
	if err != nil {
		return err
	}

	fmt.Printf("decision: %s\n", result.Decision)
	if result.Reason != "" {
		fmt.Printf("reason:   %s\n", result.Reason)
	}

	if result.Decision == rule.Ask && interactive {
		res := approval.Ask(approval.Prompt{Command: cmdStr, Reason: result.Reason})
		if res.Approved {
			fmt.Println("resolved: approved")
		} else {
			fmt.Printf("resolved: denied (%s)\n", res.UserAction)
		}
	}

	return nil
}
