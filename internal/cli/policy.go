package cli

import (
	"fmt"
	"os"

	"github.com/banyudu/claude-warden/internal/config"
	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect and validate warden's merged configuration",
}

var policyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and merge project/user/default configuration, reporting any errors",
	RunE:  runPolicyValidate,
}

func init() {
	policyCmd.AddCommand(policyValidateCmd)
	rootCmd.AddCommand(policyCmd)
}

func runPolicyValidate(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithOverrides(cwd, configPath, homeConfigPath)
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Printf("configuration OK: %d rules, %d always-allow, %d always-deny, %d global-deny\n",
		len(cfg.Rules), len(cfg.AlwaysAllow), len(cfg.AlwaysDeny), len(cfg.GlobalDeny))
	return nil
}
