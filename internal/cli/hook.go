package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/banyudu/claude-warden/internal/config"
	"github.com/banyudu/claude-warden/internal/evaluate"
	"github.com/banyudu/claude-warden/internal/logger"
	"github.com/banyudu/claude-warden/internal/rule"
	"github.com/spf13/cobra"
)

// hookInput is the subset of Claude Code's PreToolUse hook payload warden
// cares about: {"hook_event_name":"PreToolUse","tool_name":"Bash",
// "tool_input":{"command":"..."}}.
type hookInput struct {
	HookEventName string          `json:"hook_event_name"`
	ToolName      string          `json:"tool_name"`
	ToolInput     claudeToolInput `json:"tool_input"`
}

type claudeToolInput struct {
	Command string `json:"command"`
}

type hookResponse struct {
	Decision string `json:"decision"`
	Message  string `json:"message,omitempty"`
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Read a Claude Code PreToolUse hook payload from stdin and respond with a decision",
	Long: `Reads a PreToolUse hook JSON payload from stdin, evaluates the Bash
command against warden's policy, and responds in the hook protocol:

  allow -> {"decision":"approve"}, exit 0
  ask   -> {"decision":"ask","message":reason}, exit 0
  deny  -> exit 2, reason on stderr
`,
	RunE: runHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

func runHook(cmd *cobra.Command, args []string) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	var input hookInput
	if err := json.Unmarshal(data, &input); err != nil {
		// Malformed hook payload: fail open at the adapter boundary, never
		// at the policy layer. A command we never managed to parse out of
		// the payload can't be evaluated at all.
		fmt.Fprintf(os.Stderr, "warden: warning: could not parse hook input: %v\n", err)
		return nil
	}

	if input.HookEventName != "PreToolUse" || input.ToolName != "Bash" {
		return nil
	}

	cmdStr := input.ToolInput.Command
	if cmdStr == "" {
		return nil
	}

	result, err := evaluateAndLog(cmdStr, "claude-code-hook")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warden: warning: %v\n", err)
		return nil
	}

	respond(result)
	return nil
}

// evaluateAndLog loads the merged configuration, evaluates cmdStr, and
// appends an audit log entry before returning the result.
func evaluateAndLog(cmdStr, source string) (evaluate.Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return evaluate.Result{}, fmt.Errorf("getwd: %w", err)
	}

	cfg, err := config.LoadWithOverrides(cwd, configPath, homeConfigPath)
	if err != nil {
		return evaluate.Result{}, fmt.Errorf("config load failed: %w", err)
	}

	result := evaluate.Evaluate(cfg, cmdStr)

	logPath := filepath.Join(cwd, ".claude", "warden-audit.jsonl")
	if auditLogger, logErr := logger.New(logPath); logErr == nil {
		defer func() { _ = auditLogger.Close() }()
		_ = auditLogger.Log(logger.AuditEvent{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Command:   cmdStr,
			Args:      strings.Fields(cmdStr),
			Cwd:       cwd,
			Decision:  string(result.Decision),
			Reason:    result.Reason,
			Source:    source,
			Mode:      mode,
		})
	}

	return result, nil
}

// respond translates a Result into the hook protocol response and, for a
// deny decision, the exit code the adapter's caller inspects.
func respond(result evaluate.Result) {
	switch result.Decision {
	case rule.Deny:
		fmt.Fprintln(os.Stderr, result.Reason)
		os.Exit(2)
	case rule.Ask:
		data, _ := json.Marshal(hookResponse{Decision: "ask", Message: result.Reason})
		fmt.Println(string(data))
	default:
		data, _ := json.Marshal(hookResponse{Decision: "approve"})
		fmt.Println(string(data))
	}
}
