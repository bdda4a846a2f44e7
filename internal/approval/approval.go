// Package approval lets a human resolve an "ask" decision at the terminal,
// for the warden check --interactive subcommand.
package approval

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Result is the outcome of prompting a human for an ask decision.
type Result struct {
	Approved   bool
	UserAction string
}

// Prompt carries the context shown to the human.
type Prompt struct {
	Command string
	Reason  string
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Ask prompts the human to approve or deny. If stdin isn't a terminal it
// auto-denies rather than blocking forever.
func Ask(p Prompt) Result {
	if !IsInteractive() {
		return Result{Approved: false, UserAction: "auto_deny_non_interactive"}
	}

	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "warden: approval required")
	fmt.Fprintf(os.Stderr, "command: %s\n", p.Command)
	if p.Reason != "" {
		fmt.Fprintf(os.Stderr, "reason:  %s\n", p.Reason)
	}
	fmt.Fprintln(os.Stderr, "")

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "approve this command? [a]pprove / [d]eny: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return Result{Approved: false, UserAction: "error_reading_input"}
		}

		switch strings.TrimSpace(strings.ToLower(input)) {
		case "a", "approve", "y", "yes":
			return Result{Approved: true, UserAction: "approve_once"}
		case "d", "deny", "n", "no":
			return Result{Approved: false, UserAction: "deny"}
		default:
			fmt.Fprintln(os.Stderr, "invalid input, enter 'a' or 'd'")
		}
	}
}
