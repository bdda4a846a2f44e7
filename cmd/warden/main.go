// Command warden is a local command safety filter for AI coding
// assistants: it intercepts a shell command string, parses it into atomic
// invocations, and returns allow, deny, or ask.
package main

import (
	"fmt"
	"os"

	"github.com/banyudu/claude-warden/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
