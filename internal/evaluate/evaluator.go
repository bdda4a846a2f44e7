// Package evaluate implements the layered decision engine (spec §4.3) and
// the pipeline combiner that reduces per-invocation decisions plus
// subshell taint into one final decision (spec §4.4).
package evaluate

import (
	"strings"

	"github.com/banyudu/claude-warden/internal/config"
	"github.com/banyudu/claude-warden/internal/rule"
	"github.com/banyudu/claude-warden/internal/shellparse"
)

// Result is the outcome of evaluating a single invocation or an entire
// pipeline: a decision plus the reason behind it (populated for
// non-allow decisions).
type Result struct {
	Decision rule.Decision
	Reason   string
}

// trustCheckedCommands are the commands whose per-command rule outcome can
// be overridden from ask to allow once their target argument matches a
// configured trust list (spec §4.3 "Trusted-target lists").
var trustCheckedCommands = map[string]bool{
	"ssh":    true,
	"docker": true,
	"kubectl": true,
	"sprite": true,
}

// EvaluateInvocation runs the fixed-precedence cascade for one invocation:
// alwaysDeny → alwaysAllow → per-command rules (with trust-list override)
// → default. Global deny is evaluated separately, once, against the
// original raw input string (spec §4.3 step 1) — see Evaluate.
func EvaluateInvocation(cfg config.Configuration, inv shellparse.Invocation) Result {
	for _, cmd := range cfg.AlwaysDeny {
		if inv.Command == cmd {
			return Result{Decision: rule.Deny, Reason: "command is in the always-deny list: " + cmd}
		}
	}

	for _, cmd := range cfg.AlwaysAllow {
		if inv.Command == cmd {
			return Result{Decision: rule.Allow}
		}
	}

	for _, r := range cfg.Rules {
		if r.Command != inv.Command {
			continue
		}
		dec, reason := rule.EvaluateCommandRule(r, inv)
		if dec == rule.Ask && trustCheckedCommands[inv.Command] {
			if target, ok := extractTrustTarget(inv); ok && isTrusted(cfg, inv.Command, target) {
				return Result{Decision: rule.Allow, Reason: "trusted target: " + target}
			}
		}
		return Result{Decision: dec, Reason: reason}
	}

	return Result{Decision: cfg.ResolvedDefaultDecision()}
}

// sshValueFlags are ssh's short options that consume the next argument as
// their value, rather than being self-contained booleans. The host target
// is the first non-flag argument that isn't one of these values.
var sshValueFlags = map[string]bool{
	"-p": true, "-l": true, "-i": true, "-o": true, "-F": true, "-J": true,
	"-c": true, "-m": true, "-w": true, "-B": true, "-b": true, "-D": true,
	"-e": true, "-E": true, "-I": true, "-L": true, "-Q": true, "-R": true,
	"-S": true, "-W": true,
}

// extractTrustTarget pulls the connection target out of an invocation for
// the commands that support trust-list overrides.
func extractTrustTarget(inv shellparse.Invocation) (string, bool) {
	switch inv.Command {
	case "ssh", "sprite":
		skipNext := false
		for _, a := range inv.Args {
			if skipNext {
				skipNext = false
				continue
			}
			if strings.HasPrefix(a, "-") {
				if sshValueFlags[a] {
					skipNext = true
				}
				continue
			}
			return a, true
		}
	case "docker":
		foundExec := false
		for _, a := range inv.Args {
			if !foundExec {
				if a == "exec" {
					foundExec = true
				}
				continue
			}
			if strings.HasPrefix(a, "-") {
				continue
			}
			return a, true
		}
	case "kubectl":
		for i, a := range inv.Args {
			if a == "--context" && i+1 < len(inv.Args) {
				return inv.Args[i+1], true
			}
			if strings.HasPrefix(a, "--context=") {
				return strings.TrimPrefix(a, "--context="), true
			}
		}
	}
	return "", false
}

func isTrusted(cfg config.Configuration, command, target string) bool {
	switch command {
	case "ssh":
		return config.TrustGlob(target, cfg.TrustedSSHHosts)
	case "docker":
		return config.TrustGlob(target, cfg.TrustedDockerContainers)
	case "kubectl":
		return config.TrustGlob(target, cfg.TrustedKubectlContexts)
	case "sprite":
		return config.TrustGlob(target, cfg.TrustedSprites)
	}
	return false
}

// CheckGlobalDeny tests the original raw input string against every
// globalDeny pattern. This is the only layer that sees the pre-parse text
// rather than a parsed Invocation (spec §4.3 step 1).
func CheckGlobalDeny(cfg config.Configuration, rawInput string) (Result, bool) {
	for _, gd := range cfg.GlobalDeny {
		if gd.Pattern.MatchString(rawInput) {
			return Result{Decision: rule.Deny, Reason: gd.Reason}, true
		}
	}
	return Result{}, false
}
