package evaluate

import (
	"time"

	"github.com/banyudu/claude-warden/internal/config"
	"github.com/banyudu/claude-warden/internal/rule"
	"github.com/banyudu/claude-warden/internal/shellparse"
)

// evaluationTimeout bounds a whole per-invocation evaluation pass against
// pathological regex backtracking (spec §5).
const evaluationTimeout = 200 * time.Millisecond

// Evaluate is the module's single entry point: parse rawInput, run the
// layered evaluator over every invocation found, and combine the results
// per spec §4.4. It never panics — any internal failure surfaces as Ask.
func Evaluate(cfg config.Configuration, rawInput string) Result {
	resultCh := make(chan Result, 1)
	go func() {
		resultCh <- evaluate(cfg, rawInput)
	}()

	select {
	case res := <-resultCh:
		return res
	case <-time.After(evaluationTimeout):
		return Result{Decision: rule.Ask, Reason: "evaluation timeout"}
	}
}

func evaluate(cfg config.Configuration, rawInput string) Result {
	if denyResult, denied := CheckGlobalDeny(cfg, rawInput); denied {
		return denyResult
	}

	parsed := shellparse.Parse(rawInput)

	if parsed.ParseError {
		return Result{Decision: rule.Ask, Reason: "unparseable command"}
	}

	if len(parsed.Commands) == 0 {
		return Result{Decision: rule.Allow}
	}

	var results []Result
	for _, inv := range parsed.Commands {
		results = append(results, EvaluateInvocation(cfg, inv))
	}

	return Combine(results, parsed.HasSubshell, cfg.AskOnSubshellEnabled())
}

// Combine reduces per-invocation results and subshell taint into one final
// decision: deny > ask > allow across all invocations, then a subshell
// promotion of allow→ask when askOnSubshell is enabled (spec §4.4).
func Combine(results []Result, hasSubshell, askOnSubshell bool) Result {
	final := Result{Decision: rule.Allow}

	for _, r := range results {
		if r.Decision.Severity() > final.Decision.Severity() {
			final = r
		}
	}

	if hasSubshell && askOnSubshell && final.Decision == rule.Allow {
		final = Result{Decision: rule.Ask, Reason: "command contains a subshell or command substitution"}
	}

	return final
}
