// Package rule implements the layer that decides whether one ArgPattern
// applies to one parsed command invocation, and what a CommandRule
// prescribes once its argument patterns have been walked in order.
package rule

import (
	"regexp"

	"github.com/banyudu/claude-warden/internal/shellparse"
)

// Decision is one of allow, deny, or ask. Combination order (strongest
// wins): deny > ask > allow.
type Decision string

const (
	Allow Decision = "allow"
	Ask   Decision = "ask"
	Deny  Decision = "deny"
)

// Severity gives Decision a total order so it can be compared with max().
func (d Decision) Severity() int {
	switch d {
	case Deny:
		return 2
	case Ask:
		return 1
	default:
		return 0
	}
}

// Stronger returns the more restrictive of two decisions.
func Stronger(a, b Decision) Decision {
	if a.Severity() >= b.Severity() {
		return a
	}
	return b
}

// ArgCount bounds the number of positional args (inclusive, either side optional).
type ArgCount struct {
	Min *int
	Max *int
}

// MatchSpec is a set of independent predicates; every predicate
// present must hold (AND). An empty, non-negated MatchSpec matches
// unconditionally.
type MatchSpec struct {
	AnyArgMatches []*regexp.Regexp
	ArgsMatch     []*regexp.Regexp
	NoArgs        *bool
	ArgCount      *ArgCount
	Not           bool
}

// ArgPattern pairs a MatchSpec with the decision it prescribes.
type ArgPattern struct {
	Match       MatchSpec
	Decision    Decision
	Reason      string
	Description string
}

// CommandRule is a per-command rule: a default decision, and an ordered
// list of ArgPatterns to consult first.
type CommandRule struct {
	Command      string
	Default      Decision
	ArgPatterns  []ArgPattern
}

// MatchSpecMatches evaluates a MatchSpec against an invocation.
func MatchSpecMatches(spec MatchSpec, inv shellparse.Invocation) bool {
	hasPredicate := false
	result := true

	if len(spec.AnyArgMatches) > 0 {
		hasPredicate = true
		result = result && anyArgFullMatches(spec.AnyArgMatches, inv.Args)
	}
	if len(spec.ArgsMatch) > 0 {
		hasPredicate = true
		result = result && anyRegexSearches(spec.ArgsMatch, inv.Raw)
	}
	if spec.NoArgs != nil {
		hasPredicate = true
		result = result && (*spec.NoArgs == (len(inv.Args) == 0))
	}
	if spec.ArgCount != nil {
		hasPredicate = true
		result = result && argCountInBounds(*spec.ArgCount, len(inv.Args))
	}

	if !hasPredicate {
		// An unconditional pattern matches true; Not inverts that too.
		return !spec.Not
	}

	if spec.Not {
		return !result
	}
	return result
}

func anyArgFullMatches(patterns []*regexp.Regexp, args []string) bool {
	for _, arg := range args {
		for _, re := range patterns {
			if fullMatch(re, arg) {
				return true
			}
		}
	}
	return false
}

// fullMatch requires the regex to match the entire string, not a substring.
func fullMatch(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

func anyRegexSearches(patterns []*regexp.Regexp, raw string) bool {
	for _, re := range patterns {
		if re.MatchString(raw) {
			return true
		}
	}
	return false
}

func argCountInBounds(bounds ArgCount, n int) bool {
	if bounds.Min != nil && n < *bounds.Min {
		return false
	}
	if bounds.Max != nil && n > *bounds.Max {
		return false
	}
	return true
}

// EvaluateCommandRule walks the rule's ArgPatterns in order against inv and
// returns the first matching pattern's decision, or the rule's default if
// none match. The caller is responsible for checking inv.Command == rule.Command.
func EvaluateCommandRule(rule CommandRule, inv shellparse.Invocation) (Decision, string) {
	for _, pattern := range rule.ArgPatterns {
		if MatchSpecMatches(pattern.Match, inv) {
			return pattern.Decision, pattern.Reason
		}
	}
	return rule.Default, ""
}
