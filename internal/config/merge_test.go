package config

import (
	"regexp"
	"testing"

	"github.com/banyudu/claude-warden/internal/rule"
)

func TestMergeScalarFirstSetWins(t *testing.T) {
	project := Configuration{DefaultDecision: rule.Deny}
	user := Configuration{DefaultDecision: rule.Allow}
	defaults := Configuration{DefaultDecision: rule.Ask}

	out := merge(project, user, defaults)
	if out.DefaultDecision != rule.Deny {
		t.Errorf("expected project's DefaultDecision to win, got %q", out.DefaultDecision)
	}
}

func TestMergeScalarFallsThroughWhenUnset(t *testing.T) {
	project := Configuration{}
	user := Configuration{}
	defaults := Configuration{DefaultDecision: rule.Ask}

	out := merge(project, user, defaults)
	if out.DefaultDecision != rule.Ask {
		t.Errorf("expected fallback to defaults' DefaultDecision, got %q", out.DefaultDecision)
	}
}

func TestMergeAskOnSubshellDistinguishesUnsetFromFalse(t *testing.T) {
	falseVal := false
	project := Configuration{AskOnSubshell: &falseVal}
	defaults := Configuration{AskOnSubshell: boolPtr(true)}

	out := merge(project, Configuration{}, defaults)
	if out.AskOnSubshell == nil || *out.AskOnSubshell != false {
		t.Errorf("expected project's explicit false to survive merge, got %+v", out.AskOnSubshell)
	}
}

func boolPtr(b bool) *bool { return &b }

func TestMergeListsUnionAndDedupe(t *testing.T) {
	project := Configuration{AlwaysAllow: []string{"ls", "cat"}}
	user := Configuration{AlwaysAllow: []string{"cat", "grep"}}
	defaults := Configuration{AlwaysAllow: []string{"grep", "wc"}}

	out := merge(project, user, defaults)
	want := []string{"ls", "cat", "grep", "wc"}
	if len(out.AlwaysAllow) != len(want) {
		t.Fatalf("expected %d deduped entries, got %d: %+v", len(want), len(out.AlwaysAllow), out.AlwaysAllow)
	}
	for i := range want {
		if out.AlwaysAllow[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], out.AlwaysAllow[i])
		}
	}
}

func TestMergeGlobalDenyDedupe(t *testing.T) {
	re := regexp.MustCompile("rm -rf /")
	pattern := GlobalDenyPattern{Pattern: re, Reason: "catastrophic"}
	project := Configuration{GlobalDeny: []GlobalDenyPattern{pattern}}
	defaults := Configuration{GlobalDeny: []GlobalDenyPattern{pattern}}

	out := merge(project, Configuration{}, defaults)
	if len(out.GlobalDeny) != 1 {
		t.Errorf("expected deduped globalDeny, got %d entries", len(out.GlobalDeny))
	}
}

func TestMergeRulesAppendInPriorityOrder(t *testing.T) {
	project := Configuration{Rules: []rule.CommandRule{{Command: "git", Default: rule.Deny}}}
	user := Configuration{Rules: []rule.CommandRule{{Command: "git", Default: rule.Allow}}}
	defaults := Configuration{Rules: []rule.CommandRule{{Command: "git", Default: rule.Ask}}}

	out := merge(project, user, defaults)
	if len(out.Rules) != 3 {
		t.Fatalf("expected all 3 rules appended, got %d", len(out.Rules))
	}
	if out.Rules[0].Default != rule.Deny {
		t.Errorf("expected project's rule to come first for first-match-wins evaluation, got %q", out.Rules[0].Default)
	}
}
