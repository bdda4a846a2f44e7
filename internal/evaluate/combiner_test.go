package evaluate

import (
	"testing"

	"github.com/banyudu/claude-warden/internal/config"
	"github.com/banyudu/claude-warden/internal/rule"
)

func TestCombineSeverityReduction(t *testing.T) {
	results := []Result{
		{Decision: rule.Allow},
		{Decision: rule.Ask, Reason: "first ask"},
		{Decision: rule.Allow},
	}
	final := Combine(results, false, true)
	if final.Decision != rule.Ask || final.Reason != "first ask" {
		t.Errorf("expected the ask result to win with its reason, got %+v", final)
	}
}

func TestCombineDenyBeatsAsk(t *testing.T) {
	results := []Result{
		{Decision: rule.Ask, Reason: "ask"},
		{Decision: rule.Deny, Reason: "deny"},
	}
	final := Combine(results, false, true)
	if final.Decision != rule.Deny {
		t.Errorf("expected deny to win over ask, got %q", final.Decision)
	}
}

func TestCombineSubshellPromotion(t *testing.T) {
	results := []Result{{Decision: rule.Allow}}
	final := Combine(results, true, true)
	if final.Decision != rule.Ask {
		t.Errorf("expected subshell taint to promote allow to ask, got %q", final.Decision)
	}
}

func TestCombineSubshellDoesNotDemoteDeny(t *testing.T) {
	results := []Result{{Decision: rule.Deny, Reason: "already denied"}}
	final := Combine(results, true, true)
	if final.Decision != rule.Deny {
		t.Errorf("expected deny to remain deny even with subshell taint, got %q", final.Decision)
	}
}

func TestCombineSubshellPromotionDisabled(t *testing.T) {
	results := []Result{{Decision: rule.Allow}}
	final := Combine(results, true, false)
	if final.Decision != rule.Allow {
		t.Errorf("expected askOnSubshell:false to leave allow unpromoted, got %q", final.Decision)
	}
}

func TestCombineEmptyResultsDefaultsAllow(t *testing.T) {
	final := Combine(nil, false, true)
	if final.Decision != rule.Allow {
		t.Errorf("expected empty result set to default to allow, got %q", final.Decision)
	}
}

func baseConfig() config.Configuration {
	cfg := config.Defaults()
	return cfg
}

func TestEvaluateScenarioAllowReadOnly(t *testing.T) {
	result := Evaluate(baseConfig(), "ls -la /tmp")
	if result.Decision != rule.Allow {
		t.Errorf("expected allow, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioDenySudoRm(t *testing.T) {
	result := Evaluate(baseConfig(), "sudo rm -rf /")
	if result.Decision != rule.Deny {
		t.Errorf("expected deny, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioGitForcePushAsks(t *testing.T) {
	result := Evaluate(baseConfig(), "git status && git push --force origin main")
	if result.Decision != rule.Ask {
		t.Errorf("expected ask, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioPipelineAllow(t *testing.T) {
	result := Evaluate(baseConfig(), "cat file.txt | grep error | wc -l")
	if result.Decision != rule.Allow {
		t.Errorf("expected allow, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioWrapperTransparentAllow(t *testing.T) {
	result := Evaluate(baseConfig(), `bash -c 'ls && curl https://example.com'`)
	if result.Decision != rule.Allow {
		t.Errorf("expected allow, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioCommandSubstitutionAsks(t *testing.T) {
	result := Evaluate(baseConfig(), "echo $(whoami)")
	if result.Decision != rule.Ask {
		t.Errorf("expected ask due to subshell taint, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioNpmPublishAsks(t *testing.T) {
	result := Evaluate(baseConfig(), "npm publish")
	if result.Decision != rule.Ask {
		t.Errorf("expected ask, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioNpmInstallAllows(t *testing.T) {
	result := Evaluate(baseConfig(), "npm install lodash")
	if result.Decision != rule.Allow {
		t.Errorf("expected allow, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioRmRecursiveForceDeniesWithoutSudo(t *testing.T) {
	for _, cmd := range []string{"rm -rf /", "rm -fr /tmp/x", "rm -r -f /tmp/x", "rm --recursive --force /tmp/x"} {
		result := Evaluate(baseConfig(), cmd)
		if result.Decision != rule.Deny {
			t.Errorf("%q: expected deny, got %q (%s)", cmd, result.Decision, result.Reason)
		}
	}
}

func TestEvaluateScenarioRmWithoutRecursiveForceAsks(t *testing.T) {
	result := Evaluate(baseConfig(), "rm file.txt")
	if result.Decision != rule.Ask {
		t.Errorf("expected ask for a plain rm, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioNpxKnownDevToolAllows(t *testing.T) {
	for _, cmd := range []string{"npx eslint .", "npx prettier --check .", "bunx tsc --noEmit"} {
		result := Evaluate(baseConfig(), cmd)
		if result.Decision != rule.Allow {
			t.Errorf("%q: expected allow, got %q (%s)", cmd, result.Decision, result.Reason)
		}
	}
}

func TestEvaluateScenarioNpxScriptRunnerAsks(t *testing.T) {
	result := Evaluate(baseConfig(), "npx tsx ./script.ts")
	if result.Decision != rule.Ask {
		t.Errorf("expected ask, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioNpxUnknownPackageAsks(t *testing.T) {
	result := Evaluate(baseConfig(), "npx some-random-package")
	if result.Decision != rule.Ask {
		t.Errorf("expected ask for an unrecognized npx package, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioShBareDashCAsks(t *testing.T) {
	result := Evaluate(baseConfig(), "sh -c")
	if result.Decision != rule.Ask {
		t.Errorf("expected ask for bare 'sh -c' with no script, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioShVersionAllows(t *testing.T) {
	result := Evaluate(baseConfig(), "sh --version")
	if result.Decision != rule.Allow {
		t.Errorf("expected allow, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioChmodRecursive777Denies(t *testing.T) {
	result := Evaluate(baseConfig(), "chmod -R 777 /")
	if result.Decision != rule.Deny {
		t.Errorf("expected deny, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateScenarioHeredocGhPrCreateAllows(t *testing.T) {
	result := Evaluate(baseConfig(), "gh pr create --title foo --body \"$(cat <<EOF\nsome body text\nEOF\n)\"")
	if result.Decision != rule.Allow {
		t.Errorf("expected allow, got %q (%s)", result.Decision, result.Reason)
	}
}

func TestEvaluateUnparseableInputAsks(t *testing.T) {
	result := Evaluate(baseConfig(), "ls -la (((")
	if result.Decision != rule.Ask {
		t.Errorf("expected ask for an unparseable command, got %q", result.Decision)
	}
}

func TestEvaluateEmptyInputAllows(t *testing.T) {
	result := Evaluate(baseConfig(), "")
	if result.Decision != rule.Allow {
		t.Errorf("expected allow for empty input, got %q", result.Decision)
	}
}
