// Package config holds the merged Configuration schema the evaluator reads,
// the YAML wire format it's loaded from, and the three-source merge
// (project .claude/warden.yaml, user ~/.claude/warden.yaml, built-in
// defaults) that produces it.
package config

import (
	"regexp"

	"github.com/banyudu/claude-warden/internal/rule"
)

// Configuration is the single merged view the layered evaluator consults.
type Configuration struct {
	DefaultDecision rule.Decision
	AskOnSubshell   *bool

	AlwaysAllow []string
	AlwaysDeny  []string
	GlobalDeny  []GlobalDenyPattern

	TrustedSSHHosts         []string
	TrustedDockerContainers []string
	TrustedKubectlContexts  []string
	TrustedSprites          []string

	Rules []rule.CommandRule
}

// AskOnSubshellEnabled reports the resolved askOnSubshell value, defaulting
// to true (the safer choice) if no source set it.
func (c Configuration) AskOnSubshellEnabled() bool {
	if c.AskOnSubshell == nil {
		return true
	}
	return *c.AskOnSubshell
}

// ResolvedDefaultDecision reports the resolved defaultDecision value,
// defaulting to ask (the safer choice) if no source set it.
func (c Configuration) ResolvedDefaultDecision() rule.Decision {
	if c.DefaultDecision == "" {
		return rule.Ask
	}
	return c.DefaultDecision
}

// GlobalDenyPattern is tested against the full original input string
// before parsing; any match denies outright.
type GlobalDenyPattern struct {
	Pattern *regexp.Regexp
	Reason  string
}

// --- YAML wire format -------------------------------------------------
//
// gopkg.in/yaml.v3 can't unmarshal directly into *regexp.Regexp, so the
// wire format carries pattern strings; compile converts it into a
// Configuration, precompiling every regex and failing loud on the first
// invalid one or unknown decision value (spec: fail loud, never silently
// downgrade).

type yamlDoc struct {
	DefaultDecision string             `yaml:"defaultDecision"`
	AskOnSubshell   *bool              `yaml:"askOnSubshell"`
	AlwaysAllow     []string           `yaml:"alwaysAllow"`
	AlwaysDeny      []string           `yaml:"alwaysDeny"`
	GlobalDeny      []yamlGlobalDeny   `yaml:"globalDeny"`

	TrustedSSHHosts         []string `yaml:"trustedSSHHosts"`
	TrustedDockerContainers []string `yaml:"trustedDockerContainers"`
	TrustedKubectlContexts  []string `yaml:"trustedKubectlContexts"`
	TrustedSprites          []string `yaml:"trustedSprites"`

	Rules []yamlRule `yaml:"rules"`
}

type yamlGlobalDeny struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason"`
}

type yamlRule struct {
	Command     string         `yaml:"command"`
	Default     string         `yaml:"default"`
	ArgPatterns []yamlArgPattern `yaml:"argPatterns"`
}

type yamlArgPattern struct {
	Match       yamlMatchSpec `yaml:"match"`
	Decision    string        `yaml:"decision"`
	Reason      string        `yaml:"reason"`
	Description string        `yaml:"description"`
}

type yamlMatchSpec struct {
	AnyArgMatches []string      `yaml:"anyArgMatches"`
	ArgsMatch     []string      `yaml:"argsMatch"`
	NoArgs        *bool         `yaml:"noArgs"`
	ArgCount      *yamlArgCount `yaml:"argCount"`
	Not           bool          `yaml:"not"`
}

type yamlArgCount struct {
	Min *int `yaml:"min"`
	Max *int `yaml:"max"`
}
