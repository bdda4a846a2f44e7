package config

import (
	"fmt"
	"regexp"

	"github.com/banyudu/claude-warden/internal/rule"
	"gopkg.in/yaml.v3"
)

// parseSource unmarshals raw YAML bytes and compiles them into a
// Configuration. Any invalid regex or unknown decision value is a load-time
// error — per spec, configuration failures fail loud, never silently
// downgrading to a default partway through.
func parseSource(data []byte) (Configuration, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Configuration{}, fmt.Errorf("warden: invalid configuration YAML: %w", err)
	}
	return compile(doc)
}

func compile(doc yamlDoc) (Configuration, error) {
	cfg := Configuration{
		AlwaysAllow:             doc.AlwaysAllow,
		AlwaysDeny:              doc.AlwaysDeny,
		TrustedSSHHosts:         doc.TrustedSSHHosts,
		TrustedDockerContainers: doc.TrustedDockerContainers,
		TrustedKubectlContexts:  doc.TrustedKubectlContexts,
		TrustedSprites:          doc.TrustedSprites,
	}

	if doc.DefaultDecision != "" {
		dec, err := compileDecision(doc.DefaultDecision)
		if err != nil {
			return Configuration{}, fmt.Errorf("warden: defaultDecision: %w", err)
		}
		cfg.DefaultDecision = dec
	}

	cfg.AskOnSubshell = doc.AskOnSubshell

	for i, gd := range doc.GlobalDeny {
		re, err := regexp.Compile(gd.Pattern)
		if err != nil {
			return Configuration{}, fmt.Errorf("warden: globalDeny[%d]: invalid regex %q: %w", i, gd.Pattern, err)
		}
		cfg.GlobalDeny = append(cfg.GlobalDeny, GlobalDenyPattern{Pattern: re, Reason: gd.Reason})
	}

	for i, r := range doc.Rules {
		compiled, err := compileRule(r)
		if err != nil {
			return Configuration{}, fmt.Errorf("warden: rules[%d] (%s): %w", i, r.Command, err)
		}
		cfg.Rules = append(cfg.Rules, compiled)
	}

	return cfg, nil
}

func compileRule(r yamlRule) (rule.CommandRule, error) {
	if r.Command == "" {
		return rule.CommandRule{}, fmt.Errorf("command is required")
	}

	def := rule.Ask
	if r.Default != "" {
		d, err := compileDecision(r.Default)
		if err != nil {
			return rule.CommandRule{}, fmt.Errorf("default: %w", err)
		}
		def = d
	}

	cr := rule.CommandRule{Command: r.Command, Default: def}

	for i, p := range r.ArgPatterns {
		compiled, err := compileArgPattern(p)
		if err != nil {
			return rule.CommandRule{}, fmt.Errorf("argPatterns[%d]: %w", i, err)
		}
		cr.ArgPatterns = append(cr.ArgPatterns, compiled)
	}

	return cr, nil
}

func compileArgPattern(p yamlArgPattern) (rule.ArgPattern, error) {
	dec, err := compileDecision(p.Decision)
	if err != nil {
		return rule.ArgPattern{}, fmt.Errorf("decision: %w", err)
	}

	spec, err := compileMatchSpec(p.Match)
	if err != nil {
		return rule.ArgPattern{}, fmt.Errorf("match: %w", err)
	}

	return rule.ArgPattern{
		Match:       spec,
		Decision:    dec,
		Reason:      p.Reason,
		Description: p.Description,
	}, nil
}

func compileMatchSpec(m yamlMatchSpec) (rule.MatchSpec, error) {
	spec := rule.MatchSpec{NoArgs: m.NoArgs, Not: m.Not}

	for i, pat := range m.AnyArgMatches {
		re, err := regexp.Compile(pat)
		if err != nil {
			return rule.MatchSpec{}, fmt.Errorf("anyArgMatches[%d]: invalid regex %q: %w", i, pat, err)
		}
		spec.AnyArgMatches = append(spec.AnyArgMatches, re)
	}

	for i, pat := range m.ArgsMatch {
		re, err := regexp.Compile(pat)
		if err != nil {
			return rule.MatchSpec{}, fmt.Errorf("argsMatch[%d]: invalid regex %q: %w", i, pat, err)
		}
		spec.ArgsMatch = append(spec.ArgsMatch, re)
	}

	if m.ArgCount != nil {
		spec.ArgCount = &rule.ArgCount{Min: m.ArgCount.Min, Max: m.ArgCount.Max}
	}

	return spec, nil
}

func compileDecision(s string) (rule.Decision, error) {
	switch rule.Decision(s) {
	case rule.Allow, rule.Ask, rule.Deny:
		return rule.Decision(s), nil
	default:
		return "", fmt.Errorf("unknown decision %q (want allow|deny|ask)", s)
	}
}
