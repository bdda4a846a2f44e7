package config

// merge combines configuration sources, highest priority first:
// merge(project, user, defaults).
//
// Scalars: the first source that sets a non-zero value wins.
// List fields (alwaysAllow/alwaysDeny/globalDeny/trusted*): union, deduped.
// rules: appended in priority order (project, then user, then defaults) so
// that the evaluator's first-match-wins search gives project rules the
// final say, per spec.
func merge(sources ...Configuration) Configuration {
	var out Configuration

	for _, src := range sources {
		if out.DefaultDecision == "" && src.DefaultDecision != "" {
			out.DefaultDecision = src.DefaultDecision
		}
	}
	for _, src := range sources {
		if out.AskOnSubshell == nil && src.AskOnSubshell != nil {
			out.AskOnSubshell = src.AskOnSubshell
		}
	}

	out.AlwaysAllow = unionStrings(collect(sources, func(c Configuration) []string { return c.AlwaysAllow }))
	out.AlwaysDeny = unionStrings(collect(sources, func(c Configuration) []string { return c.AlwaysDeny }))
	out.TrustedSSHHosts = unionStrings(collect(sources, func(c Configuration) []string { return c.TrustedSSHHosts }))
	out.TrustedDockerContainers = unionStrings(collect(sources, func(c Configuration) []string { return c.TrustedDockerContainers }))
	out.TrustedKubectlContexts = unionStrings(collect(sources, func(c Configuration) []string { return c.TrustedKubectlContexts }))
	out.TrustedSprites = unionStrings(collect(sources, func(c Configuration) []string { return c.TrustedSprites }))

	out.GlobalDeny = mergeGlobalDeny(sources)

	for _, src := range sources {
		out.Rules = append(out.Rules, src.Rules...)
	}

	return out
}

func collect(sources []Configuration, field func(Configuration) []string) []string {
	var all []string
	for _, src := range sources {
		all = append(all, field(src)...)
	}
	return all
}

func unionStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func mergeGlobalDeny(sources []Configuration) []GlobalDenyPattern {
	seen := make(map[string]bool)
	var out []GlobalDenyPattern
	for _, src := range sources {
		for _, gd := range src.GlobalDeny {
			key := gd.Pattern.String() + "\x00" + gd.Reason
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, gd)
		}
	}
	return out
}
