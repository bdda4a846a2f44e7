package config

import "path/filepath"

// TrustGlob reports whether target matches any glob pattern in the list.
// Matching follows fnmatch/filepath.Match semantics (the same engine the
// agentshield lineage uses for protected-path globs), with one addition:
// a trailing "/**" matches the prefix and anything below it, since
// filepath.Match has no recursive-wildcard support of its own.
func TrustGlob(target string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(target, pattern) {
			return true
		}
	}
	return false
}

func matchGlob(target, pattern string) bool {
	if len(pattern) >= 3 && pattern[len(pattern)-3:] == "/**" {
		prefix := pattern[:len(pattern)-3]
		return target == prefix || (len(target) > len(prefix) && target[:len(prefix)+1] == prefix+"/")
	}
	ok, err := filepath.Match(pattern, target)
	return err == nil && ok
}
