package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigRelPath is where a project's override file lives,
	// relative to the working directory.
	ProjectConfigRelPath = ".claude/warden.yaml"
	// UserConfigRelPath is where a user's override file lives, relative
	// to the home directory.
	UserConfigRelPath = ".claude/warden.yaml"
)

// Load resolves and merges the three configuration sources: project
// (<cwd>/.claude/warden.yaml), user (<home>/.claude/warden.yaml), and
// built-in defaults, in that priority order (highest first). A missing
// file at either path is not an error; an unreadable or malformed one is.
func Load(cwd string) (Configuration, error) {
	return LoadWithOverrides(cwd, "", "")
}

// LoadWithOverrides is Load, except projectOverridePath and
// homeOverridePath, when non-empty, replace <cwd>/.claude/warden.yaml and
// <home>/.claude/warden.yaml respectively (a missing override file at
// either path IS an error, since the caller named it explicitly).
func LoadWithOverrides(cwd, projectOverridePath, homeOverridePath string) (Configuration, error) {
	project, err := loadSource(filepath.Join(cwd, ProjectConfigRelPath), projectOverridePath)
	if err != nil {
		return Configuration{}, fmt.Errorf("project config: %w", err)
	}

	var homeDefaultPath string
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		homeDefaultPath = filepath.Join(home, UserConfigRelPath)
	}
	user, err := loadSource(homeDefaultPath, homeOverridePath)
	if err != nil {
		return Configuration{}, fmt.Errorf("user config: %w", err)
	}

	return merge(project, user, Defaults()), nil
}

// loadSource reads overridePath if given (missing file is an error), else
// falls back to defaultPath optionally (missing file is not an error).
func loadSource(defaultPath, overridePath string) (Configuration, error) {
	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return Configuration{}, err
		}
		return parseSource(data)
	}
	if defaultPath == "" {
		return Configuration{}, nil
	}
	return loadOptional(defaultPath)
}

func loadOptional(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Configuration{}, nil
		}
		return Configuration{}, err
	}
	return parseSource(data)
}
