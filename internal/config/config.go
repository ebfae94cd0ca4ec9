// Package config loads the optional build-options file a repository can
// check in to pin its indexing behavior (ignore rules, language filter)
// instead of relying on command-line flags every time.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"graphcore/internal/core"
)

// File is the on-disk shape of a ".graphcore.yml" config file.
type File struct {
	IgnoreHidden     *bool    `yaml:"ignore_hidden"`
	RespectVCSIgnore *bool    `yaml:"respect_vcs_ignore"`
	ExtraIgnoreGlobs []string `yaml:"extra_ignore_globs"`
	Languages        []string `yaml:"languages"`
}

// Load reads a build-options file at path and merges it over
// core.DefaultBuildOptions. A missing file is not an error — it just
// returns the defaults unchanged.
func Load(path string) (core.BuildOptions, error) {
	opts := core.DefaultBuildOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return opts, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if f.IgnoreHidden != nil {
		opts.IgnoreHidden = *f.IgnoreHidden
	}
	if f.RespectVCSIgnore != nil {
		opts.RespectVCSIgnore = *f.RespectVCSIgnore
	}
	if len(f.ExtraIgnoreGlobs) > 0 {
		opts.ExtraIgnoreGlobs = f.ExtraIgnoreGlobs
	}
	if len(f.Languages) > 0 {
		opts.Languages = f.Languages
	}
	return opts, nil
}
