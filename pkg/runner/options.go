// Package runner discovers MSCL files and formats them concurrently.
package runner

import (
	"github.com/yaklabco/msclfmt/pkg/config"
	"github.com/yaklabco/msclfmt/pkg/format"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match Ignore patterns. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) treated as
	// MSCL source during directory walks. Defaults to config.DefaultExtensions().
	Extensions []string

	// Ignore holds glob patterns for files or directories to skip, relative
	// to WorkingDir. "**" crosses directory boundaries.
	Ignore []string

	// IncludeVendored disables skipping of vendored directories such as
	// "vendor/" and "node_modules/".
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Pipeline is passed to every file.
	Pipeline format.PipelineOptions
}

// OptionsFromConfig creates run options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{
		Paths:    paths,
		Pipeline: format.PipelineOptionsFromConfig(cfg),
	}
	if cfg != nil {
		opts.Extensions = cfg.Extensions
		opts.Ignore = cfg.Ignore
		opts.Jobs = cfg.Jobs
	}
	return opts
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
