package runner

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/gobwas/glob"
)

// ignoreSet matches slash-separated relative paths against ignore patterns.
type ignoreSet []glob.Glob

// compileIgnore compiles patterns with "/" as the separator, so "*" stays
// within one path element and "**" crosses elements.
func compileIgnore(patterns []string) (ignoreSet, error) {
	set := make(ignoreSet, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		set = append(set, compiled)
	}
	return set, nil
}

// ValidatePattern reports whether pattern is a valid ignore glob.
func ValidatePattern(pattern string) error {
	_, err := compileIgnore([]string{pattern})
	return err
}

// Match reports whether relPath, or its base name, matches any pattern.
// A directory pattern such as "build/**" also matches "build" itself.
func (s ignoreSet) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	base := path.Base(relPath)
	for _, pattern := range s {
		if pattern.Match(relPath) || pattern.Match(base) || pattern.Match(relPath+"/") {
			return true
		}
	}
	return false
}
