package fileutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/harrison/coverlint/internal/config"
)

// alwaysSkipped are relative paths that are never scanned.
var alwaysSkipped = map[string]bool{
	".git":     true,
	".gen":     true,
	".tmp":     true,
	"vendor":   true,
	"go-build": true,
}

// SkipDetector decides whether a directory is excluded from the test scan.
type SkipDetector struct {
	root         string
	skippedPaths map[string]bool
	regexPaths   []*regexp.Regexp
	globPaths    []string
}

// NewSkipDetector builds a detector for paths under root using the skip
// rules from cfg. A nil cfg applies only the always-skipped names.
func NewSkipDetector(root string, cfg *config.Config) *SkipDetector {
	d := &SkipDetector{
		root:         root,
		skippedPaths: make(map[string]bool),
	}
	if cfg == nil {
		return d
	}

	for _, p := range cfg.SkippedPaths {
		d.skippedPaths[filepath.ToSlash(filepath.Clean(p))] = true
	}
	d.regexPaths = cfg.SkippedRegexPaths
	d.globPaths = cfg.SkippedGlobPaths
	return d
}

// ShouldSkip reports whether path should be ignored when looking for
// untested packages.
func (d *SkipDetector) ShouldSkip(path string) bool {
	// Stat follows links, so broken symlinks land here too
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return true
	}

	linfo, err := os.Lstat(path)
	if err != nil || linfo.Mode()&os.ModeSymlink != 0 {
		return true
	}

	rel := d.relative(path)
	if alwaysSkipped[rel] {
		return true
	}
	if d.skippedPaths[rel] {
		return true
	}
	for _, re := range d.regexPaths {
		if re.MatchString(rel) {
			return true
		}
	}
	for _, pattern := range d.globPaths {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// relative returns path relative to the root with forward slashes.
func (d *SkipDetector) relative(path string) string {
	rel, err := filepath.Rel(d.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// FileIgnore is a list of patterns for source files that do not count when
// deciding whether a directory has code that needs tests.
type FileIgnore []*regexp.Regexp

// ParseFileIgnore compiles a whitespace separated list of regexes.
// Each pattern must match from the start of the file path.
func ParseFileIgnore(spec string) (FileIgnore, error) {
	var ignore FileIgnore
	for _, pattern := range strings.Fields(spec) {
		re, err := config.CompilePattern(pattern)
		if err != nil {
			return nil, err
		}
		ignore = append(ignore, re)
	}
	return ignore, nil
}

// Matches reports whether path is ignored.
func (f FileIgnore) Matches(path string) bool {
	for _, re := range f {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
