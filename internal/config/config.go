// Package config loads the coverage lint configuration file.
//
// The file lives at the root of the project being linted. Its absence is not
// an error: callers use IsNotExist to detect that the linter was never enabled
// for the project.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file looked up at the project root.
const FileName = ".golang_coverage_lintrc.json"

// Keys used in the configuration file.
const (
	KeySkippedPaths      = "skipped paths"
	KeySkippedRegexPaths = "skipped regex paths"
	KeySkippedGlobPaths  = "skipped glob paths"
	KeyCoverage          = "coverage"
	KeyMinPercentage     = "min percentage"
)

// candidateNames are tried in order by FindConfig.
var candidateNames = []string{
	FileName,
	".golang_coverage_lintrc.yaml",
	".golang_coverage_lintrc.yml",
}

// CoverageConfig holds the coverage gate settings.
type CoverageConfig struct {
	// MinPercentage is the minimum line coverage. Nil means the section was
	// present without a threshold, which is a misconfiguration.
	MinPercentage *float64
}

// Config represents a loaded lint configuration. It is not modified after Load returns.
type Config struct {
	// Path is the file the configuration was read from
	Path string

	// SkippedPaths are directories, relative to the project root, that are never scanned
	SkippedPaths []string

	// SkippedRegexPaths match relative directory paths from their start
	SkippedRegexPaths []*regexp.Regexp

	// SkippedGlobPaths are doublestar patterns matched against relative directory paths
	SkippedGlobPaths []string

	// Coverage is nil when the coverage gate is not requested
	Coverage *CoverageConfig
}

// ConfigError describes a configuration file that exists but cannot be used.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("could not parse coverage config file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// fileConfig mirrors the on-disk layout for both JSON and YAML.
type fileConfig struct {
	SkippedPaths      []string      `json:"skipped paths" yaml:"skipped paths"`
	SkippedRegexPaths []string      `json:"skipped regex paths" yaml:"skipped regex paths"`
	SkippedGlobPaths  []string      `json:"skipped glob paths" yaml:"skipped glob paths"`
	Coverage          *fileCoverage `json:"coverage" yaml:"coverage"`
}

type fileCoverage struct {
	MinPercentage *float64 `json:"min percentage" yaml:"min percentage"`
}

// IsNotExist reports whether err means no configuration file was found.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// FindConfig returns the path of the first configuration file present in root.
// The JSON file is preferred; YAML variants are accepted as well.
func FindConfig(root string) (string, error) {
	for _, name := range candidateNames {
		path := filepath.Join(root, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to access %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("no %s in %s: %w", FileName, root, fs.ErrNotExist)
}

// Load reads and parses the configuration file at path.
// A missing file yields an error for which IsNotExist is true; any other
// failure is a *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s: %w", path, fs.ErrNotExist)
		}
		return nil, &ConfigError{Path: path, Err: err}
	}

	cfg, err := parse(data, isYAML(path))
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	cfg.Path = path
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func parse(data []byte, useYAML bool) (*Config, error) {
	var fc fileConfig
	// rawMap detects whether a section was provided at all, even if empty or null
	var rawMap map[string]interface{}

	if useYAML {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &rawMap); err != nil {
			return nil, err
		}
	} else {
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &rawMap); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		SkippedPaths:     fc.SkippedPaths,
		SkippedGlobPaths: fc.SkippedGlobPaths,
	}

	for _, pattern := range fc.SkippedRegexPaths {
		re, err := CompilePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid %q entry: %w", KeySkippedRegexPaths, err)
		}
		cfg.SkippedRegexPaths = append(cfg.SkippedRegexPaths, re)
	}

	for _, pattern := range fc.SkippedGlobPaths {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid %q entry %q: %w", KeySkippedGlobPaths, pattern, doublestar.ErrBadPattern)
		}
	}

	if _, exists := rawMap[KeyCoverage]; exists {
		cfg.Coverage = &CoverageConfig{}
		if fc.Coverage != nil {
			cfg.Coverage.MinPercentage = fc.Coverage.MinPercentage
		}
	}

	return cfg, nil
}

// CompilePattern compiles a skip pattern so that it must match from the start
// of the path but may stop anywhere, like a prefix match.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}
