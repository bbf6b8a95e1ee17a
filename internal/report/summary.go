// Package report writes the optional machine-readable run summary.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// CoverageSummary is the coverage gate section of a Summary.
type CoverageSummary struct {
	Checked    bool    `json:"checked" yaml:"checked"`
	Covered    int     `json:"covered" yaml:"covered"`
	Total      int     `json:"total" yaml:"total"`
	Percent    float64 `json:"percent" yaml:"percent"`
	MinPercent float64 `json:"min_percent" yaml:"min_percent"`
	Sufficient bool    `json:"sufficient" yaml:"sufficient"`
	Error      string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary describes one lint run.
type Summary struct {
	RunID      string `json:"run_id" yaml:"run_id"`
	Root       string `json:"root" yaml:"root"`
	ConfigPath string `json:"config_path" yaml:"config_path"`

	// DirectoriesScanned is zero when the scan did not complete
	DirectoriesScanned int      `json:"directories_scanned" yaml:"directories_scanned"`
	UntestedPackages   []string `json:"untested_packages" yaml:"untested_packages"`

	// Coverage is nil when the run stopped before the coverage gate
	Coverage *CoverageSummary `json:"coverage,omitempty" yaml:"coverage,omitempty"`

	Passed bool `json:"passed" yaml:"passed"`
}

// NewSummary starts a summary for a run over root.
func NewSummary(root, configPath string) *Summary {
	return &Summary{
		RunID:            uuid.New().String(),
		Root:             root,
		ConfigPath:       configPath,
		UntestedPackages: make([]string, 0),
	}
}

// Marshal encodes the summary as YAML for .yaml/.yml paths and as indented
// JSON otherwise.
func (s *Summary) Marshal(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to encode summary: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode summary: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// Write encodes the summary for path and replaces the file atomically while
// holding its lock.
func (s *Summary) Write(path string) error {
	data, err := s.Marshal(path)
	if err != nil {
		return err
	}
	return LockAndWrite(path, data)
}
