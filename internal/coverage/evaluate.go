package coverage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/coverlint/internal/config"
	"github.com/harrison/coverlint/internal/logger"
)

var (
	// ErrMissingThreshold means the coverage section has no minimum percentage.
	ErrMissingThreshold = errors.New("could not find coverage threshold")
	// ErrReportNotFound means no coverage report exists at the project root.
	ErrReportNotFound = errors.New("could not find coverage report")
)

// Result describes the outcome of the coverage gate.
type Result struct {
	// Checked is false when the configuration does not request a coverage check
	Checked    bool
	ReportPath string
	Counts     Counts
	Percent    float64
	MinPercent float64
	Sufficient bool
}

// Evaluate checks the coverage report under root against cfg.
//
// Without a coverage section the gate is not requested and the result is
// sufficient. Every other path that cannot produce a percentage returns an
// error together with an insufficient result. The returned Result is never nil.
func Evaluate(root string, cfg *config.Config, log logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	result := &Result{}
	if cfg == nil || cfg.Coverage == nil {
		log.LogInfo(fmt.Sprintf("Skipping coverage calculation because config file is missing the %s key.", config.KeyCoverage))
		result.Sufficient = true
		return result, nil
	}

	result.Checked = true
	if cfg.Coverage.MinPercentage == nil {
		return result, fmt.Errorf("%w in %s", ErrMissingThreshold, filepath.Base(cfg.Path))
	}
	result.MinPercent = *cfg.Coverage.MinPercentage

	result.ReportPath = filepath.Join(root, ReportFileName)
	info, err := os.Stat(result.ReportPath)
	if err != nil || info.IsDir() {
		return result, fmt.Errorf("%w (%s)", ErrReportNotFound, result.ReportPath)
	}

	counts, err := ParseFile(result.ReportPath)
	if err != nil {
		return result, fmt.Errorf("%s: %w", result.ReportPath, err)
	}
	result.Counts = counts

	percent, err := counts.Percent()
	if err != nil {
		return result, fmt.Errorf("%s: %w", result.ReportPath, err)
	}
	result.Percent = percent

	log.LogInfo(fmt.Sprintf("Calculated %d covered lines of %d total lines (%0.2f%%)",
		counts.Covered, counts.Total(), percent))

	if percent < result.MinPercent {
		log.LogError(fmt.Sprintf("Expected line coverage of at least %0.2f%% but got %0.2f%% (%d/%d)",
			result.MinPercent, percent, counts.Covered, counts.Total()))
		return result, nil
	}

	result.Sufficient = true
	return result, nil
}

// IsSufficient reports whether the coverage gate passes, logging the reason
// whenever it does not.
func IsSufficient(root string, cfg *config.Config, log logger.Logger) bool {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	result, err := Evaluate(root, cfg, log)
	if err != nil {
		log.LogError(err.Error())
		return false
	}
	return result.Sufficient
}
