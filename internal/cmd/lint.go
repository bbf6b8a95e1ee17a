package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/coverlint/internal/config"
	"github.com/harrison/coverlint/internal/coverage"
	"github.com/harrison/coverlint/internal/fileutil"
	"github.com/harrison/coverlint/internal/logger"
	"github.com/harrison/coverlint/internal/report"
)

// ErrCheckFailed is returned by Run after the reason has already been logged.
var ErrCheckFailed = errors.New("coverage lint failed")

// Gate names used in verdict log lines.
const (
	gateTests    = "tests"
	gateCoverage = "coverage"
)

// Options holds the command line settings for a lint run.
type Options struct {
	// Root is the project directory; empty means the working directory
	Root string
	// IgnoreSrcs is a whitespace separated list of file path regexes
	IgnoreSrcs string
	// SummaryPath, when set, receives a machine-readable run summary
	SummaryPath string
}

// runLogger is what Run needs from the console logger.
type runLogger interface {
	logger.Logger
	LogVerdict(gate string, verdict logger.Verdict, detail string)
}

// Run executes the test-presence gate and then the coverage gate.
// It returns nil when both pass or when the project has no config file.
// Every failure is logged before Run returns ErrCheckFailed.
func Run(opts Options, log runLogger) (err error) {
	root, err := resolveRoot(opts.Root)
	if err != nil {
		log.LogError(err.Error())
		return ErrCheckFailed
	}

	cfg, err := loadConfig(root)
	if err != nil {
		if config.IsNotExist(err) {
			log.LogInfo(fmt.Sprintf("Create %s to enable the golang test coverage linter", config.FileName))
			return nil
		}
		log.LogError(err.Error())
		return ErrCheckFailed
	}
	log.LogDebug(fmt.Sprintf("Loaded config from %s", cfg.Path))

	summary := report.NewSummary(root, cfg.Path)
	if opts.SummaryPath != "" {
		defer func() {
			if werr := summary.Write(opts.SummaryPath); werr != nil {
				log.LogError(fmt.Sprintf("Could not write summary: %v", werr))
				err = ErrCheckFailed
				return
			}
			log.LogInfo(fmt.Sprintf("Wrote summary to %s", opts.SummaryPath))
		}()
	}

	ignore, err := fileutil.ParseFileIgnore(opts.IgnoreSrcs)
	if err != nil {
		log.LogError(fmt.Sprintf("Invalid --cover_ignore_srcs: %v", err))
		return ErrCheckFailed
	}

	if !checkTests(root, cfg, ignore, summary, log) {
		return ErrCheckFailed
	}
	if !checkCoverage(root, cfg, summary, log) {
		return ErrCheckFailed
	}

	summary.Passed = true
	return nil
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", root, err)
	}
	return abs, nil
}

func loadConfig(root string) (*config.Config, error) {
	path, err := config.FindConfig(root)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// checkTests runs the test-presence gate and records it in summary.
func checkTests(root string, cfg *config.Config, ignore fileutil.FileIgnore, summary *report.Summary, log runLogger) bool {
	detector := fileutil.NewSkipDetector(root, cfg)
	result, err := fileutil.FindUntestedPackages(root, detector, ignore, log)
	if err != nil {
		log.LogError(err.Error())
		log.LogVerdict(gateTests, logger.VerdictFail, "scan aborted")
		return false
	}

	summary.DirectoriesScanned = result.Visited
	untested := result.RelativeUntested(root)
	summary.UntestedPackages = untested

	if len(untested) > 0 {
		log.LogError("Found golang packages without _test.go files:")
		for _, path := range untested {
			log.LogError(fmt.Sprintf("  %s", path))
		}
		log.LogVerdict(gateTests, logger.VerdictFail, fmt.Sprintf("%d untested packages", len(untested)))
		return false
	}

	log.LogVerdict(gateTests, logger.VerdictPass, fmt.Sprintf("%d directories inspected", result.Visited))
	return true
}

// checkCoverage runs the coverage gate and records it in summary.
func checkCoverage(root string, cfg *config.Config, summary *report.Summary, log runLogger) bool {
	result, err := coverage.Evaluate(root, cfg, log)

	summary.Coverage = &report.CoverageSummary{
		Checked:    result.Checked,
		Covered:    result.Counts.Covered,
		Total:      result.Counts.Total(),
		Percent:    result.Percent,
		MinPercent: result.MinPercent,
		Sufficient: result.Sufficient && err == nil,
	}

	if err != nil {
		summary.Coverage.Error = err.Error()
		log.LogError(err.Error())
		log.LogVerdict(gateCoverage, logger.VerdictFail, "no usable coverage result")
		return false
	}

	switch {
	case !result.Checked:
		log.LogVerdict(gateCoverage, logger.VerdictSkipped, "not configured")
	case result.Sufficient:
		log.LogVerdict(gateCoverage, logger.VerdictPass, fmt.Sprintf("%0.2f%% >= %0.2f%%", result.Percent, result.MinPercent))
	default:
		log.LogVerdict(gateCoverage, logger.VerdictFail, fmt.Sprintf("%0.2f%% < %0.2f%%", result.Percent, result.MinPercent))
	}
	return result.Sufficient
}
