package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/coverlint/internal/logger"
)

const (
	goFileSuffix     = ".go"
	goTestFileSuffix = "_test.go"
)

// ScanResult contains the results of a package scan
type ScanResult struct {
	// Untested contains the full paths of directories with Go source but no test file
	Untested []string
	// Visited is the number of directories inspected
	Visited int
}

// RelativeUntested returns the untested directories relative to root, sorted.
func (r *ScanResult) RelativeUntested(root string) []string {
	paths := make([]string, 0, len(r.Untested))
	for _, p := range r.Untested {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	sort.Strings(paths)
	return paths
}

// FindUntestedPackages walks the tree under root and returns every directory
// that holds Go source files but no _test.go file. Directories rejected by
// detector are not entered, and files matched by ignore are not counted.
// A directory that cannot be listed aborts the scan.
func FindUntestedPackages(root string, detector *SkipDetector, ignore FileIgnore, log logger.Logger) (*ScanResult, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if detector == nil {
		detector = NewSkipDetector(root, nil)
	}

	result := &ScanResult{
		Untested: make([]string, 0),
	}

	unvisited := []string{root}
	for len(unvisited) > 0 {
		dir := unvisited[len(unvisited)-1]
		unvisited = unvisited[:len(unvisited)-1]

		log.LogDebug(fmt.Sprintf("Looking for missing tests in %s", dir))
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
		}
		result.Visited++

		foundGoFile := false
		foundTestFile := false
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			if !detector.ShouldSkip(path) {
				unvisited = append(unvisited, path)
			}

			if !strings.HasSuffix(entry.Name(), goFileSuffix) {
				continue
			}
			if ignore.Matches(path) {
				log.LogDebug(fmt.Sprintf("Ignoring %s", path))
				continue
			}
			foundGoFile = true
			if strings.HasSuffix(entry.Name(), goTestFileSuffix) {
				foundTestFile = true
			}
		}

		if foundGoFile && !foundTestFile {
			result.Untested = append(result.Untested, dir)
		}
	}

	return result, nil
}
