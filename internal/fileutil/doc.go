// Package fileutil finds Go package directories that have no test files.
//
// # Skip rules
//
// Directories are filtered by SkipDetector before they are entered. A
// directory is skipped when it is not a directory, when it is a symlink,
// when its path relative to the project root is one of the always-skipped
// names (.git, .gen, .tmp, vendor, go-build), when that relative path is
// listed in the config, or when it matches a configured regex or glob.
//
// Files are filtered separately by FileIgnore, a list of regexes given on
// the command line and matched against the full file path.
//
// # Traversal
//
// FindUntestedPackages walks the tree with an explicit stack rather than
// recursion. Sibling order is not guaranteed; callers that print results
// should use ScanResult.RelativeUntested, which is sorted.
//
// Example:
//
//	detector := fileutil.NewSkipDetector(root, cfg)
//	ignore, err := fileutil.ParseFileIgnore(`.*_mock\.go$`)
//	if err != nil {
//	    return err
//	}
//	result, err := fileutil.FindUntestedPackages(root, detector, ignore, log)
//	if err != nil {
//	    return err
//	}
//	for _, dir := range result.RelativeUntested(root) {
//	    fmt.Println(dir)
//	}
package fileutil
