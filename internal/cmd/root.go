package cmd

import (
	"github.com/harrison/coverlint/internal/logger"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for coverlint
func NewRootCommand() *cobra.Command {
	opts := Options{}
	var verbose, debug bool

	cmd := &cobra.Command{
		Use:   "coverlint",
		Short: "Check that Go packages have tests and meet a coverage minimum",
		Long: `coverlint enforces two build gates on the Go project in the current directory:

  1. Every directory containing .go files must also contain a _test.go file.
  2. Line coverage reported in coverage.xml must meet the configured minimum.

The linter is enabled by creating .golang_coverage_lintrc.json at the project root:

  {
      "skipped paths": ["relative/path/testlib"],
      "skipped regex paths": [".*mocks?$"],
      "skipped glob paths": ["**/testdata"],
      "coverage": {
          "min percentage": 90.0
      }
  }

Omitting the coverage section checks only that packages have tests.
vendor, go-build, .git, .gen and .tmp at the project root are always skipped.

Exit code: 0 if all gates pass or no config file exists, 1 otherwise`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logger.LevelFromFlags(verbose, debug))
			return Run(opts, log)
		},
		// Failures are logged by Run; main decides what else to print
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose mode (default: off)")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable tons of logging (default: off)")
	cmd.Flags().StringVar(&opts.IgnoreSrcs, "cover_ignore_srcs", "", "Space separated regexes of Go file paths ignored when checking for tests")
	cmd.Flags().StringVar(&opts.SummaryPath, "summary", "", "Write a run summary to this path (JSON, or YAML for .yaml/.yml)")
	cmd.Flags().StringVar(&opts.Root, "root", "", "Project root (default: current directory)")
	cmd.Flags().MarkHidden("root")

	return cmd
}
