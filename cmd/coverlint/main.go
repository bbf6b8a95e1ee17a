package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/coverlint/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Check failures were already logged
		if !errors.Is(err, cmd.ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
