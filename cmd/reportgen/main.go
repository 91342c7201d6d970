package main

import (
	"fmt"
	"os"

	"deployment-report-service/cmd/reportgen/cmd"
	"deployment-report-service/pkg/errors"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// Set version information
	cmd.SetVersionInfo(version, commit, date)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.FormatUserMessage(err))
		os.Exit(1)
	}
}
