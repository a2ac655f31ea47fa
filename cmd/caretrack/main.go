// ABOUTME: Entry point for the caretrack CLI
// ABOUTME: Command-line tool for care coordinators and CI scripting

package main

import (
	"fmt"
	"os"

	"github.com/caretrack/caretrack-go/cmd/caretrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
