// Package main is the entry point for the cyclocsv CLI.
package main

import (
	"os"

	"github.com/huangsam/cyclocsv/cmd"
)

func main() {
	os.Exit(cmd.Run(cmd.NewReportCommand(), os.Args[1:], os.Stderr))
}
